package cli

import (
	"fmt"
	"os"

	"github.com/fuzzinit/fuzz-init/internal/app"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Output formatting helpers

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Println(msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Printf("✓ %s\n", msg)
	} else {
		fmt.Printf("%s✓%s %s\n", colorGreen, colorReset, msg)
	}
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Printf("⚠ %s\n", msg)
	} else {
		fmt.Printf("%s⚠%s %s\n", colorYellow, colorReset, msg)
	}
}

// printErrorMsg prints an error message (different from printError which takes error type)
func printErrorMsg(msg string) {
	if globalNoColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "%s✗%s %s\n", colorRed, colorReset, msg)
	}
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	if globalNoColor {
		fmt.Printf("→ %s\n", msg)
	} else {
		fmt.Printf("%s→%s %s\n", colorBlue, colorReset, msg)
	}
}

// printResult summarizes a generated project and relays the template's
// post-generation message and hooks.
func printResult(result *app.InitResult) {
	printSuccess(fmt.Sprintf("Created %s from template %q (integration: %s)",
		result.OutputDir, result.TemplateName, result.Integration))

	gen := result.Generate
	summary := fmt.Sprintf("%d files created", gen.FilesCreated)
	if gen.FilesOverwritten > 0 {
		summary += fmt.Sprintf(", %d overwritten", gen.FilesOverwritten)
	}
	if gen.FilesSkipped > 0 {
		summary += fmt.Sprintf(", %d skipped (already exist)", gen.FilesSkipped)
	}
	printInfo("  " + summary)

	if gen.FilesSkipped > 0 {
		printWarning("Some files already existed and were left untouched (use --overwrite to replace them)")
	}

	if result.PostGenMessage != "" {
		printInfo("")
		printInfo(result.PostGenMessage)
	}

	if len(result.Hooks) > 0 {
		printInfo("")
		printInfo("Suggested next commands:")
		for _, hook := range result.Hooks {
			printInfo("  " + hook)
		}
	}
}
