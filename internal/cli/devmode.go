package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fuzzinit/fuzz-init/internal/devmode"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// runDevMode generates and validates the template across every
// integration/minimal configuration it declares. This is the template
// author's inner loop: edit the template, re-run, read the matrix.
func runDevMode(cmd *cobra.Command, tpl *model.Template, vars map[string]string) error {
	session, err := devmode.NewSession()
	if err != nil {
		return err
	}
	defer session.Close()

	baseCtx := render.Context{}
	for key, value := range vars {
		baseCtx[key] = value
	}
	if rootFuzzer != "" {
		baseCtx["fuzzer"] = rootFuzzer
	} else if tpl.Metadata != nil && tpl.Metadata.Fuzzers != nil {
		baseCtx["fuzzer"] = tpl.Metadata.Fuzzers.Default
	}

	printInfo(fmt.Sprintf("Validating template: %s", tpl.Source.String()))
	start := time.Now()

	results, err := session.Run(cmd.Context(), tpl, baseCtx)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		printDevResult(result)
		if !result.Passed {
			failed++
		}
	}

	printInfo("")
	if failed > 0 {
		printErrorMsg(fmt.Sprintf("%d of %d configurations failed (%.1fs)",
			failed, len(results), time.Since(start).Seconds()))
		return fmt.Errorf("template validation failed for %d configuration(s)", failed)
	}
	printSuccess(fmt.Sprintf("All %d configurations passed (%.1fs)",
		len(results), time.Since(start).Seconds()))
	return nil
}

// printDevResult prints the outcome of one configuration.
func printDevResult(result devmode.RunResult) {
	name := result.Config.Name()
	if result.Passed {
		printSuccess(fmt.Sprintf("%s (%.1fs)", name, result.Duration.Seconds()))
		return
	}

	printErrorMsg(fmt.Sprintf("%s (%.1fs)", name, result.Duration.Seconds()))
	for _, group := range result.Groups {
		if group.Skipped || group.Passed {
			continue
		}
		printInfo(fmt.Sprintf("  group %q:", group.Name))
		for _, step := range group.Steps {
			status := "ok"
			if !step.Succeeded {
				status = "FAILED"
			}
			printInfo(fmt.Sprintf("    [%s] %s", status, step.Command))
			if !step.Succeeded && step.Output != "" {
				for _, line := range strings.Split(strings.TrimRight(step.Output, "\n"), "\n") {
					printInfo("      " + line)
				}
			}
		}
	}
}
