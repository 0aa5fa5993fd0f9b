package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fuzzinit/fuzz-init/internal/config"
	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagLanguage      = "language"
	FlagTemplate      = "template"
	FlagIntegration   = "integration"
	FlagFuzzer        = "fuzzer"
	FlagMinimal       = "minimal"
	FlagOverwrite     = "overwrite"
	FlagListTemplates = "list-templates"
	FlagDevMode       = "dev-mode"
	FlagConfig        = "config"
	FlagVar           = "var"
	FlagNoColor       = "no-color"
	FlagQuiet         = "quiet"
	FlagDebug         = "debug"

	// Flag descriptions
	DescLanguage      = "Embedded template language (e.g. c, cpp)"
	DescTemplate      = "Template source: directory path, github:org/repo, or @org/repo"
	DescIntegration   = "Build system integration (e.g. make, cmake, standalone)"
	DescFuzzer        = "Fuzzer to target (e.g. libfuzzer, afl)"
	DescMinimal       = "Generate only the fuzzing scaffolding"
	DescOverwrite     = "Overwrite existing files"
	DescListTemplates = "List embedded templates and exit"
	DescDevMode       = "Validate the template across all configurations"
	DescConfig        = "Path to config file"
	DescVar           = "Extra template variable as key=value (repeatable)"
	DescNoColor       = "Disable colored output"
	DescQuiet         = "Suppress non-error output"
	DescDebug         = "Enable debug logging"
)

// parseVarFlags parses repeated --var key=value flags.
func parseVarFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

// configDefault returns a config-file default only when the template's
// catalog accepts it. A config default the current template does not support
// is dropped silently so the catalog default (or a prompt) applies instead;
// only explicit flags produce an unsupported-value error.
func configDefault(def string, supported []string) string {
	if def == "" {
		return ""
	}
	if len(supported) == 0 {
		return def
	}
	for _, name := range supported {
		if name == def {
			return def
		}
	}
	debug.Debug("[cli] Config default %q not in template catalog %v, ignoring", def, supported)
	return ""
}

// supportedFuzzers returns the template's fuzzer catalog names, or nil.
func supportedFuzzers(meta *model.Metadata) []string {
	if meta == nil || meta.Fuzzers == nil {
		return nil
	}
	return meta.Fuzzers.Supported
}

// githubToken retrieves a GitHub token for private template repositories.
// Priority: GITHUB_TOKEN env > GH_TOKEN env > config file > gh auth token
func githubToken(cfg *config.Config) string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	if cfg != nil && cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}

	// Try gh CLI auth token (uses gh's secure credential storage)
	if _, err := exec.LookPath("gh"); err == nil {
		output, err := exec.Command("gh", "auth", "token").Output()
		if err == nil {
			if token := strings.TrimSpace(string(output)); token != "" {
				return token
			}
		}
	}

	return ""
}
