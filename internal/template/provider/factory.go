package provider

import (
	"strings"

	"github.com/fuzzinit/fuzz-init/internal/debug"
)

// ForSource picks the provider for an explicit --template source string:
// github:org/repo and @org/repo go to GitHub, anything else is treated as a
// local directory path. Embedded templates are addressed by language name
// through the EmbeddedProvider directly, not through this factory.
func ForSource(source string) Provider {
	if strings.HasPrefix(source, "github:") || strings.HasPrefix(source, "@") {
		debug.Debug("[provider] Source %q handled by github provider", source)
		return NewGitHubProvider()
	}
	debug.Debug("[provider] Source %q handled by local provider", source)
	return NewLocalProvider()
}
