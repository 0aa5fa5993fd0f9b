// Package config loads the optional global fuzz-init configuration from the
// user's XDG config directory. All fields have working defaults; the file's
// absence is not an error.
package config

// Config represents the global fuzz-init configuration.
type Config struct {
	// Defaults are fallback values for interactive selections.
	Defaults DefaultsConfig `toml:"defaults"`
	// GitHub configures remote template access.
	GitHub GitHubConfig `toml:"github"`
	// Output configures display behavior.
	Output OutputConfig `toml:"output"`
}

// DefaultsConfig holds default selection values.
type DefaultsConfig struct {
	// Fuzzer is the fuzzer preselected in prompts (e.g. "libfuzzer").
	Fuzzer string `toml:"fuzzer"`
	// Integration is the integration preselected in prompts.
	Integration string `toml:"integration"`
	// Minimal generates minimal projects unless overridden.
	Minimal bool `toml:"minimal"`
}

// GitHubConfig holds remote template settings.
type GitHubConfig struct {
	// Token is a personal access token for private template repositories.
	Token string `toml:"token"`
	// TimeoutSeconds is the archive download timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// OutputConfig holds display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `toml:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `toml:"quiet"`
}
