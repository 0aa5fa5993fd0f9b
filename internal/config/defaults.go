package config

// DefaultConfig returns the built-in configuration used when no config file
// exists or a section is missing.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Fuzzer:      "libfuzzer",
			Integration: "",
			Minimal:     false,
		},
		GitHub: GitHubConfig{
			TimeoutSeconds: 60,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}