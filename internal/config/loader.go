package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/fuzzinit/fuzz-init/internal/debug"
)

// ConfigFileName is the global configuration file name.
const ConfigFileName = "fuzz-init.toml"

// DefaultPath returns the configuration file location under the XDG config
// directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "fuzz-init", ConfigFileName)
}

// Load loads the configuration from the given path. Keys present in the file
// override the built-in defaults; everything else keeps its default.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(path)
		}
		return nil, NewLoadError(path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, NewParseError(path, err)
	}

	debug.Debug("[config] Loaded configuration from %s", path)
	return cfg, nil
}

// LoadOrDefault loads the configuration from the default path, falling back
// to built-in defaults when no file exists. A malformed file is still an
// error; silently ignoring it would hide typos from the user.
func LoadOrDefault() (*Config, error) {
	path := DefaultPath()
	cfg, err := Load(path)
	if err != nil {
		var cerr *Error
		if asConfigError(err, &cerr) && cerr.Type == ErrNotFound {
			debug.Debug("[config] No configuration file at %s, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}
