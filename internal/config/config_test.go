package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig checks the built-in defaults.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "libfuzzer", cfg.Defaults.Fuzzer)
	assert.Equal(t, 60, cfg.GitHub.TimeoutSeconds)
	assert.True(t, cfg.Output.Color)
	assert.False(t, cfg.Defaults.Minimal)
}

// TestLoad verifies file values override defaults while missing keys keep
// them.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[defaults]
fuzzer = "afl"
minimal = true

[github]
token = "secret"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "afl", cfg.Defaults.Fuzzer)
	assert.True(t, cfg.Defaults.Minimal)
	assert.Equal(t, "secret", cfg.GitHub.Token)
	// Unset keys keep their defaults.
	assert.Equal(t, 60, cfg.GitHub.TimeoutSeconds)
	assert.True(t, cfg.Output.Color)
}

// TestLoadMissing maps a missing file to ErrNotFound.
func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrNotFound, cerr.Type)
}

// TestLoadMalformed maps invalid TOML to ErrParseFailed.
func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[defaults\nbroken"), 0o644))

	_, err := Load(path)
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ErrParseFailed, cerr.Type)
}
