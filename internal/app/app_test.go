package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTemplate lays out a template directory for the local provider.
func writeTemplate(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

const appTestMetadata = `
[template]
name = "demo"

[variables.greeting]
default = "hello"

[variables.author]
required = true

[fuzzers]
supported = ["libfuzzer", "afl"]
default = "libfuzzer"

[integrations]
supported = ["make", "cmake"]
default = "make"

[[files]]
path = "CMakeLists.txt"
condition = "integration == 'cmake'"
`

func TestInitGeneratesProject(t *testing.T) {
	src := writeTemplate(t, map[string]string{
		"template.toml":  appTestMetadata,
		"README.md":      "# {{project_name}} by {{author}} ({{greeting}})",
		"CMakeLists.txt": "project({{target_name}})",
		"NEXT_STEPS.md":  "cd {{project_name}} && make",
	})

	out := filepath.Join(t.TempDir(), "myproj")
	result, err := Init(context.Background(), InitOptions{
		ProjectName:    out,
		TemplateSource: src,
		Vars:           map[string]string{"author": "alice"},
	})
	require.NoError(t, err)

	assert.Equal(t, "demo", result.TemplateName)
	assert.Equal(t, "make", result.Integration)

	data, err := os.ReadFile(filepath.Join(out, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "by alice (hello)")

	// Integration defaulted to make, so the cmake-only file is excluded.
	assert.NoFileExists(t, filepath.Join(out, "CMakeLists.txt"))

	// The post-generation message is captured and the file removed.
	assert.Contains(t, result.PostGenMessage, "&& make")
	assert.NoFileExists(t, filepath.Join(out, "NEXT_STEPS.md"))
}

func TestInitRejectsUnsupportedIntegration(t *testing.T) {
	src := writeTemplate(t, map[string]string{
		"template.toml": appTestMetadata,
		"README.md":     "x",
	})

	_, err := Init(context.Background(), InitOptions{
		ProjectName:    filepath.Join(t.TempDir(), "p"),
		TemplateSource: src,
		Integration:    "bazel",
		Vars:           map[string]string{"author": "a"},
	})
	require.Error(t, err)
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrUnsupportedIntegration, appErr.Type)
}

func TestInitRejectsUnsupportedFuzzer(t *testing.T) {
	src := writeTemplate(t, map[string]string{
		"template.toml": appTestMetadata,
		"README.md":     "x",
	})

	_, err := Init(context.Background(), InitOptions{
		ProjectName:    filepath.Join(t.TempDir(), "p"),
		TemplateSource: src,
		Fuzzer:         "radamsa",
		Vars:           map[string]string{"author": "a"},
	})
	require.Error(t, err)
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrUnsupportedFuzzer, appErr.Type)
}

func TestInitMissingRequiredVariable(t *testing.T) {
	src := writeTemplate(t, map[string]string{
		"template.toml": appTestMetadata,
		"README.md":     "x",
	})

	_, err := Init(context.Background(), InitOptions{
		ProjectName:    filepath.Join(t.TempDir(), "p"),
		TemplateSource: src,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author")
}

func TestInitEmptyProjectName(t *testing.T) {
	src := writeTemplate(t, map[string]string{"README.md": "x"})
	_, err := Init(context.Background(), InitOptions{
		ProjectName:    "  ",
		TemplateSource: src,
	})
	var appErr *Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrInvalidProjectName, appErr.Type)
}

func TestInitNestedProjectName(t *testing.T) {
	src := writeTemplate(t, map[string]string{
		"README.md": "target is {{target_name}}",
	})

	out := filepath.Join(t.TempDir(), "nested", "deeper", "proj")
	result, err := Init(context.Background(), InitOptions{
		ProjectName:    out,
		TemplateSource: src,
	})
	require.NoError(t, err)
	assert.Equal(t, out, result.OutputDir)

	data, err := os.ReadFile(filepath.Join(out, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "target is proj", string(data))
}
