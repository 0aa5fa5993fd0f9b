package provider

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// writeTree writes a file tree under root on the OS filesystem.
func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
}

// TestLocalFetch tests collecting a template from a local directory.
func TestLocalFetch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"template.toml":   []byte("[template]\nname = \"c\"\nversion = \"1.0.0\"\n"),
		"README.md":       []byte("# {{project_name}}\n"),
		"src/main.c":      []byte("int main(void) { return 0; }\n"),
		"corpus/seed.bin": {0x00, 0x01, 0xFF},
	})

	p := NewLocalProvider()
	src, err := p.Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, model.SourceLocal, src.Kind)

	tpl, err := p.Fetch(context.Background(), src)
	require.NoError(t, err)

	require.NotNil(t, tpl.Metadata)
	assert.Equal(t, "c", tpl.Metadata.Template.Name)
	assert.Equal(t, root, tpl.RootPath)

	paths := make(map[string]model.TemplateFile)
	for _, f := range tpl.Files {
		paths[f.Path] = f
	}

	// template.toml is configuration, never template content.
	_, hasConfig := paths[model.TemplateConfigFile]
	assert.False(t, hasConfig)

	require.Contains(t, paths, "README.md")
	assert.False(t, paths["README.md"].IsBinary)

	require.Contains(t, paths, "corpus/seed.bin")
	assert.True(t, paths["corpus/seed.bin"].IsBinary)
}

// TestBinaryDetectionDeepMarker flags a file whose only binary marker sits
// deep in the content: a long text prefix followed by invalid UTF-8 and
// template-looking bytes that must never reach the render pass.
func TestBinaryDetectionDeepMarker(t *testing.T) {
	content := append(bytes.Repeat([]byte("a"), 520), 0xFF, 0xFE)
	content = append(content, []byte("{{junk}}")...)

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"assets/blob.dat": content})

	p := NewLocalProvider()
	tpl, err := p.Fetch(context.Background(), model.Source{Kind: model.SourceLocal, Path: root})
	require.NoError(t, err)

	require.Len(t, tpl.Files, 1)
	assert.True(t, tpl.Files[0].IsBinary)
	assert.Equal(t, content, tpl.Files[0].Content)
}

// TestLocalFetchNoMetadata verifies a template without template.toml is
// valid and runs in convention mode.
func TestLocalFetchNoMetadata(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"main.c": []byte("int main;\n")})

	p := NewLocalProvider()
	src, err := p.Resolve(root)
	require.NoError(t, err)

	tpl, err := p.Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Nil(t, tpl.Metadata)
	assert.Len(t, tpl.Files, 1)
}

// TestLocalFetchBadMetadata surfaces a configuration parse failure.
func TestLocalFetchBadMetadata(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string][]byte{
		"template.toml": []byte("[template\nbroken"),
	})

	p := NewLocalProvider()
	_, err := p.Fetch(context.Background(), model.Source{Kind: model.SourceLocal, Path: root})
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrInvalidTemplate, perr.Type)
}

// TestLocalResolveMissing tests resolution of a nonexistent directory.
func TestLocalResolveMissing(t *testing.T) {
	p := NewLocalProvider()
	_, err := p.Resolve(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrNotFound, perr.Type)
}

// TestEmbeddedListAndFetch tests the embedded provider over an in-memory
// bundle.
func TestEmbeddedListAndFetch(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "c/template.toml",
		[]byte("[template]\nname = \"c\"\nversion = \"1.0.0\"\n"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "c/src/main.c", []byte("int main;\n"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "rust/fuzz.rs", []byte("fn main() {}\n"), 0o644))

	p := newEmbeddedProviderWithFs(mem)

	names, err := p.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "rust"}, names)

	// Case-insensitive name resolution.
	src, err := p.Resolve("C")
	require.NoError(t, err)
	assert.Equal(t, "c", src.Name)

	_, err = p.Resolve("go")
	require.Error(t, err)

	tpl, err := p.Fetch(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, tpl.Metadata)
	assert.Len(t, tpl.Files, 1)
	assert.Equal(t, "src/main.c", tpl.Files[0].Path)
	assert.Empty(t, tpl.RootPath)
}

// TestForSource tests provider selection from source strings.
func TestForSource(t *testing.T) {
	assert.Equal(t, "github", ForSource("github:org/repo").Name())
	assert.Equal(t, "github", ForSource("@org/repo").Name())
	assert.Equal(t, "local", ForSource("./templates/c").Name())
	assert.Equal(t, "local", ForSource("/abs/path").Name())
}
