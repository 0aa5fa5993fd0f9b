package generator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

func boolPtr(b bool) *bool { return &b }

func textFile(path, content string) model.TemplateFile {
	return model.TemplateFile{Path: path, Content: []byte(content), Mode: 0o644}
}

func makeTemplate(meta *model.Metadata, files ...model.TemplateFile) *model.Template {
	return &model.Template{
		Source:   model.Source{Kind: model.SourceEmbedded, Name: "test"},
		Metadata: meta,
		Files:    files,
	}
}

func generate(t *testing.T, tpl *model.Template, ctx render.Context) (string, *GenerateResult) {
	t.Helper()
	outDir := filepath.Join(t.TempDir(), "out")
	result, err := NewGenerator().Generate(context.Background(), GenerateOptions{
		Template:  tpl,
		Context:   ctx,
		OutputDir: outDir,
	})
	require.NoError(t, err)
	return outDir, result
}

// TestGenerateSubstitution tests variable substitution in content and
// filenames.
func TestGenerateSubstitution(t *testing.T) {
	tpl := makeTemplate(nil,
		textFile("README.md", "# {{project_name}}\n"),
		textFile("fuzz/src/{{target_name}}.c", "// harness for {{target_name}}\n"),
	)
	ctx := render.Context{"project_name": "demo", "target_name": "parser"}

	outDir, result := generate(t, tpl, ctx)
	assert.Equal(t, 2, result.FilesCreated)

	content, err := os.ReadFile(filepath.Join(outDir, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# demo\n", string(content))

	content, err = os.ReadFile(filepath.Join(outDir, "fuzz", "src", "parser.c"))
	require.NoError(t, err)
	assert.Equal(t, "// harness for parser\n", string(content))
}

// TestGenerateWhitespaceOnlySkipped verifies files whose rendered content is
// entirely whitespace are not emitted.
func TestGenerateWhitespaceOnlySkipped(t *testing.T) {
	tpl := makeTemplate(nil,
		textFile("maybe.md", "{{#if minimal}}content{{/if}}\n"),
		textFile("kept.md", "{{#if minimal}}content{{/if}} extra\n"),
	)

	outDir, result := generate(t, tpl, render.Context{"minimal": false})
	assert.Equal(t, 1, result.FilesCreated)
	assert.Equal(t, 1, result.FilesExcluded)

	_, err := os.Stat(filepath.Join(outDir, "maybe.md"))
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(outDir, "kept.md"))
	assert.NoError(t, err)
}

// TestGenerateBinaryRoundTrip verifies binary content emerges byte-identical
// even with an explicit template=true override.
func TestGenerateBinaryRoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF, 0xFE, '{', '{', 'x', '}', '}'}
	meta := &model.Metadata{
		Files: []model.FileConfig{
			{Path: "corpus/seed.bin", Template: boolPtr(true)},
		},
	}
	tpl := makeTemplate(meta, model.TemplateFile{
		Path:     "corpus/seed.bin",
		Content:  raw,
		Mode:     0o644,
		IsBinary: true,
	})

	outDir, _ := generate(t, tpl, render.Context{"x": "boom"})

	content, err := os.ReadFile(filepath.Join(outDir, "corpus", "seed.bin"))
	require.NoError(t, err)
	assert.Equal(t, raw, content)
}

// TestGenerateConditionExclusion tests explicit per-file conditions.
func TestGenerateConditionExclusion(t *testing.T) {
	meta := &model.Metadata{
		Files: []model.FileConfig{
			{Path: "CMakeLists.txt", Condition: "integration == 'cmake'"},
		},
	}
	tpl := makeTemplate(meta, textFile("CMakeLists.txt", "project({{project_name}})\n"))

	outDir, _ := generate(t, tpl, render.Context{"project_name": "p", "integration": "make"})
	_, err := os.Stat(filepath.Join(outDir, "CMakeLists.txt"))
	assert.True(t, os.IsNotExist(err))

	outDir, _ = generate(t, tpl, render.Context{"project_name": "p", "integration": "cmake"})
	content, err := os.ReadFile(filepath.Join(outDir, "CMakeLists.txt"))
	require.NoError(t, err)
	assert.Equal(t, "project(p)\n", string(content))
}

// TestGenerateMinimalMode tests the top-level full_mode_only scenario.
func TestGenerateMinimalMode(t *testing.T) {
	meta := &model.Metadata{
		FileConventions: model.Conventions{
			FullModeOnly: []string{"examples"},
		},
	}
	tpl := makeTemplate(meta,
		textFile("examples/a.txt", "example\n"),
		textFile("fuzz/b.txt", "fuzz\n"),
	)

	outDir, _ := generate(t, tpl, render.Context{"minimal": true})

	_, err := os.Stat(filepath.Join(outDir, "examples", "a.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outDir, "fuzz", "b.txt"))
	assert.NoError(t, err)
}

// TestGenerateExecutableBit verifies executable permissions on output files.
func TestGenerateExecutableBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not supported on windows")
	}

	meta := &model.Metadata{
		Files: []model.FileConfig{
			{Path: "fuzz/build.sh", Executable: boolPtr(true)},
		},
	}
	tpl := makeTemplate(meta,
		textFile("fuzz/build.sh", "#!/bin/sh\necho build\n"),
		textFile("README.md", "readme\n"),
	)

	outDir, _ := generate(t, tpl, render.Context{})

	info, err := os.Stat(filepath.Join(outDir, "fuzz", "build.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)

	info, err = os.Stat(filepath.Join(outDir, "README.md"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&0o111)
}

// TestGenerateConfigFileNotEmitted ensures template.toml never reaches the
// output even when present in the file list.
func TestGenerateConfigFileNotEmitted(t *testing.T) {
	tpl := makeTemplate(&model.Metadata{},
		textFile(model.TemplateConfigFile, "[template]\nname = \"x\"\n"),
		textFile("kept.md", "kept\n"),
	)

	outDir, _ := generate(t, tpl, render.Context{})
	_, err := os.Stat(filepath.Join(outDir, model.TemplateConfigFile))
	assert.True(t, os.IsNotExist(err))
}

// TestGenerateDeterminism verifies two runs with identical inputs produce
// byte-identical trees.
func TestGenerateDeterminism(t *testing.T) {
	tpl := makeTemplate(nil,
		textFile("src/{{target_name}}.c", "int {{target_name}}_init(void);\n"),
		textFile("README.md", "# {{project_name}}\n"),
		model.TemplateFile{Path: "corpus/seed", Content: []byte{1, 2, 0, 3}, Mode: 0o644, IsBinary: true},
	)
	ctx := render.Context{"project_name": "demo", "target_name": "parser"}

	outA, _ := generate(t, tpl, ctx)
	outB, _ := generate(t, tpl, ctx)

	var relPaths []string
	err := filepath.Walk(outA, func(path string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(outA, path)
		require.NoError(t, err)
		relPaths = append(relPaths, rel)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, relPaths)

	for _, rel := range relPaths {
		a, err := os.ReadFile(filepath.Join(outA, rel))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(outB, rel))
		require.NoError(t, err)
		assert.Equal(t, a, b, "file %s differs between runs", rel)
	}
}

// TestGenerateOverwriteBehavior tests skip-vs-overwrite for existing files.
func TestGenerateOverwriteBehavior(t *testing.T) {
	tpl := makeTemplate(nil, textFile("note.md", "new content\n"))
	outDir := t.TempDir()
	existing := filepath.Join(outDir, "note.md")
	require.NoError(t, os.WriteFile(existing, []byte("old content\n"), 0o644))

	// Default: existing files are skipped.
	result, err := NewGenerator().Generate(context.Background(), GenerateOptions{
		Template:  tpl,
		Context:   render.Context{},
		OutputDir: outDir,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesSkipped)
	content, _ := os.ReadFile(existing)
	assert.Equal(t, "old content\n", string(content))

	// Overwrite replaces.
	result, err = NewGenerator().Generate(context.Background(), GenerateOptions{
		Template:  tpl,
		Context:   render.Context{},
		OutputDir: outDir,
		Overwrite: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesOverwritten)
	content, _ = os.ReadFile(existing)
	assert.Equal(t, "new content\n", string(content))
}

// TestGenerateRenderErrorAborts verifies a rendering failure aborts the run.
func TestGenerateRenderErrorAborts(t *testing.T) {
	tpl := makeTemplate(nil, textFile("bad.md", "{{#if x}}unclosed\n"))

	_, err := NewGenerator().Generate(context.Background(), GenerateOptions{
		Template:  tpl,
		Context:   render.Context{},
		OutputDir: filepath.Join(t.TempDir(), "out"),
	})
	require.Error(t, err)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrRenderFailed, gerr.Type)
	assert.Equal(t, "bad.md", gerr.File)
}

// TestGenerateDryRun verifies dry-run writes nothing but reports everything.
func TestGenerateDryRun(t *testing.T) {
	tpl := makeTemplate(nil, textFile("README.md", "# {{project_name}}\n"))
	outDir := filepath.Join(t.TempDir(), "out")

	result, err := NewGenerator().DryRun(context.Background(), GenerateOptions{
		Template:  tpl,
		Context:   render.Context{"project_name": "demo"},
		OutputDir: outDir,
	})
	require.NoError(t, err)

	require.Len(t, result.DryRunFiles, 1)
	assert.Equal(t, "# demo\n", string(result.DryRunFiles[0].Content))

	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

// TestGenerateInvalidOptions tests option validation.
func TestGenerateInvalidOptions(t *testing.T) {
	g := NewGenerator()
	ctx := context.Background()

	_, err := g.Generate(ctx, GenerateOptions{Context: render.Context{}, OutputDir: "x"})
	assert.Error(t, err)

	_, err = g.Generate(ctx, GenerateOptions{Template: makeTemplate(nil), OutputDir: "x"})
	assert.Error(t, err)

	_, err = g.Generate(ctx, GenerateOptions{Template: makeTemplate(nil), Context: render.Context{}})
	assert.Error(t, err)
}
