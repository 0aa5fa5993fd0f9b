// Package generator materializes template trees: it walks every file of a
// loaded template, consults the inclusion/rendering policy, substitutes
// variables in content and paths, and writes the result to an output
// directory.
package generator

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/policy"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// Generator generates projects from templates.
type Generator interface {
	// Generate creates a project from a template with the given options.
	Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)

	// DryRun simulates generation without writing files.
	DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error)
}

// GenerateOptions configures project generation.
type GenerateOptions struct {
	// Template is the loaded template to generate from.
	Template *model.Template

	// Context holds the variable values for substitution and condition
	// evaluation. It is used unchanged for every file in the run.
	Context render.Context

	// OutputDir is the directory the project is written to.
	OutputDir string

	// Overwrite determines whether existing files are overwritten.
	// If false, existing files are skipped.
	Overwrite bool
}

// GenerateResult contains generation statistics.
type GenerateResult struct {
	// FilesCreated is the number of new files written.
	FilesCreated int
	// FilesSkipped is the number of existing files left untouched.
	FilesSkipped int
	// FilesOverwritten is the number of existing files overwritten.
	FilesOverwritten int
	// FilesExcluded is the number of template files the policy or empty
	// rendering excluded from the output.
	FilesExcluded int
	// Files are the output paths of all files written or skipped.
	Files []string
	// DryRunFiles carries per-file detail in dry-run mode.
	DryRunFiles []DryRunFile
}

// DryRunFile describes one file that would be produced.
type DryRunFile struct {
	// Path is the output file path.
	Path string
	// Content is the processed content.
	Content []byte
	// Executable is whether the file would be marked executable.
	Executable bool
	// Exists is whether a file already exists at Path.
	Exists bool
}

// DefaultGenerator implements Generator.
type DefaultGenerator struct {
	writer Writer
}

// NewGenerator creates a generator writing through a FileWriter.
func NewGenerator() Generator {
	return &DefaultGenerator{writer: NewFileWriter()}
}

// Generate creates a project from a template with the given options.
func (g *DefaultGenerator) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, false)
}

// DryRun simulates project generation without writing files.
func (g *DefaultGenerator) DryRun(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	return g.generate(ctx, opts, true)
}

// generate is the single-pass, depth-first materialization walk shared by
// Generate and DryRun. Any per-file failure aborts the run; files already
// written stay on disk.
func (g *DefaultGenerator) generate(ctx context.Context, opts GenerateOptions, dryRun bool) (*GenerateResult, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	debug.Debug("[generator] Starting generation: template=%s outputDir=%s dryRun=%v overwrite=%v",
		opts.Template.Source, opts.OutputDir, dryRun, opts.Overwrite)

	result := &GenerateResult{}
	meta := opts.Template.Metadata

	if !dryRun && !g.writer.Exists(opts.OutputDir) {
		if err := g.writer.CreateDir(opts.OutputDir); err != nil {
			return nil, err
		}
	}

	for _, file := range opts.Template.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		decision := policy.Decide(file, meta, opts.Context)
		if !decision.Include {
			debug.Debug("[generator] Excluding file: %s", file.Path)
			result.FilesExcluded++
			continue
		}

		outRelPath := file.Path
		if decision.TemplateFilename {
			rendered, err := render.RenderPath(file.Path, opts.Context)
			if err != nil {
				return result, newError(ErrRenderFailed, "failed to render filename", file.Path, err)
			}
			outRelPath = rendered
		}
		if outRelPath == "" {
			debug.Debug("[generator] Path %s rendered empty, excluding", file.Path)
			result.FilesExcluded++
			continue
		}

		content, emit, err := g.processContent(file, decision, opts.Context)
		if err != nil {
			return result, err
		}
		if !emit {
			debug.Debug("[generator] Content of %s rendered to whitespace, excluding", file.Path)
			result.FilesExcluded++
			continue
		}

		outputPath := filepath.Join(opts.OutputDir, filepath.FromSlash(outRelPath))
		result.Files = append(result.Files, outputPath)

		exists := g.writer.Exists(outputPath)
		if exists && !opts.Overwrite {
			debug.Debug("[generator] Skipping existing file: %s", outputPath)
			result.FilesSkipped++
			continue
		}

		if dryRun {
			result.DryRunFiles = append(result.DryRunFiles, DryRunFile{
				Path:       outputPath,
				Content:    content,
				Executable: decision.Executable,
				Exists:     exists,
			})
		} else {
			if err := g.writer.WriteFile(outputPath, content, decision.Executable); err != nil {
				return result, err
			}
		}

		if exists {
			result.FilesOverwritten++
		} else {
			result.FilesCreated++
		}
	}

	debug.Debug("[generator] Generation complete: created=%d overwritten=%d skipped=%d excluded=%d",
		result.FilesCreated, result.FilesOverwritten, result.FilesSkipped, result.FilesExcluded)
	return result, nil
}

// processContent resolves the output content for one file. Binary files are
// passed through byte-for-byte regardless of the template decision. Text
// files rendered to pure whitespace are dropped entirely, which is how a
// template author removes a whole file with templating syntax alone.
func (g *DefaultGenerator) processContent(file model.TemplateFile, decision policy.Decision, ctx render.Context) ([]byte, bool, error) {
	if file.IsBinary {
		debug.Debug("[generator] Binary passthrough: %s (%d bytes)", file.Path, len(file.Content))
		return file.Content, true, nil
	}

	if !decision.TemplateContent {
		return file.Content, true, nil
	}

	rendered, err := render.Render(string(file.Content), ctx)
	if err != nil {
		return nil, false, newError(ErrRenderFailed, "failed to render content", file.Path, err)
	}
	if strings.TrimSpace(rendered) == "" {
		return nil, false, nil
	}
	return []byte(rendered), true, nil
}

// validateOptions validates GenerateOptions.
func validateOptions(opts GenerateOptions) error {
	if opts.Template == nil {
		return newError(ErrInvalidOptions, "template cannot be nil", "", nil)
	}
	if opts.Context == nil {
		return newError(ErrInvalidOptions, "render context cannot be nil", "", nil)
	}
	if opts.OutputDir == "" {
		return newError(ErrInvalidOptions, "output directory cannot be empty", "", nil)
	}
	return nil
}
