// Package app orchestrates the fuzz-init flows: resolving a template
// source, assembling the render context, running the generator, and
// surfacing the post-generation artifacts for the CLI to display.
package app

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/generator"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/provider"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// InitOptions configures one project initialization.
type InitOptions struct {
	// ProjectName is the output directory and default target name. It may
	// contain path separators for nested output locations.
	ProjectName string
	// Language selects an embedded template (ignored when TemplateSource
	// is set).
	Language string
	// TemplateSource is an explicit template source: a directory path,
	// github:org/repo, or @org/repo.
	TemplateSource string
	// Integration is the selected build integration.
	Integration string
	// Fuzzer is the selected fuzzer.
	Fuzzer string
	// Minimal generates only the fuzzing scaffolding.
	Minimal bool
	// Overwrite overwrites existing files in the output directory.
	Overwrite bool
	// Vars are extra template-author-defined variables.
	Vars map[string]string
	// GitHub tunes the GitHub provider for remote template sources.
	GitHub GitHubOptions
}

// GitHubOptions tunes the GitHub template provider.
type GitHubOptions struct {
	// Token authenticates downloads of private repositories.
	Token string
	// Timeout bounds one archive download. Zero keeps the provider default.
	Timeout time.Duration
}

// InitResult reports what was generated.
type InitResult struct {
	// OutputDir is the generated project directory.
	OutputDir string
	// TemplateName is the display name of the template used.
	TemplateName string
	// Integration is the integration the project was generated with.
	Integration string
	// Generate carries the generator statistics.
	Generate *generator.GenerateResult
	// PostGenMessage is the rendered post-generation message, empty when
	// the template has none. The message file has already been removed
	// from the output tree.
	PostGenMessage string
	// Hooks are the post_generate hook commands declared by the template.
	Hooks []string
}

// Init generates a new project from a template.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	tpl, err := LoadTemplate(ctx, opts.Language, opts.TemplateSource, opts.GitHub)
	if err != nil {
		return nil, err
	}
	return InitFromTemplate(ctx, tpl, opts)
}

// InitFromTemplate generates a new project from an already-fetched template.
// The CLI uses this after prompting from the template's option catalogs, so
// the source is fetched only once.
func InitFromTemplate(ctx context.Context, tpl *model.Template, opts InitOptions) (*InitResult, error) {
	if strings.TrimSpace(opts.ProjectName) == "" {
		return nil, newError(ErrInvalidProjectName, "project name cannot be empty")
	}

	integration, err := resolveIntegration(tpl.Metadata, opts.Integration)
	if err != nil {
		return nil, err
	}
	fuzzer, err := resolveFuzzer(tpl.Metadata, opts.Fuzzer)
	if err != nil {
		return nil, err
	}

	rctx := buildContext(opts, integration, fuzzer)
	rctx = tpl.Metadata.ApplyDefaults(rctx)
	if err := tpl.Metadata.ValidateRequired(rctx); err != nil {
		return nil, err
	}
	debug.DebugJSON("render context", rctx)

	outputDir := filepath.FromSlash(opts.ProjectName)
	if parent := filepath.Dir(outputDir); parent != "." && parent != string(filepath.Separator) {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, err
		}
	}

	result, err := generator.NewGenerator().Generate(ctx, generator.GenerateOptions{
		Template:  tpl,
		Context:   rctx,
		OutputDir: outputDir,
		Overwrite: opts.Overwrite,
	})
	if err != nil {
		return nil, err
	}

	message, err := consumePostGenMessage(outputDir)
	if err != nil {
		return nil, err
	}

	templateName := opts.Language
	if tpl.Metadata != nil && tpl.Metadata.Template.Name != "" {
		templateName = tpl.Metadata.Template.Name
	}

	var hooks []string
	if tpl.Metadata != nil {
		for _, hook := range tpl.Metadata.Hooks.PostGenerate {
			rendered, err := render.Render(hook, rctx)
			if err != nil {
				// A broken hook template should not fail the generated project.
				debug.Debug("[app] Skipping unrenderable hook %q: %v", hook, err)
				continue
			}
			hooks = append(hooks, rendered)
		}
	}

	return &InitResult{
		OutputDir:      outputDir,
		TemplateName:   templateName,
		Integration:    integration,
		Generate:       result,
		PostGenMessage: message,
		Hooks:          hooks,
	}, nil
}

// LoadTemplate resolves and fetches a template: an explicit source when
// given, otherwise the embedded template for the language.
func LoadTemplate(ctx context.Context, language, source string, gh GitHubOptions) (*model.Template, error) {
	if source != "" {
		p := provider.ForSource(source)
		if ghp, ok := p.(*provider.GitHubProvider); ok {
			ghp.Token = gh.Token
			if gh.Timeout > 0 {
				ghp.HTTPClient.Timeout = gh.Timeout
			}
		}
		src, err := p.Resolve(source)
		if err != nil {
			return nil, err
		}
		return p.Fetch(ctx, src)
	}

	p := provider.NewEmbeddedProvider()
	src, err := p.Resolve(language)
	if err != nil {
		return nil, err
	}
	return p.Fetch(ctx, src)
}

// ListTemplates enumerates the embedded template names.
func ListTemplates() ([]string, error) {
	names, err := provider.NewEmbeddedProvider().List()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, newError(ErrNoTemplates, "no embedded templates found")
	}
	return names, nil
}

// buildContext assembles the render context for one run. target_name is the
// base name of the project so nested output paths yield clean identifiers.
func buildContext(opts InitOptions, integration, fuzzer string) render.Context {
	rctx := render.Context{
		"project_name": opts.ProjectName,
		"target_name":  path.Base(filepath.ToSlash(opts.ProjectName)),
		"minimal":      opts.Minimal,
	}
	if integration != "" {
		rctx["integration"] = integration
	}
	if fuzzer != "" {
		rctx["fuzzer"] = fuzzer
	}
	for key, value := range opts.Vars {
		rctx[key] = value
	}
	return rctx
}

// resolveIntegration validates the requested integration against the
// template catalog, falling back to the catalog default.
func resolveIntegration(meta *model.Metadata, requested string) (string, error) {
	supported := meta.SupportedIntegrations()
	if requested == "" {
		return meta.DefaultIntegration(), nil
	}
	if len(supported) == 0 {
		// Template declares no catalog; accept whatever the caller chose.
		return requested, nil
	}
	for _, name := range supported {
		if name == requested {
			return requested, nil
		}
	}
	return "", newError(ErrUnsupportedIntegration,
		"integration %q is not supported by this template (supported: %s)",
		requested, strings.Join(supported, ", "))
}

// resolveFuzzer validates the requested fuzzer against the template catalog,
// falling back to the catalog default.
func resolveFuzzer(meta *model.Metadata, requested string) (string, error) {
	if meta == nil || meta.Fuzzers == nil {
		return requested, nil
	}
	if requested == "" {
		return meta.Fuzzers.Default, nil
	}
	if len(meta.Fuzzers.Supported) == 0 {
		return requested, nil
	}
	for _, name := range meta.Fuzzers.Supported {
		if name == requested {
			return requested, nil
		}
	}
	return "", newError(ErrUnsupportedFuzzer,
		"fuzzer %q is not supported by this template (supported: %s)",
		requested, strings.Join(meta.Fuzzers.Supported, ", "))
}

// consumePostGenMessage reads and removes the post-generation message file
// from the generated tree. The renderer emits it like any other file; it is
// this layer that turns it into a one-shot message.
func consumePostGenMessage(outputDir string) (string, error) {
	msgPath := filepath.Join(outputDir, model.PostGenerateFile)
	data, err := os.ReadFile(msgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if err := os.Remove(msgPath); err != nil {
		return "", err
	}
	debug.Debug("[app] Consumed post-generation message (%d bytes)", len(data))
	return string(data), nil
}
