// Package devmode runs template build validation: for every
// integration/mode combination a template supports, it generates a throwaway
// project and executes the template's validation command groups against it.
// The commands themselves are opaque argv vectors; the build systems they
// invoke are external tools.
package devmode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/generator"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// Config is one generation configuration under test.
type Config struct {
	// Integration is the build integration name.
	Integration string
	// Minimal is the minimal-mode flag.
	Minimal bool
}

// Name returns a display name for the configuration.
func (c Config) Name() string {
	mode := "full"
	if c.Minimal {
		mode = "minimal"
	}
	if c.Integration == "" {
		return mode
	}
	return fmt.Sprintf("%s+%s", c.Integration, mode)
}

// RunResult is the outcome for one configuration.
type RunResult struct {
	// Config is the configuration under test.
	Config Config
	// Groups are the per-validation-group outcomes.
	Groups []GroupResult
	// Passed is true when every non-skipped group passed.
	Passed bool
	// Duration is the total wall time for this configuration.
	Duration time.Duration
}

// Configurations expands the integration catalog into the test matrix:
// every supported integration in both full and minimal mode. A template
// without an integration catalog gets one full and one minimal run.
func Configurations(meta *model.Metadata) []Config {
	integrations := meta.SupportedIntegrations()
	if len(integrations) == 0 {
		return []Config{{Minimal: false}, {Minimal: true}}
	}

	var configs []Config
	for _, integration := range integrations {
		configs = append(configs,
			Config{Integration: integration, Minimal: false},
			Config{Integration: integration, Minimal: true},
		)
	}
	return configs
}

// Session drives validation runs for one template.
type Session struct {
	gen generator.Generator
	// baseDir holds the generated throwaway projects.
	baseDir string
}

// NewSession creates a session generating projects under a fresh temporary
// directory.
func NewSession() (*Session, error) {
	baseDir, err := os.MkdirTemp("", "fuzz-init-dev-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create dev session directory: %w", err)
	}
	return &Session{gen: generator.NewGenerator(), baseDir: baseDir}, nil
}

// Close removes the session's generated projects.
func (s *Session) Close() error {
	return os.RemoveAll(s.baseDir)
}

// Run generates and validates every configuration of the template. baseCtx
// carries the caller's fixed variables; integration and minimal are
// overridden per configuration.
func (s *Session) Run(ctx context.Context, tpl *model.Template, baseCtx render.Context) ([]RunResult, error) {
	configs := Configurations(tpl.Metadata)
	debug.Debug("[devmode] Testing %d configurations", len(configs))

	results := make([]RunResult, 0, len(configs))
	for i, cfg := range configs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		result, err := s.runOne(ctx, tpl, baseCtx, cfg, i)
		if err != nil {
			return results, err
		}
		result.Duration = time.Since(start)
		results = append(results, result)
	}
	return results, nil
}

// runOne generates one configuration and runs its validation groups.
func (s *Session) runOne(ctx context.Context, tpl *model.Template, baseCtx render.Context, cfg Config, seq int) (RunResult, error) {
	projectName := fmt.Sprintf("dev-%02d-%s", seq, cfg.Name())
	outputDir := filepath.Join(s.baseDir, projectName)

	rctx := baseCtx.Clone()
	rctx["project_name"] = projectName
	rctx["target_name"] = projectName
	if cfg.Integration != "" {
		rctx["integration"] = cfg.Integration
	}
	rctx["minimal"] = cfg.Minimal

	rctx = tpl.Metadata.ApplyDefaults(rctx)
	if err := tpl.Metadata.ValidateRequired(rctx); err != nil {
		return RunResult{}, err
	}

	debug.Debug("[devmode] Generating %s", projectName)
	if _, err := s.gen.Generate(ctx, generator.GenerateOptions{
		Template:  tpl,
		Context:   rctx,
		OutputDir: outputDir,
		Overwrite: true,
	}); err != nil {
		return RunResult{}, fmt.Errorf("generation failed for %s: %w", cfg.Name(), err)
	}

	groups, err := RunGroups(ctx, tpl.Metadata, outputDir, rctx)
	if err != nil {
		return RunResult{}, err
	}

	passed := true
	for _, g := range groups {
		if !g.Skipped && !g.Passed {
			passed = false
		}
	}
	return RunResult{Config: cfg, Groups: groups, Passed: passed}, nil
}
