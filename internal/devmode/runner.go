package devmode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/condition"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// StepResult is the outcome of one validation step.
type StepResult struct {
	// Command is the display form of the executed argv.
	Command string
	// Output is the combined stdout/stderr.
	Output string
	// Succeeded is whether the step exited zero.
	Succeeded bool
}

// GroupResult is the outcome of one validation group.
type GroupResult struct {
	// Name is the group name from template.toml.
	Name string
	// Skipped is true when the group's condition did not match the context.
	Skipped bool
	// Steps are the executed steps, in order. Execution stops at the first
	// step whose outcome already decides the group.
	Steps []StepResult
	// Passed is whether the observed outcome matched expect_success.
	Passed bool
}

// RunGroups executes a template's validation groups against a generated
// project. Group conditions are evaluated with the same fail-closed
// semantics as file conditions, so a malformed condition skips its group
// rather than failing the run.
func RunGroups(ctx context.Context, meta *model.Metadata, projectDir string, rctx render.Context) ([]GroupResult, error) {
	names := meta.ValidationGroupNames()
	if len(names) == 0 {
		debug.Debug("[devmode] Template declares no validation groups")
		return nil, nil
	}

	results := make([]GroupResult, 0, len(names))
	for _, name := range names {
		group := meta.Validation[name]

		if group.Condition != "" && !condition.Evaluate(group.Condition, rctx) {
			debug.Debug("[devmode] Skipping group %s: condition %q not met", name, group.Condition)
			results = append(results, GroupResult{Name: name, Skipped: true})
			continue
		}

		result, err := runGroup(ctx, name, group, projectDir, rctx)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// runGroup executes one group's steps in its rendered working directory.
func runGroup(ctx context.Context, name string, group model.ValidationGroup, projectDir string, rctx render.Context) (GroupResult, error) {
	workdir := projectDir
	if group.Workdir != "" {
		rendered, err := render.Render(group.Workdir, rctx)
		if err != nil {
			return GroupResult{}, fmt.Errorf("failed to render workdir for group %s: %w", name, err)
		}
		workdir = filepath.Join(projectDir, filepath.FromSlash(rendered))
	}

	env := os.Environ()
	for key, value := range group.Env {
		rendered, err := render.Render(value, rctx)
		if err != nil {
			return GroupResult{}, fmt.Errorf("failed to render env %s for group %s: %w", key, name, err)
		}
		env = append(env, key+"="+rendered)
	}

	expectSuccess := group.ShouldSucceed()
	result := GroupResult{Name: name}

	allSucceeded := true
	for _, argv := range group.Steps {
		if len(argv) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		display := shellquote.Join(argv...)
		debug.Debug("[devmode] [%s] Running: %s (workdir: %s)", name, display, workdir)

		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = workdir
		cmd.Env = env
		out, err := cmd.CombinedOutput()

		step := StepResult{
			Command:   display,
			Output:    string(out),
			Succeeded: err == nil,
		}
		result.Steps = append(result.Steps, step)

		if err != nil {
			debug.Debug("[devmode] [%s] Step failed: %v", name, err)
			allSucceeded = false
			// A failed step decides the group either way.
			break
		}
	}

	result.Passed = allSucceeded == expectSuccess
	return result, nil
}
