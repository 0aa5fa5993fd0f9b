// Package policy decides, for every file in a template tree, whether it is
// included in the output, whether its content and filename are rendered, and
// whether it is marked executable. It is the single canonical decision
// function combining explicit per-file configuration, convention rules, and
// the condition evaluator.
package policy

import (
	"path"
	"runtime"
	"strings"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/condition"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/internal/template/render"
)

// Decision is the per-file outcome of the policy.
type Decision struct {
	// Include determines whether the file appears in the output at all.
	Include bool
	// TemplateContent runs variable substitution over the file content.
	TemplateContent bool
	// TemplateFilename runs variable substitution over the file path.
	TemplateFilename bool
	// Executable marks the output file executable.
	Executable bool
}

// Decide produces the decision record for one template file. meta may be nil
// (template without template.toml), in which case built-in conventions apply.
func Decide(file model.TemplateFile, meta *model.Metadata, ctx render.Context) Decision {
	relPath := path.Clean(file.Path)

	// The configuration document itself is never emitted.
	if isConfigFile(relPath) {
		return Decision{}
	}

	fc := meta.FileConfigFor(relPath)

	d := Decision{
		Include:    decideInclude(relPath, fc, meta, ctx),
		Executable: decideExecutable(file, fc, meta),
	}

	shouldTemplate := decideTemplate(relPath, fc, meta)
	d.TemplateContent = shouldTemplate
	d.TemplateFilename = shouldTemplate

	debug.Debug("[policy] %s: include=%v template=%v executable=%v",
		relPath, d.Include, shouldTemplate, d.Executable)
	return d
}

// isConfigFile reports whether the path is the template configuration
// document, at the root or in a subdirectory.
func isConfigFile(relPath string) bool {
	return relPath == model.TemplateConfigFile ||
		strings.HasSuffix(relPath, "/"+model.TemplateConfigFile)
}

// decideInclude applies the inclusion priority order: an explicit condition
// wins outright; otherwise always_include prefixes, then minimal-mode
// exclusion of full-mode-only top-level directories.
func decideInclude(relPath string, fc *model.FileConfig, meta *model.Metadata, ctx render.Context) bool {
	if fc != nil && fc.Condition != "" {
		return condition.Evaluate(fc.Condition, ctx)
	}

	if meta == nil {
		return true
	}

	conv := meta.FileConventions
	for _, prefix := range conv.AlwaysInclude {
		if hasPathPrefix(relPath, prefix) {
			return true
		}
	}

	if ctx.Bool("minimal") {
		top := topLevelDir(relPath)
		for _, dir := range conv.FullModeOnly {
			if top == dir {
				debug.Debug("[policy] Excluding %s: %s is full-mode only", relPath, dir)
				return false
			}
		}
	}

	return true
}

// decideTemplate applies the template-content priority order: explicit flag,
// then no_template_extensions over template_extensions, then the built-in
// text-file heuristic.
func decideTemplate(relPath string, fc *model.FileConfig, meta *model.Metadata) bool {
	if fc != nil && fc.Template != nil {
		return *fc.Template
	}

	if meta != nil {
		conv := meta.FileConventions
		if matchesExtension(relPath, conv.NoTemplateExtensions) {
			return false
		}
		if len(conv.TemplateExtensions) > 0 {
			return matchesExtension(relPath, conv.TemplateExtensions)
		}
	}

	return isTextFile(relPath)
}

// decideExecutable applies the executable priority order: explicit flag, then
// convention extensions, then the source permission bits (with an extension
// fallback on platforms without a permission-bit model).
func decideExecutable(file model.TemplateFile, fc *model.FileConfig, meta *model.Metadata) bool {
	if fc != nil && fc.Executable != nil {
		return *fc.Executable
	}

	if meta != nil && matchesExtension(file.Path, meta.FileConventions.ExecutableExtensions) {
		return true
	}

	if runtime.GOOS == "windows" {
		return matchesExtension(file.Path, windowsExecutableExtensions)
	}
	return file.Mode&0o111 != 0
}

// hasPathPrefix reports whether relPath is prefix itself or lives under it.
func hasPathPrefix(relPath, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return false
	}
	return relPath == prefix || strings.HasPrefix(relPath, prefix+"/")
}

// topLevelDir returns the first path segment for paths in subdirectories,
// and empty for root-level files. Minimal-mode exclusion matches top-level
// directory names exactly; nested full-mode-only directories are not
// excluded.
func topLevelDir(relPath string) string {
	idx := strings.IndexByte(relPath, '/')
	if idx < 0 {
		return ""
	}
	return relPath[:idx]
}

// matchesExtension reports whether the file extension (or, for dotless
// entries like "Makefile", the base name) appears in the list. Entries may be
// written with or without the leading dot.
func matchesExtension(relPath string, exts []string) bool {
	if len(exts) == 0 {
		return false
	}
	ext := strings.ToLower(path.Ext(relPath))
	base := strings.ToLower(path.Base(relPath))
	for _, e := range exts {
		e = strings.ToLower(e)
		normalized := e
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
		if ext == "" && base == e {
			return true
		}
	}
	return false
}
