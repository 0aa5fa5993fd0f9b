package model

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Metadata represents the template.toml configuration document.
// Every section is optional; a template with no template.toml at all is valid
// and falls back to convention-based behavior.
type Metadata struct {
	// Template is the descriptive info block.
	Template TemplateInfo `toml:"template"`
	// Variables declares the substitution vocabulary.
	Variables map[string]Variable `toml:"variables"`
	// Files are per-file overrides keyed by relative path.
	Files []FileConfig `toml:"files"`
	// Directories are directory-level creation hints.
	Directories []DirectoryConfig `toml:"directories"`
	// FileConventions are convention-based inclusion and rendering rules.
	FileConventions Conventions `toml:"file_conventions"`
	// Fuzzers is the fuzzer option catalog for interactive selection.
	Fuzzers *FuzzerCatalog `toml:"fuzzers"`
	// Integrations is the integration option catalog.
	Integrations *IntegrationCatalog `toml:"integrations"`
	// Validation are named command groups consumed by dev mode.
	Validation map[string]ValidationGroup `toml:"validation"`
	// Hooks are post-generation hook commands.
	Hooks Hooks `toml:"hooks"`
}

// TemplateInfo describes the template itself.
type TemplateInfo struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
}

// Variable declares a template variable.
type Variable struct {
	// Default is the value used when the caller supplies none.
	// Strings and booleans are supported.
	Default interface{} `toml:"default"`
	// Required indicates the variable must be present in the render context.
	Required bool `toml:"required"`
	// Description is a human-readable description.
	Description string `toml:"description"`
}

// FileConfig is a per-file override. Either Path or Paths is set; Paths maps
// one config to many files.
type FileConfig struct {
	// Path is the relative path this config applies to.
	Path string `toml:"path"`
	// Paths applies this config to several relative paths at once.
	Paths []string `toml:"paths"`
	// Executable marks the output file executable. Nil falls through to
	// convention rules.
	Executable *bool `toml:"executable"`
	// Template controls variable substitution for content and filename.
	// Nil means true.
	Template *bool `toml:"template"`
	// Condition is a boolean expression deciding inclusion.
	Condition string `toml:"condition"`
}

// IsTemplate reports whether the file should be rendered. Defaults to true.
func (f *FileConfig) IsTemplate() bool {
	return f.Template == nil || *f.Template
}

// AppliesTo reports whether this config covers the given relative path.
// Lookup is exact string equality, no glob matching.
func (f *FileConfig) AppliesTo(relPath string) bool {
	if f.Path == relPath {
		return true
	}
	for _, p := range f.Paths {
		if p == relPath {
			return true
		}
	}
	return false
}

// DirectoryConfig is a directory-level declaration.
type DirectoryConfig struct {
	Path string `toml:"path"`
	// CreateEmpty requests creation even when no file lands in the directory.
	CreateEmpty bool `toml:"create_empty"`
}

// Conventions are the file_conventions section: naming-convention defaults
// applied when no explicit file config decides.
type Conventions struct {
	// AlwaysInclude are path prefixes exempt from minimal-mode exclusion.
	AlwaysInclude []string `toml:"always_include"`
	// FullModeOnly are top-level directory names excluded in minimal mode.
	FullModeOnly []string `toml:"full_mode_only"`
	// TemplateExtensions are extensions rendered through substitution.
	TemplateExtensions []string `toml:"template_extensions"`
	// NoTemplateExtensions are extensions copied verbatim. Wins over
	// TemplateExtensions.
	NoTemplateExtensions []string `toml:"no_template_extensions"`
	// ExecutableExtensions are extensions marked executable in the output.
	ExecutableExtensions []string `toml:"executable_extensions"`
}

// FuzzerOption is one selectable fuzzer.
type FuzzerOption struct {
	Name        string `toml:"name"`
	DisplayName string `toml:"display_name"`
	Description string `toml:"description"`
	Requires    string `toml:"requires"`
}

// FuzzerCatalog enumerates the fuzzers a template supports.
type FuzzerCatalog struct {
	Supported []string       `toml:"supported"`
	Default   string         `toml:"default"`
	Options   []FuzzerOption `toml:"options"`
}

// IntegrationOption is one selectable build integration.
type IntegrationOption struct {
	Name        string   `toml:"name"`
	DisplayName string   `toml:"display_name"`
	Description string   `toml:"description"`
	Files       []string `toml:"files"`
}

// IntegrationCatalog enumerates the build integrations a template supports.
type IntegrationCatalog struct {
	Supported []string            `toml:"supported"`
	Default   string              `toml:"default"`
	Options   []IntegrationOption `toml:"options"`
}

// ValidationGroup is a named group of build-validation commands, run by dev
// mode against a generated project. The core renderer never executes these.
type ValidationGroup struct {
	// Condition restricts the group to matching render contexts.
	Condition string `toml:"condition"`
	// Workdir is a template for the working directory, relative to the
	// generated project root.
	Workdir string `toml:"workdir"`
	// Steps are argv vectors executed in order.
	Steps [][]string `toml:"steps"`
	// Env are environment overrides for every step.
	Env map[string]string `toml:"env"`
	// ExpectSuccess asserts the steps exit zero. Nil means true.
	ExpectSuccess *bool `toml:"expect_success"`
}

// ShouldSucceed reports the expected step outcome. Defaults to true.
func (g *ValidationGroup) ShouldSucceed() bool {
	return g.ExpectSuccess == nil || *g.ExpectSuccess
}

// Hooks are post-generation commands, displayed to the user.
type Hooks struct {
	PostGenerate []string `toml:"post_generate"`
}

// ParseMetadata parses a template.toml document.
func ParseMetadata(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", TemplateConfigFile, err)
	}
	return &meta, nil
}

// FileConfigFor returns the explicit file config covering relPath, or nil.
func (m *Metadata) FileConfigFor(relPath string) *FileConfig {
	if m == nil {
		return nil
	}
	for i := range m.Files {
		if m.Files[i].AppliesTo(relPath) {
			return &m.Files[i]
		}
	}
	return nil
}

// SupportedIntegrations returns the integration names in catalog order, or
// nil when the template declares no catalog.
func (m *Metadata) SupportedIntegrations() []string {
	if m == nil || m.Integrations == nil {
		return nil
	}
	return m.Integrations.Supported
}

// DefaultIntegration returns the catalog default, or empty.
func (m *Metadata) DefaultIntegration() string {
	if m == nil || m.Integrations == nil {
		return ""
	}
	return m.Integrations.Default
}

// ValidationGroupNames returns the validation group names in sorted order so
// dev-mode runs are deterministic.
func (m *Metadata) ValidationGroupNames() []string {
	if m == nil || len(m.Validation) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.Validation))
	for name := range m.Validation {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
