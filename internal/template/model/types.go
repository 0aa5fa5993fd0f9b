package model

import "os"

// Special file names used by fuzz-init.
const (
	// TemplateConfigFile is the template configuration file name in the
	// template root. It is never copied to the output tree.
	TemplateConfigFile = "template.toml"
	// PostGenerateFile is the post-generation message file. If the generated
	// project contains it at its root, the CLI displays it and deletes it.
	PostGenerateFile = "NEXT_STEPS.md"
)

// SourceKind identifies where a template comes from.
type SourceKind string

const (
	// SourceEmbedded is a template compiled into the binary.
	SourceEmbedded SourceKind = "embedded"
	// SourceLocal is a template read from a filesystem directory.
	SourceLocal SourceKind = "local"
	// SourceGitHub is a template downloaded from a GitHub repository.
	SourceGitHub SourceKind = "github"
)

// Source is a resolved reference to a template location.
type Source struct {
	// Kind is the provider kind.
	Kind SourceKind
	// Name is the template name for embedded templates (e.g. "c", "cpp").
	Name string
	// Path is the directory path for local templates.
	Path string
	// Org is the repository owner for GitHub templates.
	Org string
	// Repo is the repository name for GitHub templates.
	Repo string
}

// String returns a display form of the source.
func (s Source) String() string {
	switch s.Kind {
	case SourceEmbedded:
		return s.Name
	case SourceLocal:
		return s.Path
	case SourceGitHub:
		return "github:" + s.Org + "/" + s.Repo
	}
	return ""
}

// TemplateFile represents a single file in a template tree.
type TemplateFile struct {
	// Path is the slash-separated path relative to the template root. It is
	// the stable identity used for configuration lookup.
	Path string
	// Content is the raw file content.
	Content []byte
	// Mode is the source file permission mode.
	Mode os.FileMode
	// IsBinary indicates the content failed the text heuristic and must be
	// copied byte-for-byte.
	IsBinary bool
}

// Template is a fully loaded template tree plus its configuration.
type Template struct {
	// Source records where the template came from.
	Source Source
	// Metadata is the parsed template.toml, nil when the template has none.
	Metadata *Metadata
	// Files are all template files in lexical path order.
	Files []TemplateFile
	// RootPath is the local directory the tree was read from. Empty for
	// embedded templates.
	RootPath string
}
