package provider

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
	"github.com/fuzzinit/fuzz-init/templates"
)

// EmbeddedProvider serves the template trees compiled into the binary.
type EmbeddedProvider struct {
	fsys afero.Fs
}

// NewEmbeddedProvider creates a provider over the built-in template bundle.
func NewEmbeddedProvider() *EmbeddedProvider {
	return &EmbeddedProvider{fsys: afero.FromIOFS{FS: templates.FS}}
}

// newEmbeddedProviderWithFs is used by tests to substitute the bundle.
func newEmbeddedProviderWithFs(fsys afero.Fs) *EmbeddedProvider {
	return &EmbeddedProvider{fsys: fsys}
}

// Name returns the provider name.
func (p *EmbeddedProvider) Name() string {
	return "embedded"
}

// List enumerates the available embedded template names, sorted.
func (p *EmbeddedProvider) List() ([]string, error) {
	entries, err := afero.ReadDir(p.fsys, ".")
	if err != nil {
		return nil, NewFetchError(p.Name(), "", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	debug.Debug("[embedded] Available templates: %v", names)
	return names, nil
}

// Resolve converts a template name to a Source. Matching is
// case-insensitive against the embedded template list.
func (p *EmbeddedProvider) Resolve(source string) (model.Source, error) {
	names, err := p.List()
	if err != nil {
		return model.Source{}, err
	}
	for _, name := range names {
		if strings.EqualFold(name, source) {
			return model.Source{Kind: model.SourceEmbedded, Name: name}, nil
		}
	}
	return model.Source{}, NewNotFoundError(p.Name(), source)
}

// Fetch loads an embedded template tree.
func (p *EmbeddedProvider) Fetch(ctx context.Context, src model.Source) (*model.Template, error) {
	debug.Debug("[embedded] Fetching template: %s", src.Name)

	exists, err := afero.DirExists(p.fsys, src.Name)
	if err != nil {
		return nil, NewFetchError(p.Name(), src.Name, err)
	}
	if !exists {
		return nil, NewNotFoundError(p.Name(), src.Name)
	}

	tpl, err := collectTemplate(p.fsys, src.Name, src)
	if err != nil {
		return nil, NewInvalidTemplateError(p.Name(), src.Name, "failed to load template", err)
	}
	return tpl, nil
}
