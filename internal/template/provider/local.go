package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// LocalProvider serves templates from local filesystem directories.
type LocalProvider struct {
	fsys afero.Fs
}

// NewLocalProvider creates a local filesystem provider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{fsys: afero.NewOsFs()}
}

// Name returns the provider name.
func (p *LocalProvider) Name() string {
	return "local"
}

// Resolve converts a directory path (optionally a file:// URL) to a Source.
func (p *LocalProvider) Resolve(source string) (model.Source, error) {
	path := strings.TrimPrefix(source, "file://")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return model.Source{}, NewInvalidSourceError(p.Name(), source, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Source{}, NewNotFoundError(p.Name(), source)
		}
		return model.Source{}, NewFetchError(p.Name(), source, err)
	}
	if !info.IsDir() {
		return model.Source{}, NewInvalidSourceError(p.Name(), source,
			fmt.Errorf("template source must be a directory"))
	}

	debug.Debug("[local] Resolved %s -> %s", source, absPath)
	return model.Source{Kind: model.SourceLocal, Path: absPath}, nil
}

// Fetch loads a template from a local directory.
func (p *LocalProvider) Fetch(ctx context.Context, src model.Source) (*model.Template, error) {
	debug.Debug("[local] Fetching template from: %s", src.Path)

	info, err := p.fsys.Stat(src.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewNotFoundError(p.Name(), src.Path)
		}
		return nil, NewFetchError(p.Name(), src.Path, err)
	}
	if !info.IsDir() {
		return nil, NewInvalidSourceError(p.Name(), src.Path,
			fmt.Errorf("template source must be a directory"))
	}

	tpl, err := collectTemplate(p.fsys, src.Path, src)
	if err != nil {
		return nil, NewInvalidTemplateError(p.Name(), src.Path, "failed to load template", err)
	}
	return tpl, nil
}
