package provider

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/fuzzinit/fuzz-init/internal/debug"
	"github.com/fuzzinit/fuzz-init/internal/template/model"
)

// collectTemplate walks a template root on any afero filesystem and produces
// the loaded template: parsed configuration document plus all files in
// lexical path order. A missing template.toml is valid; the template then
// runs in pure convention mode.
func collectTemplate(fsys afero.Fs, root string, src model.Source) (*model.Template, error) {
	meta, err := readMetadata(fsys, root)
	if err != nil {
		return nil, err
	}

	files, err := collectFiles(fsys, root)
	if err != nil {
		return nil, err
	}
	debug.Debug("[provider] Collected %d files from %s", len(files), src)

	rootPath := ""
	if _, isOs := fsys.(*afero.OsFs); isOs {
		rootPath = root
	}

	return &model.Template{
		Source:   src,
		Metadata: meta,
		Files:    files,
		RootPath: rootPath,
	}, nil
}

// readMetadata reads and parses template.toml at the tree root. Returns
// (nil, nil) when the document is absent.
func readMetadata(fsys afero.Fs, root string) (*model.Metadata, error) {
	cfgPath := filepath.Join(root, model.TemplateConfigFile)

	data, err := afero.ReadFile(fsys, cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			debug.Debug("[provider] No %s, falling back to conventions", model.TemplateConfigFile)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", model.TemplateConfigFile, err)
	}

	meta, err := model.ParseMetadata(data)
	if err != nil {
		return nil, err
	}
	debug.Debug("[provider] Loaded metadata: name=%s version=%s",
		meta.Template.Name, meta.Template.Version)
	return meta, nil
}

// collectFiles recursively collects all regular files under root. The
// configuration document itself is excluded; it is never template content.
func collectFiles(fsys afero.Fs, root string) ([]model.TemplateFile, error) {
	var files []model.TemplateFile
	var totalBytes int64

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			debug.Debug("[provider] Skipping non-regular file: %s", path)
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relPath = filepath.ToSlash(relPath)

		if relPath == model.TemplateConfigFile {
			return nil
		}

		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", relPath, err)
		}

		files = append(files, model.TemplateFile{
			Path:     relPath,
			Content:  content,
			Mode:     info.Mode(),
			IsBinary: isBinaryContent(content),
		})
		totalBytes += int64(len(content))
		return nil
	})
	if err != nil {
		return nil, err
	}

	debug.Debug("[provider] Collected %d files, total size: %d bytes", len(files), totalBytes)
	return files, nil
}

// isBinaryContent checks content for binary markers: a null byte or invalid
// UTF-8 anywhere in the file. The whole content is inspected; binary files
// must round-trip byte-for-byte, so a marker past any sampling window still
// has to flip the flag.
func isBinaryContent(content []byte) bool {
	if bytes.IndexByte(content, 0) != -1 {
		return true
	}
	return !utf8.Valid(content)
}
