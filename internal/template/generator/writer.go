package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fuzzinit/fuzz-init/internal/debug"
)

// Writer writes generated files to the filesystem.
type Writer interface {
	// WriteFile writes content to a file, creating parent directories as
	// needed. If executable is true the file is marked executable.
	WriteFile(path string, content []byte, executable bool) error

	// CreateDir creates a directory and any necessary parents.
	CreateDir(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer for filesystem operations.
type FileWriter struct{}

// NewFileWriter creates a new FileWriter.
func NewFileWriter() Writer {
	return &FileWriter{}
}

// WriteFile writes content atomically using a temporary file and rename, then
// applies executable permission bits best-effort.
func (w *FileWriter) WriteFile(path string, content []byte, executable bool) error {
	debug.Debug("[generator] Writing file: %s (size: %d bytes, executable: %v)",
		path, len(content), executable)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return err
		}
	}

	mode := os.FileMode(0o644)
	if executable {
		mode = 0o755
	}

	tmp, err := os.CreateTemp(dir, ".fuzz-init-*")
	if err != nil {
		return newError(ErrWriteFailed, "failed to create temporary file", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return newError(ErrWriteFailed, "failed to write file content", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return newError(ErrWriteFailed, "failed to close temporary file", path, err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil && !isPermissionless() {
		os.Remove(tmpPath)
		return newError(ErrWriteFailed, "failed to set file permissions", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return newError(ErrWriteFailed, "failed to write file", path, err)
	}
	return nil
}

// CreateDir creates a directory and any necessary parent directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return newError(ErrWriteFailed,
			fmt.Sprintf("failed to create directory %s", path), "", err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// isPermissionless reports whether the platform lacks a POSIX permission-bit
// model, making chmod failures non-fatal.
func isPermissionless() bool {
	return runtime.GOOS == "windows"
}
