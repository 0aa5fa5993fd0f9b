package config

import (
	"errors"
	"fmt"
)

// ErrorType categorizes configuration errors.
type ErrorType int

const (
	// ErrNotFound indicates the configuration file does not exist.
	ErrNotFound ErrorType = iota
	// ErrLoadFailed indicates the file could not be read.
	ErrLoadFailed
	// ErrParseFailed indicates the file is not valid TOML.
	ErrParseFailed
)

// Error represents configuration-specific errors.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Path is the configuration file path.
	Path string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Type {
	case ErrNotFound:
		msg = "configuration file not found"
	case ErrLoadFailed:
		msg = "failed to read configuration file"
	case ErrParseFailed:
		msg = "invalid configuration file"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (path: %s): %v", msg, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s (path: %s)", msg, e.Path)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a file-not-found error.
func NewNotFoundError(path string) *Error {
	return &Error{Type: ErrNotFound, Path: path}
}

// NewLoadError creates a read-failure error.
func NewLoadError(path string, cause error) *Error {
	return &Error{Type: ErrLoadFailed, Path: path, Cause: cause}
}

// NewParseError creates a parse-failure error.
func NewParseError(path string, cause error) *Error {
	return &Error{Type: ErrParseFailed, Path: path, Cause: cause}
}

// asConfigError unwraps err into a *Error.
func asConfigError(err error, target **Error) bool {
	return errors.As(err, target)
}
