package generator

import "fmt"

// ErrorType categorizes generator errors.
type ErrorType int

const (
	// ErrRenderFailed indicates template rendering of a filename or file
	// content failed.
	ErrRenderFailed ErrorType = iota
	// ErrWriteFailed indicates a file or directory write failed.
	ErrWriteFailed
	// ErrInvalidOptions indicates the generation options were invalid.
	ErrInvalidOptions
)

// Error represents generator-specific errors. Any per-file failure is fatal
// to the whole run; the generator never skips past a failed file and never
// rolls back files already written.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Message is the error message.
	Message string
	// File is the template-relative file path related to the error.
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(typ ErrorType, message, file string, cause error) *Error {
	return &Error{Type: typ, Message: message, File: file, Cause: cause}
}
