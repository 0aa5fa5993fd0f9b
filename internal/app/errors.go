package app

import "fmt"

// ErrorType categorizes application errors.
type ErrorType int

const (
	// ErrNoTemplates indicates no embedded templates are available.
	ErrNoTemplates ErrorType = iota
	// ErrUnsupportedIntegration indicates the requested integration is not
	// in the template's catalog.
	ErrUnsupportedIntegration
	// ErrUnsupportedFuzzer indicates the requested fuzzer is not in the
	// template's catalog.
	ErrUnsupportedFuzzer
	// ErrInvalidProjectName indicates the project name is unusable.
	ErrInvalidProjectName
)

// Error represents application-level errors.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(typ ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: typ, Message: fmt.Sprintf(format, args...)}
}
