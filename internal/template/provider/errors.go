package provider

import "fmt"

// ErrorType categorizes provider errors.
type ErrorType int

const (
	// ErrNotFound indicates the requested template does not exist.
	ErrNotFound ErrorType = iota
	// ErrInvalidSource indicates the source string could not be parsed.
	ErrInvalidSource
	// ErrFetchFailed indicates the template could not be retrieved.
	ErrFetchFailed
	// ErrInvalidTemplate indicates the template exists but is malformed,
	// typically an unparseable configuration document.
	ErrInvalidTemplate
)

// Error represents provider-specific errors.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Provider is the provider name.
	Provider string
	// Source is the template source the error relates to.
	Source string
	// Message is the error message.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Provider, e.Message)
	if e.Source != "" {
		msg = fmt.Sprintf("%s (source: %s)", msg, e.Source)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFoundError creates a template-not-found error.
func NewNotFoundError(provider, source string) *Error {
	return &Error{
		Type:     ErrNotFound,
		Provider: provider,
		Source:   source,
		Message:  "template not found",
	}
}

// NewInvalidSourceError creates an unparseable-source error.
func NewInvalidSourceError(provider, source string, cause error) *Error {
	return &Error{
		Type:     ErrInvalidSource,
		Provider: provider,
		Source:   source,
		Message:  "invalid template source",
		Cause:    cause,
	}
}

// NewFetchError creates a retrieval-failure error.
func NewFetchError(provider, source string, cause error) *Error {
	return &Error{
		Type:     ErrFetchFailed,
		Provider: provider,
		Source:   source,
		Message:  "failed to fetch template",
		Cause:    cause,
	}
}

// NewInvalidTemplateError creates a malformed-template error.
func NewInvalidTemplateError(provider, source, message string, cause error) *Error {
	return &Error{
		Type:     ErrInvalidTemplate,
		Provider: provider,
		Source:   source,
		Message:  message,
		Cause:    cause,
	}
}
