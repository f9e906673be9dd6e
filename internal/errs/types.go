package errs

import (
	"fmt"
	"strings"
)

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "content", "error": "is required" }
//
// Field errors are logged for diagnosis; the envelope itself has no slot for them.
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "content").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// DomainError is raised intentionally by application code and carries the
// exact status code and message the client should see.
type DomainError struct {
	Code    StatusCode
	Message string

	// Errors holds optional field-level details, typically from database constraints.
	Errors []FieldError

	cause error
}

// Error makes *DomainError satisfy the built-in error interface.
func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a *DomainError with the same Code.
//
// A target with a zero Code matches any DomainError.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

// WithMessage returns a copy of the error with Message replaced.
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
		Errors:  e.Errors,
		cause:   e.cause,
	}
}

// WithCause returns a copy of the error that wraps cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Errors:  e.Errors,
		cause:   cause,
	}
}

// InvalidParameterError reports client-supplied data that could not be
// decoded or did not pass validation. Its message is safe to show to clients.
type InvalidParameterError struct {
	// Param names the request parameter at fault (usually "param").
	Param   string
	Message string
	Errors  []FieldError

	cause error
}

func (e *InvalidParameterError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *InvalidParameterError) Unwrap() error {
	return e.cause
}

// Detail renders the message together with any field errors, e.g.
// "Validation failed: content is required; category must be one of: bug other".
func (e *InvalidParameterError) Detail() string {
	if len(e.Errors) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}
