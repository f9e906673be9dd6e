package errs

// NewDomainError creates a DomainError with an explicit code and message.
// An empty message falls back to the code's default message.
func NewDomainError(code StatusCode, message string) *DomainError {
	if message == "" {
		message = code.Msg()
	}
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewBadRequestError creates a BAD_REQUEST DomainError.
//
// errors is an optional slice of field errors (constraint or validation details).
func NewBadRequestError(message string, errors []FieldError) *DomainError {
	err := NewDomainError(StatusBadRequest, message)
	err.Errors = errors
	return err
}

// NewUnauthorizedError creates an UNAUTHORIZED DomainError.
func NewUnauthorizedError(message string) *DomainError {
	return NewDomainError(StatusUnauthorized, message)
}

// NewForbiddenError creates a FORBIDDEN DomainError.
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(StatusForbidden, message)
}

// NewNotFoundError creates a NOT_FOUND DomainError.
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(StatusNotFound, message)
}

// NewTooManyRequestsError creates a TOO_MANY_REQUESTS DomainError.
func NewTooManyRequestsError(message string) *DomainError {
	return NewDomainError(StatusTooManyRequests, message)
}

// NewInternalServerError creates an INTERNAL_SERVER_ERROR DomainError.
//
// The message is always the generic status text, never the real cause;
// the cause is kept for logging only.
func NewInternalServerError(cause error) *DomainError {
	return NewDomainError(StatusInternalServerError, "").WithCause(cause)
}

// NewInvalidParameterError reports that the named request parameter is malformed.
func NewInvalidParameterError(param, message string, cause error) *InvalidParameterError {
	return &InvalidParameterError{
		Param:   param,
		Message: message,
		cause:   cause,
	}
}

// ValidationError converts field-level validation failures into an InvalidParameterError.
func ValidationError(param string, fieldErrors []FieldError) *InvalidParameterError {
	return &InvalidParameterError{
		Param:   param,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}
