// Package errs defines the error taxonomy of the API.
//
// Every error that reaches the response boundary is classified into one of
// three kinds:
//   - DomainError: raised on purpose by application code, carries its own StatusCode.
//   - InvalidParameterError: the client sent malformed or invalid data.
//   - anything else: unclassified, reported to the client as a generic internal error.
//
// The StatusCode enum lives here too, because both error kinds and the
// response envelope are expressed in terms of it.
package errs
