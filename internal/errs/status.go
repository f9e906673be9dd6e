package errs

import (
	"net/http"
	"strings"
)

// StatusCode is the outcome category carried in the envelope's "code" field.
//
// The integer values mirror HTTP status codes so mobile clients can reuse
// their existing handling, but they never become the transport status:
// every API response is sent with HTTP 200.
type StatusCode int

const (
	StatusOK                  StatusCode = http.StatusOK
	StatusBadRequest          StatusCode = http.StatusBadRequest
	StatusUnauthorized        StatusCode = http.StatusUnauthorized
	StatusForbidden           StatusCode = http.StatusForbidden
	StatusNotFound            StatusCode = http.StatusNotFound
	StatusMethodNotAllowed    StatusCode = http.StatusMethodNotAllowed
	StatusTooManyRequests     StatusCode = http.StatusTooManyRequests
	StatusInternalServerError StatusCode = http.StatusInternalServerError
	StatusServiceUnavailable  StatusCode = http.StatusServiceUnavailable
)

// knownStatusCodes is the fixed set of codes the API emits.
var knownStatusCodes = map[StatusCode]struct{}{
	StatusOK:                  {},
	StatusBadRequest:          {},
	StatusUnauthorized:        {},
	StatusForbidden:           {},
	StatusNotFound:            {},
	StatusMethodNotAllowed:    {},
	StatusTooManyRequests:     {},
	StatusInternalServerError: {},
	StatusServiceUnavailable:  {},
}

// Value returns the integer written to the envelope.
func (s StatusCode) Value() int {
	return int(s)
}

// Msg returns the default human-readable message for the code.
//
// Example:
//
//	StatusBadRequest.Msg() == "Bad Request"
func (s StatusCode) Msg() string {
	return http.StatusText(int(s))
}

// String returns the machine-friendly name, e.g. "BAD_REQUEST".
func (s StatusCode) String() string {
	return MakeUpperCaseWithUnderscores(s.Msg())
}

// IsOK reports whether s is the designated success code.
func (s StatusCode) IsOK() bool {
	return s == StatusOK
}

// Known reports whether s belongs to the fixed set of codes.
func (s StatusCode) Known() bool {
	_, ok := knownStatusCodes[s]
	return ok
}

// StatusFromHTTP maps a transport status onto the fixed StatusCode set.
//
// Codes in the set map to themselves. Any other 4xx collapses to
// StatusBadRequest, everything else to StatusInternalServerError.
func StatusFromHTTP(status int) StatusCode {
	code := StatusCode(status)
	if code.Known() {
		return code
	}
	if status >= 400 && status < 500 {
		return StatusBadRequest
	}
	return StatusInternalServerError
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
