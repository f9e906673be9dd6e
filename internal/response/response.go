// Package response builds the uniform envelope every API response is wrapped in.
//
// The envelope's "code" carries the real outcome; the transport status is
// always 200 so mobile clients parse one shape for every request.
package response

import (
	"github.com/deppfellow/mobile-api/internal/errs"
)

// Envelope is the JSON body of every API response:
//
//	{ "code": 200, "success": true, "msg": "OK", "data": {...} }
//
// Success is true exactly when Code equals errs.StatusOK, and Data is null on
// every failure path. Envelopes are passed by value and never modified after Build.
type Envelope struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Data    any    `json:"data"`
}

// Build is the single envelope-construction routine.
//
// success is derived from code; data is dropped unless code is OK.
func Build(code errs.StatusCode, msg string, data any) Envelope {
	ok := code.IsOK()
	if !ok {
		data = nil
	}
	return Envelope{
		Code:    code.Value(),
		Success: ok,
		Msg:     msg,
		Data:    data,
	}
}

// Success wraps data (which may be nil) in an OK envelope.
func Success(data any) Envelope {
	return Build(errs.StatusOK, errs.StatusOK.Msg(), data)
}

// SuccessMessage is Success with a caller-chosen message in place of "OK".
func SuccessMessage(msg string, data any) Envelope {
	return Build(errs.StatusOK, msg, data)
}

// Failure builds a failed envelope for code with its default message.
func Failure(code errs.StatusCode) Envelope {
	return Build(code, code.Msg(), nil)
}

// BadRequest is the default failure: BAD_REQUEST with its default message.
func BadRequest() Envelope {
	return Failure(errs.StatusBadRequest)
}

// FailureMessage builds a failed envelope with a caller-chosen message.
//
// Prefer returning an errs.DomainError from the handler; this exists for
// call sites that must answer without going through the error handler.
func FailureMessage(code errs.StatusCode, msg string) Envelope {
	return Build(code, msg, nil)
}
