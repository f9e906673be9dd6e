// Package param decodes the single "param" request parameter mobile clients
// send with every call.
//
// The parameter holds percent-encoded JSON: either one object or an array of
// objects of the same shape. Decode is generic, so the target shape is fixed
// at the call site:
//
//	p, err := param.Decode[model.CreateFeedbackPayload](c.FormValue(param.Name))
//
// Every failure is an *errs.InvalidParameterError; nothing is swallowed.
package param

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/validation"
)

// Name is the request parameter every endpoint reads.
const Name = "param"

// Param is a decoded parameter: a single value or an ordered list of values.
type Param[T any] struct {
	items  []T
	isList bool
}

// IsList reports whether the client sent a JSON array.
func (p Param[T]) IsList() bool {
	return p.isList
}

// Items returns the decoded values in request order. A single object yields
// one item.
func (p Param[T]) Items() []T {
	return p.items
}

// One returns the decoded value when the client sent a single object.
// ok is false for list input.
func (p Param[T]) One() (v T, ok bool) {
	if p.isList || len(p.items) != 1 {
		return v, false
	}
	return p.items[0], true
}

// Len returns the number of decoded items.
func (p Param[T]) Len() int {
	return len(p.items)
}

// Decode percent-decodes raw and unmarshals it into T, or into []T when the
// text is bracket-delimited.
//
// raw is expected to have been taken from the request already (query or form),
// and is decoded once more because clients encode the JSON before placing it in
// the parameter. Unknown fields and trailing data are rejected. When *T
// implements validation.Validatable every item is validated.
func Decode[T any](raw string) (Param[T], error) {
	var p Param[T]

	if strings.TrimSpace(raw) == "" {
		return p, errs.NewInvalidParameterError(Name, Name+" is required", nil)
	}

	text, err := url.QueryUnescape(raw)
	if err != nil {
		return p, errs.NewInvalidParameterError(Name, Name+" is not valid percent-encoding", err)
	}
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		var items []T
		if err := decodeStrict(text, &items); err != nil {
			return p, err
		}
		p.items, p.isList = items, true
	} else {
		var item T
		if err := decodeStrict(text, &item); err != nil {
			return p, err
		}
		p.items = []T{item}
	}

	for i := range p.items {
		v, ok := any(&p.items[i]).(validation.Validatable)
		if !ok {
			break
		}
		if err := validation.Validate(Name, v); err != nil {
			if p.isList {
				return Param[T]{}, indexed(i, err)
			}
			return Param[T]{}, err
		}
	}

	return p, nil
}

// DecodeOptional is Decode for endpoints where the parameter may be omitted.
// A blank raw value yields fallback as a single item and is not validated.
func DecodeOptional[T any](raw string, fallback T) (Param[T], error) {
	if strings.TrimSpace(raw) == "" {
		return Param[T]{items: []T{fallback}}, nil
	}
	return Decode[T](raw)
}

// decodeStrict unmarshals text into dst, rejecting unknown fields and trailing data.
func decodeStrict(text string, dst any) error {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return errs.NewInvalidParameterError(Name, describe(err), err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errs.NewInvalidParameterError(Name, Name+" has unexpected data after the JSON value", err)
	}
	return nil
}

// describe turns a json decoding error into a message safe to return to clients.
func describe(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &syntaxErr):
		return Name + " is not valid JSON"
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return fmt.Sprintf("%s field %q must be %s", Name, typeErr.Field, jsonKind(typeErr.Type.Kind().String()))
		}
		return fmt.Sprintf("%s must be %s, got %s", Name, jsonKind(typeErr.Type.Kind().String()), typeErr.Value)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return Name + " is not valid JSON (unexpected end of input)"
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return Name + " has " + strings.TrimPrefix(err.Error(), "json: ")
	default:
		return Name + " is not valid JSON"
	}
}

// jsonKind names a Go kind the way a client thinks about JSON values.
func jsonKind(kind string) string {
	switch kind {
	case "struct", "map":
		return "an object"
	case "slice", "array":
		return "an array"
	case "string":
		return "a string"
	case "bool":
		return "a boolean"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return "a number"
	default:
		return kind
	}
}

// indexed prefixes the field errors of a list item with its position,
// e.g. "[1].content".
func indexed(i int, err error) error {
	var paramErr *errs.InvalidParameterError
	if !errors.As(err, &paramErr) {
		return err
	}

	fields := make([]errs.FieldError, 0, len(paramErr.Errors))
	for _, fe := range paramErr.Errors {
		fields = append(fields, errs.FieldError{
			Field: fmt.Sprintf("[%d].%s", i, fe.Field),
			Error: fe.Error,
		})
	}
	if len(fields) == 0 {
		return errs.NewInvalidParameterError(Name, fmt.Sprintf("[%d]: %s", i, paramErr.Message), err)
	}
	return errs.ValidationError(Name, fields)
}

// Encode is the client-side inverse of Decode: it marshals v to JSON and
// percent-encodes it. Tests and internal callers use it to build requests.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return url.QueryEscape(strings.TrimSpace(buf.String())), nil
}
