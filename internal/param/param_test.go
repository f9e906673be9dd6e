package param

import (
	"net/url"
	"testing"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shape struct {
	A int `json:"a"`
}

type note struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"max=10"`
}

func (n *note) Validate() error {
	return validation.Struct(n)
}

func requireInvalidParam(t *testing.T, err error) *errs.InvalidParameterError {
	t.Helper()

	var paramErr *errs.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, Name, paramErr.Param)
	return paramErr
}

func TestDecode_List(t *testing.T) {
	p, err := Decode[shape](`[{"a":1},{"a":2}]`)
	require.NoError(t, err)

	assert.True(t, p.IsList())
	assert.Equal(t, []shape{{A: 1}, {A: 2}}, p.Items())
	assert.Equal(t, 2, p.Len())

	_, ok := p.One()
	assert.False(t, ok)
}

func TestDecode_Single(t *testing.T) {
	p, err := Decode[shape](`{"a":1}`)
	require.NoError(t, err)

	assert.False(t, p.IsList())
	one, ok := p.One()
	require.True(t, ok)
	assert.Equal(t, shape{A: 1}, one)
	assert.Equal(t, []shape{{A: 1}}, p.Items())
}

func TestDecode_PercentEncoded(t *testing.T) {
	raw := url.QueryEscape(`[{"a":3}]`)

	p, err := Decode[shape](raw)
	require.NoError(t, err)
	assert.Equal(t, []shape{{A: 3}}, p.Items())
}

func TestDecode_SurroundingWhitespace(t *testing.T) {
	p, err := Decode[shape]("  [{\"a\":1}]\n")
	require.NoError(t, err)
	assert.True(t, p.IsList())
}

func TestDecode_EmptyList(t *testing.T) {
	p, err := Decode[shape](`[]`)
	require.NoError(t, err)

	assert.True(t, p.IsList())
	assert.Equal(t, 0, p.Len())
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		msg  string
	}{
		{"absent", "", "param is required"},
		{"blank", "   ", "param is required"},
		{"not json", "not json", "param is not valid JSON"},
		{"bad percent encoding", "%zz", "param is not valid percent-encoding"},
		{"truncated object", `{"a":1`, "param is not valid JSON (unexpected end of input)"},
		{"wrong field type", `{"a":"x"}`, `param field "a" must be a number`},
		{"unknown field", `{"a":1,"b":2}`, `param has unknown field "b"`},
		{"trailing data", `{"a":1} {"a":2}`, "param has unexpected data after the JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[shape](tt.raw)

			paramErr := requireInvalidParam(t, err)
			assert.Equal(t, tt.msg, paramErr.Message)

			c := errs.Classify(err)
			assert.Equal(t, errs.KindInvalidParameter, c.Kind)
			assert.Equal(t, errs.StatusBadRequest, c.Code)
		})
	}
}

func TestDecode_ValidatesSingle(t *testing.T) {
	_, err := Decode[note](`{"body":"short"}`)

	paramErr := requireInvalidParam(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is required"}}, paramErr.Errors)
}

func TestDecode_ValidatesListWithIndex(t *testing.T) {
	_, err := Decode[note](`[{"title":"ok"},{"title":"x","body":"far too long"}]`)

	paramErr := requireInvalidParam(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "[1].body", Error: "must not exceed 10 characters"}}, paramErr.Errors)
	assert.Equal(t, "Validation failed: [1].body must not exceed 10 characters", paramErr.Detail())
}

func TestEncode_RoundTrip(t *testing.T) {
	in := []note{{Title: "a+b & c", Body: "100%"}}

	raw, err := Encode(in)
	require.NoError(t, err)

	p, err := Decode[note](raw)
	require.NoError(t, err)
	assert.Equal(t, in, p.Items())
}

func TestDecodeOptional(t *testing.T) {
	p, err := DecodeOptional("  ", shape{A: 7})
	require.NoError(t, err)
	one, ok := p.One()
	require.True(t, ok)
	assert.Equal(t, 7, one.A)

	p, err = DecodeOptional(`{"a":3}`, shape{A: 7})
	require.NoError(t, err)
	one, _ = p.One()
	assert.Equal(t, 3, one.A)

	_, err = DecodeOptional("nope", shape{})
	requireInvalidParam(t, err)
}
