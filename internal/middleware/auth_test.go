package middleware

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_MissingToken(t *testing.T) {
	s, _ := newTestServer(t)
	auth := NewAuthMiddleware(s)

	e := newTestEcho(s)
	called := false
	e.GET("/api/v1/feedback", func(c echo.Context) error {
		called = true
		return nil
	}, auth.RequireAuth)

	rec, env := serve(e, http.MethodGet, "/api/v1/feedback")

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 401, env.Code)
	assert.Equal(t, "Unauthorized", env.Msg)
	assert.Nil(t, env.Data)
}

func TestRequireAuth_RejectedTokenLogsEnvelopeCode(t *testing.T) {
	s, buf := newTestServer(t)
	auth := NewAuthMiddleware(s)

	e := newTestEcho(s)
	e.GET("/api/v1/feedback", func(c echo.Context) error {
		auth.rejectToken(c).ServeHTTP(c.Response(), c.Request())
		return nil
	})

	rec, env := serve(e, http.MethodGet, "/api/v1/feedback")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 401, env.Code)
	assert.Equal(t, "Unauthorized", env.Msg)

	var access logRecord
	for _, r := range records(buf) {
		if r["message"] == "API" {
			access = r
		}
	}
	require.NotNil(t, access)
	assert.Equal(t, 401.0, access["envelope_code"])
	assert.Equal(t, "warn", access["level"])
}
