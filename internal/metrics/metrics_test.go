package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveEnvelope(t *testing.T) {
	m := New()

	m.ObserveEnvelope(200, true)
	m.ObserveEnvelope(200, true)
	m.ObserveEnvelope(404, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EnvelopeCounter("200", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnvelopeCounter("404", "false")))
}

func TestObserveRateLimited(t *testing.T) {
	m := New()
	m.ObserveRateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitedCounter()))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveEnvelope(500, false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mobile_api_envelopes_total{code="500",success="false"} 1`)
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
