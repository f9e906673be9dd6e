// Package metrics exposes Prometheus metrics for the API.
//
// A dedicated registry is used instead of the global default so tests and
// multiple servers in one process do not collide.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mobile_api"

// Metrics holds the registry and the collectors the service updates.
type Metrics struct {
	registry  *prometheus.Registry
	envelopes *prometheus.CounterVec
	rateLimit prometheus.Counter
}

// New creates a registry with Go runtime and process collectors plus the
// service's own counters.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		envelopes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelopes_total",
			Help:      "Response envelopes written, by envelope code and success flag.",
		}, []string{"code", "success"}),
		rateLimit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.envelopes,
		m.rateLimit,
	)

	return m
}

// ObserveEnvelope counts one written envelope.
func (m *Metrics) ObserveEnvelope(code int, success bool) {
	m.envelopes.WithLabelValues(strconv.Itoa(code), strconv.FormatBool(success)).Inc()
}

// ObserveRateLimited counts one rejected request.
func (m *Metrics) ObserveRateLimited() {
	m.rateLimit.Inc()
}

// EnvelopeCounter returns the envelope counter for one label pair.
func (m *Metrics) EnvelopeCounter(code, success string) prometheus.Counter {
	return m.envelopes.WithLabelValues(code, success)
}

// RateLimitedCounter returns the rate limiter rejection counter.
func (m *Metrics) RateLimitedCounter() prometheus.Counter {
	return m.rateLimit
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
