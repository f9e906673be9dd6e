package router

import (
	"github.com/deppfellow/mobile-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API.
// They answer with plain JSON or text, not envelopes.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	// Prometheus scrape endpoint.
	r.GET("/metrics", h.Metrics.Serve)
}
