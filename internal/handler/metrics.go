package handler

import (
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsHandler serves the prometheus registry.
type MetricsHandler struct {
	Handler
}

func NewMetricsHandler(s *server.Server) *MetricsHandler {
	return &MetricsHandler{Handler: NewHandler(s)}
}

func (h *MetricsHandler) Serve(c echo.Context) error {
	h.server.Metrics.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}
