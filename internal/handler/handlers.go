package handler

import (
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/deppfellow/mobile-api/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health   *HealthHandler
	Metrics  *MetricsHandler
	Feedback *FeedbackHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Metrics:  NewMetricsHandler(s),
		Feedback: NewFeedbackHandler(s, services.Feedback),
	}
}
