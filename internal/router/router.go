// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/mobile-api/internal/handler"
	"github.com/deppfellow/mobile-api/internal/middleware"
	"github.com/deppfellow/mobile-api/internal/model"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance.
//
// Every failure on an API route, including unknown routes and panics, ends in
// GlobalErrorHandler and is answered with an envelope at transport status 200.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must exist
	// before the request logger is built, and Recover must sit inside
	// RequestLogger so a panic is logged with the envelope it produced.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerFeedbackRoutes(v1, h, middlewares)

	return router
}

func registerFeedbackRoutes(g *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	feedback := g.Group("/feedback",
		m.Auth.RequireAuth,
		m.ContextEnhancer.EnhanceContext(),
		m.RateLimit.Limit(),
	)

	fh := h.Feedback
	feedback.POST("", handler.Handle[model.CreateFeedbackPayload, any](fh.Handler, fh.Create))
	feedback.GET("", handler.HandleOptional[model.ListFeedbackQuery, *model.FeedbackPage](fh.Handler, model.ListFeedbackQuery{}, fh.List))
	feedback.GET("/:id", handler.HandleNoParam[*model.Feedback](fh.Handler, fh.Get))
}
