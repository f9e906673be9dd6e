package handler

import (
	"time"

	"github.com/deppfellow/mobile-api/internal/middleware"
	"github.com/deppfellow/mobile-api/internal/param"
	"github.com/deppfellow/mobile-api/internal/response"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler is embedded by concrete handlers for access to shared dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// ParamHandlerFunc is an endpoint that receives the decoded "param" value.
type ParamHandlerFunc[Req, Res any] func(c echo.Context, p param.Param[Req]) (Res, error)

// HandlerFunc is an endpoint that reads no "param" value.
type HandlerFunc[Res any] func(c echo.Context) (Res, error)

// handleRequest is the pipeline shared by every endpoint:
//
//   - decode "param" (skipped when decode is nil)
//   - run the endpoint
//   - write the result as a success envelope
//
// Errors are returned untouched; GlobalErrorHandler maps them to envelopes.
func handleRequest(
	h Handler,
	c echo.Context,
	operation string,
	decode func(c echo.Context) error,
	run func(c echo.Context) (any, error),
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", operation).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	var decodeDuration time.Duration
	if decode != nil {
		decodeStart := time.Now()
		err := decode(c)
		decodeDuration = time.Since(decodeStart)

		if err != nil {
			logger.Debug().
				Err(err).
				Dur("decode_duration", decodeDuration).
				Msg("param decoding failed")

			if txn != nil {
				txn.AddAttribute("param.status", "failed")
				txn.AddAttribute("param.duration_ms", decodeDuration.Milliseconds())
			}
			return err
		}

		if txn != nil {
			txn.AddAttribute("param.status", "success")
			txn.AddAttribute("param.duration_ms", decodeDuration.Milliseconds())
		}
	}

	handlerStart := time.Now()
	result, err := run(c)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		logEvent(&logger, decodeDuration, handlerDuration, start).Msg("handler returned an error")
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
	}

	logEvent(&logger, decodeDuration, handlerDuration, start).Msg("request completed successfully")

	return h.server.Normalizer.Write(c, response.Success(result))
}

func logEvent(logger *zerolog.Logger, decode, handler time.Duration, start time.Time) *zerolog.Event {
	return logger.Debug().
		Dur("decode_duration", decode).
		Dur("handler_duration", handler).
		Dur("total_duration", time.Since(start))
}

// Handle decodes the required "param" value into Req (one item or a list)
// and passes it to fn.
//
//	g.POST("/feedback", handler.Handle(h.Handler, h.Create))
func Handle[Req, Res any](h Handler, fn ParamHandlerFunc[Req, Res]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p param.Param[Req]
		return handleRequest(h, c, "handler",
			func(c echo.Context) (err error) {
				p, err = param.Decode[Req](c.FormValue(param.Name))
				return err
			},
			func(c echo.Context) (any, error) {
				return fn(c, p)
			})
	}
}

// HandleOptional is Handle for endpoints where "param" may be omitted;
// fallback is used when it is.
func HandleOptional[Req, Res any](h Handler, fallback Req, fn ParamHandlerFunc[Req, Res]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var p param.Param[Req]
		return handleRequest(h, c, "handler_optional_param",
			func(c echo.Context) (err error) {
				p, err = param.DecodeOptional(c.FormValue(param.Name), fallback)
				return err
			},
			func(c echo.Context) (any, error) {
				return fn(c, p)
			})
	}
}

// HandleNoParam wraps an endpoint that reads only path values.
func HandleNoParam[Res any](h Handler, fn HandlerFunc[Res]) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(h, c, "handler_no_param", nil,
			func(c echo.Context) (any, error) {
				return fn(c)
			})
	}
}
