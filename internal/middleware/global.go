package middleware

import (
	"net/http"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/response"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/deppfellow/mobile-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups middleware applied to every route, plus the error
// handler every returned error ends up in.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one access log line per request.
//
// Errors are handed to GlobalErrorHandler before the line is written, so the
// envelope code it chose is known. The transport status is 200 for every API
// response; the level is picked from the envelope code instead.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError: true,
		LogURI:      true,
		LogStatus:   true,
		LogError:    true,
		LogLatency:  true,
		LogHost:     true,
		LogMethod:   true,
		LogURIPath:  true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger := GetLogger(c)

			outcome := v.Status
			envelopeCode, hasEnvelope := c.Get(response.EnvelopeCodeKey).(int)
			if hasEnvelope {
				outcome = envelopeCode
			}

			var e *zerolog.Event
			switch {
			case outcome >= 500:
				e = logger.Error()
			case outcome >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}
			if hasEnvelope {
				e = e.Int("envelope_code", envelopeCode)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", v.Status).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors that reach GlobalErrorHandler. The wrap
// runs while the panicking frames are still on the stack, so the logged stack
// points at the panic site.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisablePrintStack: true,
		LogErrorFunc: func(c echo.Context, err error, _ []byte) error {
			return errors.Wrap(err, "panic recovered")
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler is the single boundary where errors become envelopes.
//
// Framework and driver errors are first converted into domain errors; the
// result goes through the Normalizer, which logs it once and picks the
// envelope. The envelope is written with transport status 200.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	// RequestLogger already handed this error over; echo passes it again
	// once the chain unwinds.
	if c.Response().Committed {
		return
	}

	env := global.server.Normalizer.
		WithLogger(GetLogger(c)).
		MapError(convertError(err))

	if writeErr := global.server.Normalizer.Write(c, env); writeErr != nil {
		GetLogger(c).Error().Err(writeErr).Msg("failed to write error envelope")
	}
}

// convertError maps echo and database errors onto errs types. Anything else is
// returned unchanged and ends up as an internal error.
func convertError(err error) error {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		code := errs.StatusFromHTTP(echoErr.Code)

		var message string
		switch {
		case echoErr.Code == http.StatusNotFound:
			message = "Route not found"
		case code == errs.StatusInternalServerError:
			// Keep the original error for the log; the message stays generic.
			return errs.NewInternalServerError(err)
		default:
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
		return errs.NewDomainError(code, message).WithCause(err)
	}

	return sqlerr.HandleError(err)
}
