package response

import (
	"net/http"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Observer is notified of every envelope written to a client.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveEnvelope(code int, success bool)
}

// Normalizer turns handler outcomes into envelopes.
//
// It holds no per-request state and is safe for concurrent use. The logger is
// injected; use WithLogger to bind a request-scoped one.
type Normalizer struct {
	logger   *zerolog.Logger
	observer Observer
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithObserver reports written envelopes to o.
func WithObserver(o Observer) Option {
	return func(n *Normalizer) {
		n.observer = o
	}
}

// NewNormalizer constructs a Normalizer. A nil logger disables logging.
func NewNormalizer(logger *zerolog.Logger, opts ...Option) *Normalizer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	n := &Normalizer{logger: logger}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// WithLogger returns a copy of n that logs to logger.
func (n *Normalizer) WithLogger(logger *zerolog.Logger) *Normalizer {
	if logger == nil {
		return n
	}
	return &Normalizer{
		logger:   logger,
		observer: n.observer,
	}
}

// MapError classifies err and returns the envelope the client should receive.
//
// Domain errors keep their code and message, invalid parameters become
// BAD_REQUEST with their message, anything else becomes INTERNAL_SERVER_ERROR
// with the generic message. Exactly one error-level record is logged per call,
// carrying the original error and its stack; the envelope never does.
func (n *Normalizer) MapError(err error) Envelope {
	c := errs.Classify(err)

	var env Envelope
	switch c.Kind {
	case errs.KindDomain, errs.KindInvalidParameter:
		env = FailureMessage(c.Code, c.Message)
	case errs.KindUnclassified:
		env = Failure(errs.StatusInternalServerError)
	}

	logErr := err
	if logErr == nil {
		logErr = errors.New("nil error reached the response boundary")
	} else if c.Kind == errs.KindUnclassified && !hasStack(logErr) {
		logErr = errors.WithStack(logErr)
	}

	event := n.logger.Error().Stack().
		Err(logErr).
		Str("error_kind", c.Kind.String()).
		Int("code", env.Code)

	if len(c.Fields) > 0 {
		event = event.Interface("field_errors", c.Fields)
	}

	event.Msg(env.Msg)

	return env
}

// EnvelopeCodeKey is the echo context key under which Write stores the code
// of the envelope it sent, for the access log.
const EnvelopeCodeKey = "envelope_code"

// Write sends env as JSON with transport status 200 and reports it to the observer.
func (n *Normalizer) Write(c echo.Context, env Envelope) error {
	c.Set(EnvelopeCodeKey, env.Code)
	if n.observer != nil {
		n.observer.ObserveEnvelope(env.Code, env.Success)
	}
	return c.JSON(http.StatusOK, env)
}

// hasStack reports whether any error in the chain already records a stack trace.
func hasStack(err error) bool {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}

	var st stackTracer
	return errors.As(err, &st)
}
