package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL = 10 * time.Minute

	// limiterSweepEvery is how many Allow calls pass between idle sweeps.
	limiterSweepEvery = 512
)

// KeyLimiter is a token bucket per key with eviction of idle keys.
type KeyLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu    sync.Mutex
	byKey map[string]*limiterEntry
	calls uint64
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyLimiter returns nil when rps or burst is not positive; a nil
// *KeyLimiter allows everything.
func NewKeyLimiter(rps float64, burst int, idleTTL time.Duration) *KeyLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = limiterIdleTTL
	}
	return &KeyLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		byKey:   make(map[string]*limiterEntry),
	}
}

// Allow consumes one token for key at now.
func (l *KeyLimiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.calls++
	if l.calls%limiterSweepEvery == 0 {
		l.evictIdle(now)
	}

	return allowed
}

func (l *KeyLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-l.idleTTL)
	for k, v := range l.byKey {
		if v.lastSeen.Before(cutoff) {
			delete(l.byKey, k)
		}
	}
}

// Len returns the number of tracked keys.
func (l *KeyLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKey)
}

// RateLimitMiddleware enforces the per client IP limit from config.
type RateLimitMiddleware struct {
	server  *server.Server
	limiter *KeyLimiter
	now     func() time.Time
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	var limiter *KeyLimiter
	if cfg := s.Config.RateLimit; cfg.Enabled {
		limiter = NewKeyLimiter(cfg.RPS, cfg.Burst, limiterIdleTTL)
	}

	return &RateLimitMiddleware{
		server:  s,
		limiter: limiter,
		now:     time.Now,
	}
}

// Limit rejects requests over the limit with TOO_MANY_REQUESTS.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.limiter.Allow(c.RealIP(), r.now()) {
				return next(c)
			}

			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("endpoint", c.Path()).Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError("")
		}
	}
}

// RecordRateLimitHit counts a rejection in prometheus and New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.Metrics != nil {
		r.server.Metrics.ObserveRateLimited()
	}

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
