// Package middleware holds the Echo middleware chain and the error boundary.
//
// GlobalErrorHandler is the one place where returned errors, unknown routes
// and recovered panics become response envelopes. The remaining middlewares
// attach request ids, tracing, the request logger, Clerk authentication and
// the per-IP rate limit.
package middleware
