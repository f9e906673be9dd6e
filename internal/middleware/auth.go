package middleware

import (
	"net/http"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/deppfellow/mobile-api/internal/response"
	"github.com/deppfellow/mobile-api/internal/server"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth verifies the Clerk session token in the Authorization header
// and stores the user id, role and permissions in the echo context.
//
// A rejected token or a request without session claims gets an UNAUTHORIZED
// envelope like any other failure.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	verified := func(c echo.Context) error {
		start := time.Now()

		claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
		if !ok {
			GetLogger(c).Warn().
				Str("function", "RequireAuth").
				Dur("duration", time.Since(start)).
				Msg("could not get session claims from context")

			return errs.NewUnauthorizedError("")
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.ActiveOrganizationRole)
		c.Set("permissions", claims.Claims.ActiveOrganizationPermissions)

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Str("user_id", claims.Subject).
			Dur("duration", time.Since(start)).
			Msg("user authenticated successfully")

		return next(c)
	}

	// The Clerk middleware is built per request so its failure handler can
	// write through the echo context.
	return func(c echo.Context) error {
		return echo.WrapMiddleware(
			clerkhttp.WithHeaderAuthorization(
				clerkhttp.AuthorizationFailureHandler(auth.rejectToken(c)),
			))(verified)(c)
	}
}

// rejectToken runs inside the Clerk middleware, outside echo's error path,
// so it writes the envelope itself.
func (auth *AuthMiddleware) rejectToken(c echo.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		GetLogger(c).Warn().
			Str("function", "RequireAuth").
			Str("path", r.URL.Path).
			Msg("rejected session token")

		if err := auth.server.Normalizer.Write(c, response.Failure(errs.StatusUnauthorized)); err != nil {
			GetLogger(c).Error().
				Err(err).
				Str("function", "RequireAuth").
				Msg("failed to write JSON response")
		}
	}
}
