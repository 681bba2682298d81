package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/books/internal/errors"
	"github.com/allisson/books/internal/httputil"
	"github.com/allisson/books/internal/ratelimit"
)

// RequireAuthenticationMiddleware rejects requests whose resolved identity is
// not authenticated with 401.
//
// MUST run after IdentityMiddleware. A rejected request still spends a token
// from the caller's bucket, so anonymous probing of protected routes drains
// the same per-address budget as admitted traffic. The response stays 401
// either way; the limiter is nil when rate limiting is disabled.
func RequireAuthenticationMiddleware(limiter *ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		if !ok || !identity.Authenticated {
			key := identity.Key
			if !ok {
				key = c.ClientIP()
			}

			if limiter != nil {
				limiter.Allow(key)
			}

			logger.Debug("authorization failed: unauthenticated identity on protected route",
				slog.String("identity", key),
				slog.String("path", c.Request.URL.Path))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
