package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/books/internal/auth/service"
)

// IdentityMiddleware resolves a caller identity for every request.
//
// If the request carries "Authorization: Bearer <token>" and the token
// verifies, the identity is the token subject and the request is marked
// authenticated. Any other outcome (missing header, wrong scheme, invalid or
// expired token) downgrades to the client address, unauthenticated.
//
// Resolution never rejects a request: its job is admission plumbing, not
// enforcement. Downstream stages decide whether an unauthenticated identity
// may reach the route.
func IdentityMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := resolveIdentity(c, tokenService, logger)

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// resolveIdentity produces an identity for the request. A panic during token
// parsing is recovered into the address fallback so a malformed token can
// never take down the request before rate limiting and logging run.
func resolveIdentity(
	c *gin.Context,
	tokenService authService.TokenService,
	logger *slog.Logger,
) (identity Identity) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("identity resolution panic, falling back to client address",
				slog.Any("panic", r),
				slog.String("path", c.Request.URL.Path))
			identity = Identity{Key: c.ClientIP()}
		}
	}()

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return Identity{Key: c.ClientIP()}
	}

	// Parse Bearer token (case-insensitive)
	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		logger.Debug("malformed authorization header, falling back to client address")
		return Identity{Key: c.ClientIP()}
	}

	subject, err := tokenService.Verify(authHeader[len(bearerPrefix):])
	if err != nil {
		// Verification failure is not a rejection: it only downgrades the
		// identity used for rate limiting and authorization.
		logger.Debug("token verification failed, falling back to client address",
			slog.String("error", err.Error()))
		return Identity{Key: c.ClientIP()}
	}

	logger.Debug("token verified",
		slog.String("subject", subject))

	return Identity{Key: subject, Authenticated: true}
}
