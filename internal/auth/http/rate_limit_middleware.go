package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/books/internal/metrics"
	"github.com/allisson/books/internal/ratelimit"
)

// RateLimitMiddleware enforces per-identity rate limiting as the final
// admission stage before route handlers.
//
// MUST run after IdentityMiddleware: the bucket key is the identity it
// resolved, so authenticated callers are throttled by their verified subject
// and anonymous callers by their client address. If the identity middleware
// has not run the client address is used directly.
//
// Returns:
//   - 429 Too Many Requests with a Retry-After header and retry_after body
//     field when the bucket is empty
//   - Continues with an X-RateLimit-Remaining header when admitted
func RateLimitMiddleware(
	limiter *ratelimit.Limiter,
	rateLimitMetrics *metrics.RateLimitMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c.Request.Context())
		key := identity.Key
		if !ok {
			key = c.ClientIP()
		}

		decision := limiter.Allow(key)
		rateLimitMetrics.RecordDecision(c.Request.Context(), decision.Allowed)

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))

			logger.Warn("rate limit exceeded",
				slog.String("identity", key),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests. Please retry after the specified delay.",
				"retry_after": retryAfter,
			})
			c.Abort()
			return
		}

		logger.Debug("request admitted",
			slog.String("identity", key),
			slog.Int("remaining", decision.Remaining))

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}
