package app

import (
	authHTTP "github.com/allisson/books/internal/auth/http"
	authService "github.com/allisson/books/internal/auth/service"
	authUseCase "github.com/allisson/books/internal/auth/usecase"
	"github.com/allisson/books/internal/metrics"
	"github.com/allisson/books/internal/ratelimit"
)

// TokenService returns the token service for issuing and verifying identity tokens.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService(
			c.config.AuthSecretKey,
			c.config.AuthTokenExpiration,
			c.Clock(),
		)
	})
	return c.tokenService
}

// LoginUseCase returns the login use case.
func (c *Container) LoginUseCase() authUseCase.LoginUseCase {
	c.loginUseCaseInit.Do(func() {
		c.loginUseCase = authUseCase.NewLoginUseCase(
			c.config,
			c.TokenService(),
			c.Logger(),
		)
	})
	return c.loginUseCase
}

// AuthHandler returns the auth HTTP handler.
func (c *Container) AuthHandler() *authHTTP.AuthHandler {
	c.authHandlerInit.Do(func() {
		c.authHandler = authHTTP.NewAuthHandler(
			c.LoginUseCase(),
			c.Logger(),
		)
	})
	return c.authHandler
}

// RateLimiter returns the per-identity rate limiter.
func (c *Container) RateLimiter() *ratelimit.Limiter {
	c.rateLimiterInit.Do(func() {
		c.rateLimiter = ratelimit.NewLimiter(
			c.config.RateLimitCapacity,
			c.config.RateLimitWindow,
			c.Clock(),
			c.Logger(),
		)
	})
	return c.rateLimiter
}

// RateLimitMetrics returns the rate limit decision metrics, or nil if metrics
// are disabled or unavailable.
func (c *Container) RateLimitMetrics() *metrics.RateLimitMetrics {
	c.rateLimitMetricsInit.Do(func() {
		metricsProvider, err := c.MetricsProvider()
		if err != nil || metricsProvider == nil {
			return
		}
		c.rateLimitMetrics = metrics.NewRateLimitMetrics(
			metricsProvider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	})
	return c.rateLimitMetrics
}
