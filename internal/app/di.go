// Package app provides dependency injection container for assembling application components.
package app

import (
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/books/internal/clock"
	"github.com/allisson/books/internal/config"
	"github.com/allisson/books/internal/http"
	"github.com/allisson/books/internal/metrics"
	"github.com/allisson/books/internal/ratelimit"

	authHTTP "github.com/allisson/books/internal/auth/http"
	authService "github.com/allisson/books/internal/auth/service"
	authUseCase "github.com/allisson/books/internal/auth/usecase"
	booksHTTP "github.com/allisson/books/internal/books/http"
	booksUseCase "github.com/allisson/books/internal/books/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	clock           clock.Clock
	metricsProvider *metrics.Provider

	// Auth components
	tokenService authService.TokenService
	loginUseCase authUseCase.LoginUseCase
	authHandler  *authHTTP.AuthHandler

	// Rate limiting
	rateLimiter      *ratelimit.Limiter
	rateLimitMetrics *metrics.RateLimitMetrics

	// Book components
	bookRepo    booksUseCase.BookRepository
	bookUseCase booksUseCase.BookUseCase
	bookHandler *booksHTTP.BookHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags
	loggerInit           sync.Once
	clockInit            sync.Once
	metricsProviderInit  sync.Once
	tokenServiceInit     sync.Once
	loginUseCaseInit     sync.Once
	authHandlerInit      sync.Once
	rateLimiterInit      sync.Once
	rateLimitMetricsInit sync.Once
	bookRepoInit         sync.Once
	bookUseCaseInit      sync.Once
	bookHandlerInit      sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Clock returns the system clock used for token expiry and bucket refill.
func (c *Container) Clock() clock.Clock {
	c.clockInit.Do(func() {
		c.clock = clock.New()
	})
	return c.clock
}

// MetricsProvider returns the metrics provider, or nil if metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil if metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		var metricsProvider *metrics.Provider
		metricsProvider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if metricsProvider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			metricsProvider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// initLogger creates a structured logger based on the configured log level.
func (c *Container) initLogger() *slog.Logger {
	var level slog.Level
	switch c.config.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(
		c.config,
		c.Logger(),
		c.TokenService(),
		c.RateLimiter(),
		c.RateLimitMetrics(),
		c.AuthHandler(),
		c.BookHandler(),
		metricsProvider,
	)

	return server, nil
}
