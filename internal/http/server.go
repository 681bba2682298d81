package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/books/internal/auth/http"
	authService "github.com/allisson/books/internal/auth/service"
	booksHTTP "github.com/allisson/books/internal/books/http"
	"github.com/allisson/books/internal/config"
	"github.com/allisson/books/internal/metrics"
	"github.com/allisson/books/internal/ratelimit"
)

// Server represents the HTTP server serving the API.
//
// The router composes the request-admission pipeline in a fixed order for
// every request: identity resolution, then route authorization (protected
// routes only), then rate limiting, then the route handler. Each stage's
// output feeds the next's decision, so the order is not negotiable.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes and middleware wired.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	tokenService authService.TokenService,
	limiter *ratelimit.Limiter,
	rateLimitMetrics *metrics.RateLimitMetrics,
	authHandler *authHTTP.AuthHandler,
	bookHandler *booksHTTP.BookHandler,
	metricsProvider *metrics.Provider,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(LoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health and readiness endpoints sit outside the admission pipeline.
	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler)

	// Stage 1: identity resolution runs unconditionally for every API route.
	identityMiddleware := authHTTP.IdentityMiddleware(tokenService, logger)

	// Stage 3: rate limiting keys off the identity resolved in stage 1.
	var rateLimitMiddleware gin.HandlerFunc
	if cfg.RateLimitEnabled {
		rateLimitMiddleware = authHTTP.RateLimitMiddleware(limiter, rateLimitMetrics, logger)
	}

	// Open routes: reachable without authentication, throttled by address.
	authGroup := router.Group("/auth")
	authGroup.Use(identityMiddleware)
	if rateLimitMiddleware != nil {
		authGroup.Use(rateLimitMiddleware)
	}
	authGroup.POST("/login", authHandler.LoginHandler)

	// Protected routes: stage 2 (authorization) runs between identity
	// resolution and rate limiting. A rejected request answers 401 but
	// still consumes a token from the caller's bucket, so the middleware
	// gets the limiter too.
	var authzLimiter *ratelimit.Limiter
	if cfg.RateLimitEnabled {
		authzLimiter = limiter
	}
	booksGroup := router.Group("/books")
	booksGroup.Use(identityMiddleware)
	booksGroup.Use(authHTTP.RequireAuthenticationMiddleware(authzLimiter, logger))
	if rateLimitMiddleware != nil {
		booksGroup.Use(rateLimitMiddleware)
	}
	booksGroup.POST("", bookHandler.CreateHandler)
	booksGroup.GET("", bookHandler.ListHandler)
	booksGroup.GET("/:id", bookHandler.GetHandler)
	booksGroup.PUT("/:id", bookHandler.UpdateHandler)
	booksGroup.DELETE("/:id", bookHandler.DeleteHandler)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the http.Handler for testing purposes.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
