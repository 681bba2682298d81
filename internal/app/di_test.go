package app

import (
	"testing"
	"time"

	"github.com/allisson/books/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:          "127.0.0.1",
		ServerPort:          8080,
		LogLevel:            "info",
		AuthSecretKey:       "test-secret",
		AuthTokenExpiration: time.Hour,
		AuthUsername:        "john",
		AuthPassword:        "password123",
		RateLimitEnabled:    true,
		RateLimitCapacity:   5,
		RateLimitWindow:     30 * time.Second,
		MetricsNamespace:    "books",
		MetricsPort:         8081,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()
	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}
	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger is a singleton.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(testConfig())

	logger := container.Logger()
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerTokenService verifies the token service singleton works end to end.
func TestContainerTokenService(t *testing.T) {
	container := NewContainer(testConfig())

	tokenService := container.TokenService()
	if tokenService == nil {
		t.Fatal("expected non-nil token service")
	}

	token, _, err := tokenService.Issue("john")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	subject, err := tokenService.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}
	if subject != "john" {
		t.Errorf("expected subject 'john', got '%s'", subject)
	}
}

// TestContainerRateLimiter verifies the rate limiter singleton honors config.
func TestContainerRateLimiter(t *testing.T) {
	container := NewContainer(testConfig())

	limiter := container.RateLimiter()
	if limiter == nil {
		t.Fatal("expected non-nil rate limiter")
	}
	if limiter != container.RateLimiter() {
		t.Error("expected same limiter instance on multiple calls")
	}

	decision := limiter.Allow("test-identity")
	if !decision.Allowed {
		t.Error("expected first request to be admitted")
	}
	if decision.Remaining != 4 {
		t.Errorf("expected 4 remaining, got %d", decision.Remaining)
	}
}

// TestContainerHTTPServer verifies the full dependency graph assembles.
func TestContainerHTTPServer(t *testing.T) {
	container := NewContainer(testConfig())

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil server")
	}
}

// TestContainerMetricsDisabled verifies metrics components are nil when disabled.
func TestContainerMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil provider when metrics are disabled")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer != nil {
		t.Error("expected nil metrics server when metrics are disabled")
	}

	if container.RateLimitMetrics() != nil {
		t.Error("expected nil rate limit metrics when metrics are disabled")
	}
}

// TestContainerMetricsEnabled verifies metrics components initialize when enabled.
func TestContainerMetricsEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true
	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected non-nil provider when metrics are enabled")
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricsServer == nil {
		t.Fatal("expected non-nil metrics server when metrics are enabled")
	}

	if container.RateLimitMetrics() == nil {
		t.Error("expected non-nil rate limit metrics when metrics are enabled")
	}
}
