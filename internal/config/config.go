// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// AuthSecretKey is the symmetric secret used to sign and verify tokens.
	AuthSecretKey string
	// AuthTokenExpiration is the duration after which an issued token expires.
	AuthTokenExpiration time.Duration
	// AuthUsername is the username of the single demo credential pair.
	AuthUsername string
	// AuthPassword is the password of the single demo credential pair.
	AuthPassword string

	// RateLimitEnabled indicates whether per-identity rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitCapacity is the token bucket capacity per caller identity.
	RateLimitCapacity int
	// RateLimitWindow is the period over which a bucket regains full capacity.
	RateLimitWindow time.Duration

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Auth
		AuthSecretKey:       env.GetString("AUTH_SECRET_KEY", "insecure-dev-secret"),
		AuthTokenExpiration: env.GetDuration("AUTH_TOKEN_EXPIRATION_SECONDS", 3600, time.Second),
		AuthUsername:        env.GetString("AUTH_USERNAME", "john"),
		AuthPassword:        env.GetString("AUTH_PASSWORD", "password123"),

		// Rate Limiting (per caller identity: token subject or client address)
		RateLimitEnabled:  env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitCapacity: env.GetInt("RATE_LIMIT_CAPACITY", 5),
		RateLimitWindow:   env.GetDuration("RATE_LIMIT_WINDOW_SECONDS", 30, time.Second),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "books"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
