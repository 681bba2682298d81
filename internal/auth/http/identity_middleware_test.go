package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/books/internal/auth/service"
	"github.com/allisson/books/internal/clock"
)

// httptest requests carry this client address by default.
const testClientAddr = "192.0.2.1"

type identityProbe struct {
	Key           string `json:"key"`
	Authenticated bool   `json:"authenticated"`
}

// panickyTokenService simulates a token implementation blowing up mid-parse.
type panickyTokenService struct{}

func (panickyTokenService) Issue(subject string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (panickyTokenService) Verify(tokenString string) (string, error) {
	panic("malformed token state")
}

func setupIdentityRouter(tokenService authService.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(IdentityMiddleware(tokenService, slog.Default()))
	router.GET("/probe", func(c *gin.Context) {
		identity, _ := GetIdentity(c.Request.Context())
		c.JSON(http.StatusOK, identityProbe{
			Key:           identity.Key,
			Authenticated: identity.Authenticated,
		})
	})
	return router
}

func probeIdentity(t *testing.T, router *gin.Engine, authHeader string) identityProbe {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var probe identityProbe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &probe))
	return probe
}

func TestIdentityMiddleware(t *testing.T) {
	tokenService := authService.NewTokenService("test-secret", time.Hour, clock.New())
	router := setupIdentityRouter(tokenService)

	t.Run("Success_ValidToken", func(t *testing.T) {
		token, _, err := tokenService.Issue("john")
		require.NoError(t, err)

		probe := probeIdentity(t, router, "Bearer "+token)
		assert.Equal(t, "john", probe.Key)
		assert.True(t, probe.Authenticated)
	})

	t.Run("Success_SchemeIsCaseInsensitive", func(t *testing.T) {
		token, _, err := tokenService.Issue("john")
		require.NoError(t, err)

		probe := probeIdentity(t, router, "bearer "+token)
		assert.Equal(t, "john", probe.Key)
		assert.True(t, probe.Authenticated)
	})

	t.Run("Fallback_NoHeader", func(t *testing.T) {
		probe := probeIdentity(t, router, "")
		assert.Equal(t, testClientAddr, probe.Key)
		assert.False(t, probe.Authenticated)
	})

	t.Run("Fallback_InvalidToken", func(t *testing.T) {
		probe := probeIdentity(t, router, "Bearer not-a-real-token")
		assert.Equal(t, testClientAddr, probe.Key)
		assert.False(t, probe.Authenticated)
	})

	t.Run("Fallback_ExpiredToken", func(t *testing.T) {
		expiredService := authService.NewTokenService("test-secret", -time.Hour, clock.New())
		token, _, err := expiredService.Issue("john")
		require.NoError(t, err)

		probe := probeIdentity(t, router, "Bearer "+token)
		assert.Equal(t, testClientAddr, probe.Key)
		assert.False(t, probe.Authenticated)
	})

	t.Run("Fallback_WrongScheme", func(t *testing.T) {
		token, _, err := tokenService.Issue("john")
		require.NoError(t, err)

		probe := probeIdentity(t, router, "Token "+token)
		assert.Equal(t, testClientAddr, probe.Key)
		assert.False(t, probe.Authenticated)
	})

	t.Run("Fallback_SchemeWithoutToken", func(t *testing.T) {
		probe := probeIdentity(t, router, "Bearer")
		assert.Equal(t, testClientAddr, probe.Key)
		assert.False(t, probe.Authenticated)
	})

	t.Run("Fallback_VerificationPanic", func(t *testing.T) {
		// A panic during resolution must downgrade to the client address
		// and let the request complete, never take it down
		panicRouter := setupIdentityRouter(panickyTokenService{})

		probe := probeIdentity(t, panicRouter, "Bearer some-token")
		assert.Equal(t, testClientAddr, probe.Key)
		assert.False(t, probe.Authenticated)
	})
}
