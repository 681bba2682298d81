package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/books/internal/auth/domain"
	"github.com/allisson/books/internal/auth/http/dto"
	authUseCase "github.com/allisson/books/internal/auth/usecase"
	"github.com/allisson/books/internal/httputil"
	customValidation "github.com/allisson/books/internal/validation"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	loginUseCase authUseCase.LoginUseCase
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(
	loginUseCase authUseCase.LoginUseCase,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase: loginUseCase,
		logger:       logger,
	}
}

// LoginHandler authenticates a credential pair and issues a token.
// POST /auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with token and expiration time, or 401 on credential mismatch.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Create input for use case
	input := &authDomain.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	// Call use case
	output, err := h.loginUseCase.Login(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return response with token and expiration
	response := dto.LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	}

	c.JSON(http.StatusOK, response)
}
