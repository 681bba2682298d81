package usecase

import (
	"context"
	"crypto/subtle"
	"log/slog"

	authDomain "github.com/allisson/books/internal/auth/domain"
	authService "github.com/allisson/books/internal/auth/service"
	"github.com/allisson/books/internal/config"
	apperrors "github.com/allisson/books/internal/errors"
)

// loginUseCase implements LoginUseCase against the configured credential pair.
type loginUseCase struct {
	config       *config.Config
	tokenService authService.TokenService
	logger       *slog.Logger
}

// Login validates the submitted credentials against the configured pair and
// issues a signed token on success.
//
// The comparison uses constant-time equality for both fields so the response
// timing does not reveal which field mismatched.
func (l *loginUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	usernameMatch := subtle.ConstantTimeCompare([]byte(input.Username), []byte(l.config.AuthUsername))
	passwordMatch := subtle.ConstantTimeCompare([]byte(input.Password), []byte(l.config.AuthPassword))

	if usernameMatch&passwordMatch != 1 {
		l.logger.Warn("authentication failed",
			slog.String("username", input.Username))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := l.tokenService.Issue(input.Username)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}

	l.logger.Info("authentication successful",
		slog.String("username", input.Username))

	return &authDomain.LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// NewLoginUseCase creates a LoginUseCase with required dependencies.
func NewLoginUseCase(
	cfg *config.Config,
	tokenService authService.TokenService,
	logger *slog.Logger,
) LoginUseCase {
	return &loginUseCase{
		config:       cfg,
		tokenService: tokenService,
		logger:       logger,
	}
}
