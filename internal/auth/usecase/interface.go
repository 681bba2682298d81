// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/books/internal/auth/domain"
)

// LoginUseCase authenticates credentials and issues identity tokens.
type LoginUseCase interface {
	// Login validates the credential pair and returns a signed token on
	// success. Returns ErrInvalidCredentials on mismatch; never retried
	// automatically.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)
}
