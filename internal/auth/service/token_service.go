package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/allisson/books/internal/clock"
	apperrors "github.com/allisson/books/internal/errors"
)

// tokenService implements TokenService using HMAC-SHA256 signed JWTs.
type tokenService struct {
	secret   []byte
	validity time.Duration
	clock    clock.Clock
}

// Issue creates a signed JWT for the given subject.
// The subject, issued-at and expiration claims are bound by the signature;
// any mutation invalidates verification.
func (t *tokenService) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "subject cannot be empty")
	}

	now := t.clock.Now()
	expiresAt := now.Add(t.validity)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.Must(uuid.NewV7()).String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Verify checks signature integrity and expiry, returning the token subject.
// All failure modes collapse into ErrInvalidToken so callers cannot
// distinguish a forged token from an expired one.
func (t *tokenService) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.clock.Now),
		jwt.WithExpirationRequired(),
	)

	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}

	return claims.Subject, nil
}

// NewTokenService creates a TokenService that signs tokens with the given
// symmetric secret and validity window. The clock drives both the issued-at
// claim and expiry checks.
func NewTokenService(secret string, validity time.Duration, clk clock.Clock) TokenService {
	return &tokenService{
		secret:   []byte(secret),
		validity: validity,
		clock:    clk,
	}
}
