// Package service provides authentication services.
package service

import "time"

// TokenService issues and verifies signed identity tokens.
//
// Tokens are self-contained: the subject and timestamps are embedded in the
// token itself and verified statelessly on each request. The payload is not
// secret, only unforgeable.
type TokenService interface {
	// Issue creates a signed token for the given subject. The token embeds
	// the current time and expires after the configured validity window.
	Issue(subject string) (token string, expiresAt time.Time, err error)

	// Verify checks a token's signature and expiry and returns its subject.
	// Returns ErrInvalidToken for any failure: bad signature, malformed
	// structure, or expiry. Safe for concurrent use.
	Verify(tokenString string) (subject string, err error)
}
