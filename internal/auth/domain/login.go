// Package domain contains the core entities for authentication.
package domain

import "time"

// LoginInput contains the credentials submitted to the login endpoint.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the issued token and its expiration time.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
}
