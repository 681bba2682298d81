// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import "time"

// LoginResponse contains the issued token and its expiration.
// The token is self-contained and never stored server-side.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
