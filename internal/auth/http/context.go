// Package http provides HTTP middleware and handlers for authentication and
// request admission.
package http

import "context"

// Identity is the caller identity resolved for a request: either a verified
// token subject or the client network address as a fallback. The key scopes
// rate limiting; the flag gates access to protected routes.
type Identity struct {
	Key           string
	Authenticated bool
}

// identityKey is a context key type for storing resolved identities.
type identityKey struct{}

// WithIdentity stores a resolved identity in the context.
// Called by the identity middleware for every request.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the resolved identity from the context.
// Returns (identity, true) if present, or (Identity{}, false) if the identity
// middleware has not run.
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
