package ports

import (
	"context"
	"errors"
)

var (
	ErrMissingCredential = errors.New("no authorization token provided")
	ErrInvalidCredential = errors.New("invalid or expired token")
)

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// IdentityProvider resolves a bearer credential to a principal.
type IdentityProvider interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}
