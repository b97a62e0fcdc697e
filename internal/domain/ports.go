package domain

import (
	"context"
	"time"
)

// Gateway is the single choke point for calls to the generative
// backend. Implementations never panic across this boundary: every
// failure path comes back as a tagged *Error.
type Gateway interface {
	Send(ctx context.Context, prompt Prompt, timeout time.Duration) (string, error)
}

// TokenStorage persists the single session token across restarts.
// Load returns an empty string when no token is stored.
type TokenStorage interface {
	Load() (string, error)
	Store(token string) error
	Clear() error
}

// RegisterInput carries the fields the registration form collects.
// Role is optional; the auth endpoint defaults it server-side.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

// AuthClient talks to the external auth endpoint. Login returns the
// issued token; failures are tagged *Error values with kind ErrAuth.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in RegisterInput) error
}
