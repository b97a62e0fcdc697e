package session

import (
	"context"
	"sync"

	"github.com/careerbridge/careerbridge-core/internal/domain"
	"github.com/careerbridge/careerbridge-core/internal/observability"
)

// Store is the single source of truth for the session: at most one
// token, read from many call sites (navigation gating, authenticated
// requests). All mutations go through Login, Register and Logout; the
// token is mirrored into durable storage so it survives restarts.
type Store struct {
	auth      domain.AuthClient
	storage   domain.TokenStorage
	autoLogin bool

	mu    sync.RWMutex
	token string
}

// NewStore builds the session store and restores any durably stored
// token. autoLoginAfterRegister makes Register authenticate the
// session on success instead of requiring a separate login.
func NewStore(auth domain.AuthClient, storage domain.TokenStorage, autoLoginAfterRegister bool) (*Store, error) {
	token, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{
		auth:      auth,
		storage:   storage,
		autoLogin: autoLoginAfterRegister,
		token:     token,
	}, nil
}

// Login exchanges credentials for a token. On success the token is
// stored durably and overwrites any prior one; on failure the session
// state is left unchanged and the server's wording is preserved in the
// returned error.
func (s *Store) Login(ctx context.Context, email, password string) error {
	log := observability.LoggerFromContext(ctx).With("email", email)

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		log.Warn("login failed", "error", err)
		return err
	}

	s.setToken(ctx, token)
	log.Info("login succeeded")
	return nil
}

// Register creates an account. Unless auto-login is configured, the
// session stays as it was: the established flow is "register, then
// log in separately".
func (s *Store) Register(ctx context.Context, in domain.RegisterInput) error {
	log := observability.LoggerFromContext(ctx).With("email", in.Email)

	if err := s.auth.Register(ctx, in); err != nil {
		log.Warn("registration failed", "error", err)
		return err
	}
	log.Info("registration succeeded")

	if s.autoLogin {
		return s.Login(ctx, in.Email, in.Password)
	}
	return nil
}

// Logout clears the token. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		observability.LoggerFromContext(ctx).Warn("clearing stored token failed", "error", err)
	}
}

// IsAuthenticated reports whether a token is held. Pure read; used by
// navigation gating.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) setToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	// The in-memory value is authoritative; a storage failure costs
	// reload survival, not the session itself.
	if err := s.storage.Store(token); err != nil {
		observability.LoggerFromContext(ctx).Warn("persisting token failed", "error", err)
	}
}
