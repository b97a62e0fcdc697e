package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore persists the single session token as a small JSON file so
// the session survives restarts. Absence of the file means logged-out.
type TokenStore struct {
	mu   sync.Mutex
	path string
}

type tokenFile struct {
	Token string `json:"token"`
}

// DefaultTokenPath places the token under the user config dir,
// falling back to the temp dir when none is available.
func DefaultTokenPath() string {
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, "careerbridge", "session.json")
	}
	return filepath.Join(os.TempDir(), "careerbridge", "session.json")
}

func NewTokenStore(path string) *TokenStore {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &TokenStore{path: path}
}

func (s *TokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}

	var f tokenFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("parsing token file: %w", err)
	}
	return f.Token, nil
}

func (s *TokenStore) Store(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}

	data, err := json.Marshal(tokenFile{Token: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
