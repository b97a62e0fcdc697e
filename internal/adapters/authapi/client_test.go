package authapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/careerbridge/careerbridge-core/internal/adapters/authapi"
	"github.com/careerbridge/careerbridge-core/internal/config"
	"github.com/careerbridge/careerbridge-core/internal/domain"
)

func TestLoginReturnsAccessToken(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			t.Errorf("bad login payload: err=%v req=%+v", err, req)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-123"})
	}))
	defer backend.Close()

	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	token, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "jwt-123" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestLoginFallsBackToOtherTokenSpelling(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "jwt-alt"})
	}))
	defer backend.Close()

	// Preference says access_token, but the service answered with the
	// other spelling; the fallback still picks it up.
	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	token, err := c.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "jwt-alt" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestLoginSurfacesServerMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Invalid credentials"})
	}))
	defer backend.Close()

	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	var tagged *domain.Error
	if !errors.As(err, &tagged) {
		t.Fatalf("expected tagged error, got %v", err)
	}
	if tagged.Kind != domain.ErrAuth || tagged.Status != http.StatusUnauthorized {
		t.Fatalf("unexpected tag: %+v", tagged)
	}
	if tagged.Detail != "Invalid credentials" {
		t.Fatalf("expected server wording verbatim, got %q", tagged.Detail)
	}
}

func TestLoginFallsBackToDetailField(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer backend.Close()

	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	var tagged *domain.Error
	if !errors.As(err, &tagged) || tagged.Detail != "Incorrect email or password" {
		t.Fatalf("expected detail field surfaced, got %v", err)
	}
}

func TestLoginGenericMessageWhenBodyEmpty(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	_, err := c.Login(context.Background(), "a@b.com", "pw")
	var tagged *domain.Error
	if !errors.As(err, &tagged) || tagged.Detail == "" {
		t.Fatalf("expected a generic fallback message, got %v", err)
	}
}

func TestRegisterSendsFormFields(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			FullName string `json:"full_name"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad register payload: %v", err)
		}
		if req.FullName != "Jane Doe" || req.Role != "free" {
			t.Errorf("unexpected payload %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer backend.Close()

	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	err := c.Register(context.Background(), domain.RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "pw",
		Role:     "free",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestRegisterSurfacesConflictMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))
	defer backend.Close()

	c := authapi.NewClient(backend.URL, config.TokenFieldAccessToken, backend.Client())

	err := c.Register(context.Background(), domain.RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "pw",
	})
	var tagged *domain.Error
	if !errors.As(err, &tagged) || tagged.Detail != "Email already registered" {
		t.Fatalf("expected server wording, got %v", err)
	}
}
