package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != config.BackendMock {
		t.Fatalf("expected mock backend by default, got %q", cfg.Backend)
	}
	if cfg.RequestTimeout() != 15*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.RequestTimeout())
	}
	if cfg.TokenFieldPreference != config.TokenFieldAccessToken {
		t.Fatalf("unexpected token field %q", cfg.TokenFieldPreference)
	}
	if cfg.AutoLoginAfterRegister {
		t.Fatalf("auto-login should default off")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "port: \"9999\"\nrequest_timeout_ms: 5000\nbackend: proxy\nai_endpoint_url: http://proxy.local/api/chat\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("BRIDGE_CONFIG", path)
	t.Setenv("BRIDGE_PORT", "7777")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7777" {
		t.Fatalf("expected env to win over file, got %q", cfg.Port)
	}
	if cfg.RequestTimeoutMs != 5000 {
		t.Fatalf("expected file value kept, got %d", cfg.RequestTimeoutMs)
	}
	if cfg.Backend != config.BackendProxy {
		t.Fatalf("expected proxy backend from file, got %q", cfg.Backend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("BRIDGE_BACKEND", "carrier-pigeon")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestDirectBackendsRequireCredential(t *testing.T) {
	t.Setenv("BRIDGE_BACKEND", "rest")
	t.Setenv("BRIDGE_AI_CREDENTIAL", "")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when rest backend has no credential")
	}
}
