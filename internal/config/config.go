package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend selects how the gateway reaches the generative service.
type Backend string

const (
	// BackendREST calls the generative-language REST endpoint directly,
	// authenticating with an API key.
	BackendREST Backend = "rest"
	// BackendProxy calls a same-origin proxy that hides the credential.
	BackendProxy Backend = "proxy"
	// BackendGenAI uses the genai SDK client.
	BackendGenAI Backend = "genai"
	// BackendMock is a canned client for development and tests.
	BackendMock Backend = "mock"
)

// TokenField names which field of the login response carries the
// token. The auth service historically used both spellings.
type TokenField string

const (
	TokenFieldAccessToken TokenField = "access_token"
	TokenFieldToken       TokenField = "token"
)

type Config struct {
	Port string `yaml:"port"`

	AuthBaseURL   string `yaml:"auth_base_url"`
	AIEndpointURL string `yaml:"ai_endpoint_url"`
	AICredential  string `yaml:"ai_credential"`
	ModelName     string `yaml:"model_name"`

	Backend Backend `yaml:"backend"`

	RequestTimeoutMs int `yaml:"request_timeout_ms"`
	InsightTimeoutMs int `yaml:"insight_timeout_ms"`

	// TokenFieldPreference is tried first when reading the login
	// response; the other spelling is accepted as a fallback.
	TokenFieldPreference TokenField `yaml:"token_field"`

	// AutoLoginAfterRegister makes a successful registration
	// immediately authenticate the session. Off by default: the
	// established flow is "register, then log in separately".
	AutoLoginAfterRegister bool `yaml:"auto_login_after_register"`

	TokenPath string `yaml:"token_path"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func defaults() *Config {
	return &Config{
		Port:                 "8080",
		AuthBaseURL:          "http://localhost:8000",
		AIEndpointURL:        "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
		ModelName:            "gemini-2.5-flash",
		Backend:              BackendMock,
		RequestTimeoutMs:     15000,
		InsightTimeoutMs:     30000,
		TokenFieldPreference: TokenFieldAccessToken,
		TokenPath:            "",
	}
}

// Load builds the config from an optional YAML file (BRIDGE_CONFIG)
// with environment variables taking precedence over both the file and
// the defaults.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("BRIDGE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("BRIDGE_PORT", cfg.Port)
	cfg.AuthBaseURL = getEnv("BRIDGE_AUTH_BASE_URL", cfg.AuthBaseURL)
	cfg.AIEndpointURL = getEnv("BRIDGE_AI_ENDPOINT_URL", cfg.AIEndpointURL)
	cfg.AICredential = getEnv("BRIDGE_AI_CREDENTIAL", cfg.AICredential)
	cfg.ModelName = getEnv("BRIDGE_MODEL_NAME", cfg.ModelName)
	cfg.TokenPath = getEnv("BRIDGE_TOKEN_PATH", cfg.TokenPath)
	cfg.RequestTimeoutMs = getIntEnv("BRIDGE_REQUEST_TIMEOUT_MS", cfg.RequestTimeoutMs)
	cfg.InsightTimeoutMs = getIntEnv("BRIDGE_INSIGHT_TIMEOUT_MS", cfg.InsightTimeoutMs)
	cfg.AutoLoginAfterRegister = getBoolEnv("BRIDGE_AUTO_LOGIN_AFTER_REGISTER", cfg.AutoLoginAfterRegister)

	if v := os.Getenv("BRIDGE_BACKEND"); v != "" {
		cfg.Backend = Backend(v)
	}
	if v := os.Getenv("BRIDGE_TOKEN_FIELD"); v != "" {
		cfg.TokenFieldPreference = TokenField(v)
	}

	switch cfg.Backend {
	case BackendREST, BackendProxy, BackendGenAI, BackendMock:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	switch cfg.TokenFieldPreference {
	case TokenFieldAccessToken, TokenFieldToken:
	default:
		return nil, fmt.Errorf("unknown token field %q", cfg.TokenFieldPreference)
	}

	if (cfg.Backend == BackendREST || cfg.Backend == BackendGenAI) && cfg.AICredential == "" {
		return nil, fmt.Errorf("BRIDGE_AI_CREDENTIAL is required for the %s backend", cfg.Backend)
	}

	return cfg, nil
}

// RequestTimeout is the bound applied to a chat exchange.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// InsightTimeout is the more generous bound for structured analysis
// and long-form advice generation.
func (c *Config) InsightTimeout() time.Duration {
	return time.Duration(c.InsightTimeoutMs) * time.Millisecond
}
