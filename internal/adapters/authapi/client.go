package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/careerbridge/careerbridge-core/internal/config"
	"github.com/careerbridge/careerbridge-core/internal/domain"
)

// Client talks to the external auth endpoint. Any non-2xx response is
// a failure; the server-supplied message is surfaced verbatim when one
// of the known message fields is present.
type Client struct {
	baseURL    string
	tokenField config.TokenField
	client     *http.Client
}

func NewClient(baseURL string, tokenField config.TokenField, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if tokenField == "" {
		tokenField = config.TokenFieldAccessToken
	}
	return &Client{
		baseURL:    baseURL,
		tokenField: tokenField,
		client:     client,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// authResponse tolerates the field spellings the auth service has used
// over time: access_token vs token for the credential, and msg /
// detail / message for the human-readable outcome.
type authResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
	Msg         string `json:"msg"`
	Detail      string `json:"detail"`
	Message     string `json:"message"`
}

func (r *authResponse) errorMessage() string {
	for _, m := range []string{r.Msg, r.Detail, r.Message} {
		if m != "" {
			return m
		}
	}
	return ""
}

const genericAuthFailure = "Authentication failed. Please try again."

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp authResponse
	status, err := c.post(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}

	if status < 200 || status > 299 {
		msg := resp.errorMessage()
		if msg == "" {
			msg = genericAuthFailure
		}
		return "", domain.NewAuthError(status, msg)
	}

	token := c.pickToken(resp)
	if token == "" {
		return "", domain.NewAuthError(status, "login response carried no token")
	}
	return token, nil
}

// Register creates an account. It does not authenticate: the response
// carries no credential in the established flow.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) error {
	var resp authResponse
	status, err := c.post(ctx, "/api/auth/register", registerRequest{
		FullName: in.FullName,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	}, &resp)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		msg := resp.errorMessage()
		if msg == "" {
			msg = genericAuthFailure
		}
		return domain.NewAuthError(status, msg)
	}
	return nil
}

func (c *Client) pickToken(resp authResponse) string {
	// The configured spelling wins; the other is accepted as fallback.
	if c.tokenField == config.TokenFieldToken {
		if resp.Token != "" {
			return resp.Token
		}
		return resp.AccessToken
	}
	if resp.AccessToken != "" {
		return resp.AccessToken
	}
	return resp.Token
}

func (c *Client) post(ctx context.Context, path string, payload any, out *authResponse) (int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, domain.NewAuthError(0, fmt.Sprintf("encoding request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, domain.NewAuthError(0, fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, domain.NewAuthError(0, "auth service did not respond in time")
		}
		return 0, domain.NewAuthError(0, genericAuthFailure)
	}
	defer resp.Body.Close()

	// Decode failures are tolerated: an empty body on success is fine,
	// and on failure we fall back to the generic message.
	_ = json.NewDecoder(resp.Body).Decode(out)

	return resp.StatusCode, nil
}
