package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/domain"
	"github.com/careerbridge/careerbridge-core/internal/observability"
)

// target builds the outbound request for a concrete backend wiring.
// The rest of the gateway (timeout, classification, extraction) is
// shared between the direct and the proxied variants.
type target interface {
	newRequest(ctx context.Context, prompt domain.Prompt) (*http.Request, error)
}

// HTTPGateway implements domain.Gateway over plain HTTP against either
// the generative-language endpoint or a credential-hiding proxy.
type HTTPGateway struct {
	target target
	client *http.Client
}

// NewRESTGateway talks to a generative-language REST endpoint
// directly, authenticating with an API key.
func NewRESTGateway(endpointURL, apiKey string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{
		target: &restTarget{endpointURL: endpointURL, apiKey: apiKey},
		client: client,
	}
}

// NewProxyGateway talks to a same-origin proxy that holds the
// credential server-side.
func NewProxyGateway(proxyURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGateway{
		target: &proxyTarget{proxyURL: proxyURL},
		client: client,
	}
}

// Send performs one bounded exchange with the backend. Every failure
// comes back as a tagged *domain.Error; the underlying call is
// abandoned when the bound elapses and its eventual result discarded.
func (g *HTTPGateway) Send(ctx context.Context, prompt domain.Prompt, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := g.target.newRequest(ctx, prompt)
	if err != nil {
		return "", domain.NewBackendStatus(0, fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	log := observability.LoggerFromContext(ctx)

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn("gateway call timed out", "timeout_ms", timeout.Milliseconds())
			return "", domain.NewTimeout(fmt.Sprintf("no response within %s", timeout))
		}
		log.Error("gateway transport failed", "error", err)
		return "", domain.NewBackendStatus(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewBackendStatus(resp.StatusCode, fmt.Sprintf("reading response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("gateway got non-success status", "status", resp.StatusCode)
		return "", domain.NewBackendStatus(resp.StatusCode, string(body))
	}

	text, ok := ExtractText(body)
	if !ok {
		log.Warn("gateway response had no extractable text")
		return "", domain.NewEmptyResponse(string(body))
	}
	return text, nil
}

// restTarget builds the generative-language API shape:
// systemInstruction plus a single user content.
type restTarget struct {
	endpointURL string
	apiKey      string
}

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type restPayload struct {
	SystemInstruction *restContent  `json:"systemInstruction,omitempty"`
	Contents          []restContent `json:"contents"`
}

func (t *restTarget) newRequest(ctx context.Context, prompt domain.Prompt) (*http.Request, error) {
	payload := restPayload{
		Contents: []restContent{
			{Role: "user", Parts: []restPart{{Text: prompt.User}}},
		},
	}
	if prompt.System != "" {
		payload.SystemInstruction = &restContent{Parts: []restPart{{Text: prompt.System}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := t.endpointURL
	if t.apiKey != "" {
		url += "?key=" + t.apiKey
	}
	return http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
}

// proxyTarget sends the prompt to a backend route that wraps the model
// call; the proxy answers with a flat reply/response envelope.
type proxyTarget struct {
	proxyURL string
}

type proxyPayload struct {
	Message string `json:"message"`
	System  string `json:"system,omitempty"`
}

func (t *proxyTarget) newRequest(ctx context.Context, prompt domain.Prompt) (*http.Request, error) {
	body, err := json.Marshal(proxyPayload{Message: prompt.User, System: prompt.System})
	if err != nil {
		return nil, err
	}
	return http.NewRequestWithContext(ctx, http.MethodPost, t.proxyURL, bytes.NewReader(body))
}
