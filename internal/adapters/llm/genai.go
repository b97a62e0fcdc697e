package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/careerbridge/careerbridge-core/internal/domain"
)

// GenAIGateway implements domain.Gateway on top of the genai SDK
// (Gemini API backend, API-key auth).
type GenAIGateway struct {
	client    *genai.Client
	modelName string
}

// NewGenAIGateway creates a gateway backed by the genai SDK.
func NewGenAIGateway(ctx context.Context, apiKey, modelName string) (*GenAIGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required for the genai gateway")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAIGateway{
		client:    client,
		modelName: modelName,
	}, nil
}

// Send implements domain.Gateway via the SDK. SDK errors are mapped to
// the same tagged kinds the HTTP gateway produces.
func (g *GenAIGateway) Send(ctx context.Context, prompt domain.Prompt, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(prompt.User, genai.RoleUser),
	}

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: int32(8192),
	}
	if prompt.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.NewTimeout(fmt.Sprintf("no response within %s", timeout))
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", domain.NewBackendStatus(apiErr.Code, apiErr.Message)
		}
		return "", domain.NewBackendStatus(0, err.Error())
	}

	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.NewEmptyResponse("model returned empty text")
	}
	return text, nil
}
