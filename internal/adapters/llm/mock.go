package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/careerbridge/careerbridge-core/internal/domain"
)

// MockGateway is a canned gateway for local development: it echoes the
// question back so the whole request lifecycle can be exercised
// without a credential.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Send(ctx context.Context, prompt domain.Prompt, timeout time.Duration) (string, error) {
	return fmt.Sprintf("You asked %q. A good next step is to research the skills employers list most often for that area.", prompt.User), nil
}
