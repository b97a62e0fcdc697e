package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerbridge/careerbridge-core/internal/adapters/llm"
	"github.com/careerbridge/careerbridge-core/internal/domain"
	"github.com/careerbridge/careerbridge-core/internal/observability"
)

// Greeting seeds every fresh transcript.
const Greeting = "Hi! I'm your Career & Job Market Assistant. Ask me anything about jobs, skills, or careers!"

// historyWindow bounds how many recent messages are framed into the
// prompt.
const historyWindow = 20

// Manager owns one transcript and admits at most one outstanding
// exchange at a time. The busy flag is the single invariant that keeps
// replies in submission order: a second submit is rejected, not
// queued, while one is in flight.
type Manager struct {
	gateway domain.Gateway
	timeout time.Duration
	now     func() time.Time

	mu         sync.Mutex
	transcript []domain.Message
	busy       bool
	generation uint64
}

func NewManager(gateway domain.Gateway, timeout time.Duration) *Manager {
	m := &Manager{
		gateway: gateway,
		timeout: timeout,
		now:     time.Now,
	}
	m.transcript = []domain.Message{m.greeting()}
	return m
}

func (m *Manager) greeting() domain.Message {
	return domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleAssistant,
		Text:      Greeting,
		CreatedAt: m.now(),
	}
}

// Transcript returns a copy of the current transcript in insertion
// order.
func (m *Manager) Transcript() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Message, len(m.transcript))
	copy(out, m.transcript)
	return out
}

// Busy reports whether an exchange is outstanding.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

// Reset replaces the transcript with a fresh greeting and clears the
// busy flag. An outstanding exchange is not cancelled, but its
// eventual result is discarded: it belongs to a previous generation.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.transcript = []domain.Message{m.greeting()}
	m.busy = false
}

// Submit runs one exchange: append the user message, call the gateway
// with the framed prompt, append the reply (or a readable placeholder
// on failure), clear busy. It reports false without touching the
// transcript when the text is empty after trimming, when an exchange
// is already outstanding, or when a reset discarded the result while
// the call was in flight.
func (m *Manager) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	log := observability.LoggerFromContext(ctx)

	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return false
	}
	m.busy = true
	gen := m.generation

	history := make([]domain.Message, len(m.transcript))
	copy(history, m.transcript)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	m.transcript = append(m.transcript, domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleUser,
		Text:      text,
		CreatedAt: m.now(),
	})
	m.mu.Unlock()

	prompt := llm.BuildChatPrompt(text, history)
	replyText, err := m.gateway.Send(ctx, prompt, m.timeout)
	if err != nil {
		log.Warn("gateway exchange failed", "kind", domain.KindOf(err), "error", err)
		replyText = placeholderFor(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		// The user reset the conversation while the call was in
		// flight; the transcript this result was meant for is gone.
		log.Info("discarding stale gateway result after reset")
		return false
	}

	m.transcript = append(m.transcript, domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		Role:      domain.RoleAssistant,
		Text:      replyText,
		CreatedAt: m.now(),
	})
	m.busy = false
	return true
}

// placeholderFor maps a gateway failure to the text shown in the
// transcript. Raw technical detail never reaches the user.
func placeholderFor(err error) string {
	switch domain.KindOf(err) {
	case domain.ErrTimeout:
		return "The request timed out. Please try again."
	case domain.ErrEmptyResponse:
		return "Sorry, I couldn't get a response."
	default:
		return "Server error. Try again later."
	}
}
