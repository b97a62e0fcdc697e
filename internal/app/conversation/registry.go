package conversation

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/careerbridge/careerbridge-core/internal/domain"
)

var ErrNotFound = errors.New("conversation not found")

// Registry hands out conversation managers by ID so several
// independent conversations can run side by side. Each manager owns
// its transcript exclusively.
type Registry struct {
	gateway domain.Gateway
	timeout time.Duration

	mu       sync.RWMutex
	managers map[domain.ConversationID]*Manager
}

func NewRegistry(gateway domain.Gateway, timeout time.Duration) *Registry {
	return &Registry{
		gateway:  gateway,
		timeout:  timeout,
		managers: make(map[domain.ConversationID]*Manager),
	}
}

// Create starts a new conversation with a seeded greeting.
func (r *Registry) Create() (domain.ConversationID, *Manager) {
	id := domain.ConversationID(uuid.NewString())
	m := NewManager(r.gateway, r.timeout)

	r.mu.Lock()
	r.managers[id] = m
	r.mu.Unlock()

	return id, m
}

// Get returns the manager for an existing conversation.
func (r *Registry) Get(id domain.ConversationID) (*Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.managers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}
