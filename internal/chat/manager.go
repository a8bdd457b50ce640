package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gftan/agentic-recruiter/internal/types"
)

// ManagerStore extends Store with transcript reads so a persister can
// be seeded from what is already saved.
type ManagerStore interface {
	Store
	GetEvaluationChat(ctx context.Context, roleID uuid.UUID) ([]types.Message, error)
}

// Manager hands out one persister per role, loading the saved
// transcript on first access.
type Manager struct {
	store  ManagerStore
	logger *zap.Logger
	delay  time.Duration

	mu         sync.Mutex
	persisters map[uuid.UUID]*Persister
}

// NewManager creates a manager. A delay of zero means DefaultFlushDelay.
func NewManager(store ManagerStore, logger *zap.Logger, delay time.Duration) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:      store,
		logger:     logger,
		delay:      delay,
		persisters: make(map[uuid.UUID]*Persister),
	}
}

// Persister returns the persister for a role, creating and seeding it
// from storage on first use.
func (m *Manager) Persister(ctx context.Context, roleID uuid.UUID) (*Persister, error) {
	m.mu.Lock()
	if p, ok := m.persisters[roleID]; ok {
		m.mu.Unlock()
		return p, nil
	}
	m.mu.Unlock()

	// Seed outside the lock; storage may be slow.
	msgs, err := m.store.GetEvaluationChat(ctx, roleID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.persisters[roleID]; ok {
		return p, nil
	}
	p := NewPersister(m.store, roleID, m.logger, m.delay)
	p.messages = types.CloneMessages(msgs)
	m.persisters[roleID] = p
	return p, nil
}

// Release flushes and drops a role's persister, cancelling any pending
// timer. Used when a role is deleted or its chat panel closes.
func (m *Manager) Release(ctx context.Context, roleID uuid.UUID) error {
	m.mu.Lock()
	p, ok := m.persisters[roleID]
	delete(m.persisters, roleID)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	err := p.Flush(ctx)
	p.Stop()
	return err
}

// Stop cancels all pending flushes without writing.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.persisters {
		p.Stop()
	}
}
