package sessionstore

import (
	"context"
	"sync"
)

// MemoryStore is a sync.RWMutex-guarded Store for tests, grounded on
// luikyv-go-oidc's internal/storage.AuthnSessionManager's own map+mutex
// shape.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]SessionRecord
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]SessionRecord)}
}

func (m *MemoryStore) Save(_ context.Context, record SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[record.ID] = record
	return nil
}

func (m *MemoryStore) ByID(_ context.Context, id string) (SessionRecord, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.sessions[id]
	return record, ok, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
