package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// MockEntityStore is a mock implementation of EntityStore for testing
type MockEntityStore struct {
	mu       sync.RWMutex
	entities map[string]domain.Entity
	upserts  int
}

// NewMockEntityStore creates a new MockEntityStore
func NewMockEntityStore() *MockEntityStore {
	return &MockEntityStore{
		entities: make(map[string]domain.Entity),
	}
}

func entityKey(kind domain.EntityKind, hash string) string {
	return fmt.Sprintf("%s/%s", kind, hash)
}

func (m *MockEntityStore) Upsert(ctx context.Context, entity domain.Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entities[entityKey(entity.EntityKind(), entity.EntityHash())] = entity
	m.upserts++
	return nil
}

func (m *MockEntityStore) Get(ctx context.Context, kind domain.EntityKind, hash string) (domain.Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entity, ok := m.entities[entityKey(kind, hash)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entity, nil
}

// Count returns how many distinct entities are stored.
func (m *MockEntityStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// Upserts returns how many Upsert calls were made.
func (m *MockEntityStore) Upserts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upserts
}
