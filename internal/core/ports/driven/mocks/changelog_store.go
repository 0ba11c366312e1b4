package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// MockChangeLogStore is a mock implementation of ChangeLogStore for testing
type MockChangeLogStore struct {
	mu      sync.RWMutex
	entries []domain.ChangeEntry
}

// NewMockChangeLogStore creates a new MockChangeLogStore
func NewMockChangeLogStore() *MockChangeLogStore {
	return &MockChangeLogStore{}
}

func (m *MockChangeLogStore) Append(ctx context.Context, entries ...domain.ChangeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockChangeLogStore) List(ctx context.Context, kind domain.SubjectKind, subjectID string) ([]domain.ChangeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.ChangeEntry
	for _, e := range m.entries {
		if e.Kind == kind && e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// All returns every appended entry in append order.
func (m *MockChangeLogStore) All() []domain.ChangeEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ChangeEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
