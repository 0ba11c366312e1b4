package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// MockRelationStore is a mock implementation of RelationStore for testing
type MockRelationStore struct {
	mu        sync.RWMutex
	relations map[string]*domain.Relation
}

// NewMockRelationStore creates a new MockRelationStore
func NewMockRelationStore() *MockRelationStore {
	return &MockRelationStore{
		relations: make(map[string]*domain.Relation),
	}
}

func relationKey(hash, tag string, subjectID domain.SubjectID) string {
	return fmt.Sprintf("%s/%s/%s", hash, tag, subjectID)
}

func (m *MockRelationStore) Link(ctx context.Context, rel *domain.Relation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relations[relationKey(rel.EntityHash, rel.Tag, rel.SubjectID)] = rel
	return nil
}

func (m *MockRelationStore) Get(ctx context.Context, hash, tag string, subjectID domain.SubjectID) (*domain.Relation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rel, ok := m.relations[relationKey(hash, tag, subjectID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rel, nil
}

func (m *MockRelationStore) ForSubject(ctx context.Context, subjectID domain.SubjectID) ([]*domain.Relation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Relation
	for _, rel := range m.relations {
		if rel.SubjectID == subjectID {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (m *MockRelationStore) ForSubjectAndTag(ctx context.Context, subjectID domain.SubjectID, tag string) ([]*domain.Relation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Relation
	for _, rel := range m.relations {
		if rel.SubjectID == subjectID && rel.Tag == tag {
			out = append(out, rel)
		}
	}
	return out, nil
}

// Count returns how many relation rows are stored.
func (m *MockRelationStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.relations)
}
