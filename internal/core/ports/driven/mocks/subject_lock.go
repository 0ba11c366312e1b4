package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// MockSubjectLock is a mock implementation of SubjectLock for testing
type MockSubjectLock struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMockSubjectLock creates a new MockSubjectLock
func NewMockSubjectLock() *MockSubjectLock {
	return &MockSubjectLock{
		held: make(map[string]bool),
	}
}

func (m *MockSubjectLock) Acquire(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := subjectKey(kind, subjectID)
	if m.held[key] {
		return false, nil
	}
	m.held[key] = true
	return true, nil
}

func (m *MockSubjectLock) Release(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, subjectKey(kind, subjectID))
	return nil
}
