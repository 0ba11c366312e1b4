package memdb

import (
	"context"
	"sync"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SubjectLock = (*SubjectLock)(nil)

// SubjectLock is an in-process subject lock for the memory backend. TTL is
// ignored; locks die with the process, which matches the backend's scope.
type SubjectLock struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewSubjectLock creates a new in-process subject lock.
func NewSubjectLock() *SubjectLock {
	return &SubjectLock{held: make(map[string]bool)}
}

func subjectKey(kind domain.SubjectKind, subjectID domain.SubjectID) string {
	return string(kind) + "/" + subjectID.String()
}

// Acquire attempts to take the subject's lock without blocking.
func (l *SubjectLock) Acquire(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := subjectKey(kind, subjectID)
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

// Release releases the subject's lock. Safe to call when not held.
func (l *SubjectLock) Release(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, subjectKey(kind, subjectID))
	return nil
}
