package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// MockSnapshotStore is a mock implementation of SnapshotStore for testing
type MockSnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Snapshot
	saves     int

	// SaveErr, when set, is returned by Save to simulate storage failure.
	SaveErr error
}

// NewMockSnapshotStore creates a new MockSnapshotStore
func NewMockSnapshotStore() *MockSnapshotStore {
	return &MockSnapshotStore{
		snapshots: make(map[string]domain.Snapshot),
	}
}

func subjectKey(kind domain.SubjectKind, subjectID domain.SubjectID) string {
	return fmt.Sprintf("%s/%s", kind, subjectID)
}

func (m *MockSnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[subjectKey(snap.Kind(), snap.Subject())] = snap
	m.saves++
	return nil
}

func (m *MockSnapshotStore) Get(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (domain.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snapshots[subjectKey(kind, subjectID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

func (m *MockSnapshotStore) Delete(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, subjectKey(kind, subjectID))
	return nil
}

// Saves returns how many Save calls were made.
func (m *MockSnapshotStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// MockHistoryStore is a mock implementation of HistoryStore for testing
type MockHistoryStore struct {
	mu        sync.RWMutex
	intervals map[string][]*domain.Interval
}

// NewMockHistoryStore creates a new MockHistoryStore
func NewMockHistoryStore() *MockHistoryStore {
	return &MockHistoryStore{
		intervals: make(map[string][]*domain.Interval),
	}
}

func (m *MockHistoryStore) Insert(ctx context.Context, iv *domain.Interval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := subjectKey(iv.Kind, iv.SubjectID)
	cp := *iv
	m.intervals[key] = append(m.intervals[key], &cp)
	return nil
}

func (m *MockHistoryStore) Open(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (*domain.Interval, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, iv := range m.intervals[subjectKey(kind, subjectID)] {
		if iv.ValidTo == nil {
			return iv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockHistoryStore) Close(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, validFrom, validTo time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, iv := range m.intervals[subjectKey(kind, subjectID)] {
		if iv.ValidFrom.Equal(validFrom) {
			t := validTo
			iv.ValidTo = &t
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *MockHistoryStore) List(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]*domain.Interval, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.intervals[subjectKey(kind, subjectID)]
	out := make([]*domain.Interval, len(src))
	copy(out, src)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ValidFrom.After(out[j].ValidFrom)
	})
	return out, nil
}
