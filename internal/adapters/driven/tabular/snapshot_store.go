package tabular

import (
	"context"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements driven.SnapshotStore over a TableStore, keyed
// kind/subject.
type SnapshotStore struct {
	store driven.TableStore
}

// NewSnapshotStore creates a new SnapshotStore
func NewSnapshotStore(store driven.TableStore) *SnapshotStore {
	return &SnapshotStore{store: store}
}

func snapshotKey(kind domain.SubjectKind, subjectID domain.SubjectID) string {
	return joinKey(string(kind), subjectID.String())
}

// Save inserts or overwrites the subject's current snapshot
func (s *SnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	doc, err := domain.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, TableSnapshots, driven.TableRecord{
		Key:   snapshotKey(snap.Kind(), snap.Subject()),
		Value: doc,
	})
}

// Get retrieves the subject's current snapshot
func (s *SnapshotStore) Get(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (domain.Snapshot, error) {
	rec, err := s.store.Get(ctx, TableSnapshots, snapshotKey(kind, subjectID))
	if err != nil {
		return nil, err
	}
	return domain.DecodeSnapshot(kind, rec.Value)
}

// Delete removes the subject's current snapshot
func (s *SnapshotStore) Delete(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	return s.store.Delete(ctx, TableSnapshots, snapshotKey(kind, subjectID))
}
