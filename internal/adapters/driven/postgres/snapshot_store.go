package postgres

import (
	"context"
	"database/sql"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements driven.SnapshotStore using PostgreSQL
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SnapshotStore
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save inserts or overwrites the subject's current snapshot
func (s *SnapshotStore) Save(ctx context.Context, snap domain.Snapshot) error {
	doc, err := domain.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (kind, subject_id, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, subject_id) DO UPDATE SET
			doc = EXCLUDED.doc
	`

	_, err = s.db.ExecContext(ctx, query, string(snap.Kind()), int64(snap.Subject()), doc)
	return err
}

// Get retrieves the subject's current snapshot
func (s *SnapshotStore) Get(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (domain.Snapshot, error) {
	query := `
		SELECT doc
		FROM snapshots
		WHERE kind = $1 AND subject_id = $2
	`

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, string(kind), int64(subjectID)).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return domain.DecodeSnapshot(kind, doc)
}

// Delete removes the subject's current snapshot
func (s *SnapshotStore) Delete(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	query := `
		DELETE FROM snapshots
		WHERE kind = $1 AND subject_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, string(kind), int64(subjectID))
	return err
}
