package postgres

import (
	"context"
	"database/sql"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChangeLogStore = (*ChangeLogStore)(nil)

// ChangeLogStore implements driven.ChangeLogStore using PostgreSQL.
// Append-only: no update or delete statements exist here.
type ChangeLogStore struct {
	db *DB
}

// NewChangeLogStore creates a new ChangeLogStore
func NewChangeLogStore(db *DB) *ChangeLogStore {
	return &ChangeLogStore{db: db}
}

// Append writes entries in one transaction
func (s *ChangeLogStore) Append(ctx context.Context, entries ...domain.ChangeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	query := `
		INSERT INTO change_log (id, kind, subject_id, field, old_value, new_value, change_kind, source, ts, batch_id, actor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			_, err := tx.ExecContext(ctx, query,
				e.ID,
				string(e.Kind),
				e.SubjectID,
				e.Field,
				NullString(e.Old),
				NullString(e.New),
				string(e.ChangeKind),
				e.Source,
				e.Timestamp,
				NullString(e.BatchID),
				NullString(e.ActorID),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns a subject's entries, newest first
func (s *ChangeLogStore) List(ctx context.Context, kind domain.SubjectKind, subjectID string) ([]domain.ChangeEntry, error) {
	query := `
		SELECT id, kind, subject_id, field, old_value, new_value, change_kind, source, ts, batch_id, actor_id
		FROM change_log
		WHERE kind = $1 AND subject_id = $2
		ORDER BY ts DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query, string(kind), subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ChangeEntry
	for rows.Next() {
		var e domain.ChangeEntry
		var entryKind, changeKind string
		var oldVal, newVal, batchID, actorID sql.NullString

		err := rows.Scan(&e.ID, &entryKind, &e.SubjectID, &e.Field, &oldVal, &newVal, &changeKind, &e.Source, &e.Timestamp, &batchID, &actorID)
		if err != nil {
			return nil, err
		}

		e.Kind = domain.SubjectKind(entryKind)
		e.ChangeKind = domain.ChangeKind(changeKind)
		e.Old = StringPtr(oldVal)
		e.New = StringPtr(newVal)
		e.BatchID = StringPtr(batchID)
		e.ActorID = StringPtr(actorID)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
