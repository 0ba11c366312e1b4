package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements driven.HistoryStore using PostgreSQL
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Insert writes a new interval
func (s *HistoryStore) Insert(ctx context.Context, iv *domain.Interval) error {
	doc, err := domain.EncodeSnapshot(iv.Snapshot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO history (kind, subject_id, valid_from, valid_to, doc, source, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = s.db.ExecContext(ctx, query,
		string(iv.Kind),
		int64(iv.SubjectID),
		iv.ValidFrom,
		NullTime(iv.ValidTo),
		doc,
		iv.Source,
		iv.RecordedAt,
	)
	return err
}

// Open returns the subject's currently open interval
func (s *HistoryStore) Open(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (*domain.Interval, error) {
	query := `
		SELECT kind, subject_id, valid_from, valid_to, doc, source, recorded_at
		FROM history
		WHERE kind = $1 AND subject_id = $2 AND valid_to IS NULL
	`

	iv, err := scanInterval(s.db.QueryRowContext(ctx, query, string(kind), int64(subjectID)))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return iv, err
}

// Close sets valid_to on the interval identified by (kind, subject, validFrom)
func (s *HistoryStore) Close(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, validFrom, validTo time.Time) error {
	query := `
		UPDATE history
		SET valid_to = $4
		WHERE kind = $1 AND subject_id = $2 AND valid_from = $3
	`

	res, err := s.db.ExecContext(ctx, query, string(kind), int64(subjectID), validFrom, validTo)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("close interval %s %s at %s: %w", kind, subjectID, validFrom, domain.ErrNotFound)
	}
	return nil
}

// List returns all of a subject's intervals, newest first
func (s *HistoryStore) List(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]*domain.Interval, error) {
	query := `
		SELECT kind, subject_id, valid_from, valid_to, doc, source, recorded_at
		FROM history
		WHERE kind = $1 AND subject_id = $2
		ORDER BY valid_from DESC
	`

	rows, err := s.db.QueryContext(ctx, query, string(kind), int64(subjectID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []*domain.Interval
	for rows.Next() {
		iv, err := scanInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return intervals, nil
}

func scanInterval(row rowScanner) (*domain.Interval, error) {
	var iv domain.Interval
	var kind string
	var subjectID int64
	var validTo sql.NullTime
	var doc []byte

	err := row.Scan(&kind, &subjectID, &iv.ValidFrom, &validTo, &doc, &iv.Source, &iv.RecordedAt)
	if err != nil {
		return nil, err
	}

	iv.Kind = domain.SubjectKind(kind)
	iv.SubjectID = domain.SubjectID(subjectID)
	iv.ValidTo = TimePtr(validTo)

	iv.Snapshot, err = domain.DecodeSnapshot(iv.Kind, doc)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}
