package driven

import (
	"context"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// SnapshotStore persists the current believed-true snapshot per subject.
type SnapshotStore interface {
	// Save inserts or overwrites the current snapshot.
	Save(ctx context.Context, snap domain.Snapshot) error

	// Get retrieves the current snapshot. domain.ErrNotFound when the
	// subject has no current state.
	Get(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (domain.Snapshot, error)

	// Delete removes the current snapshot.
	Delete(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error
}

// HistoryStore persists valid-time intervals, one collection per subject
// kind, keyed by (subject ID, valid_from).
type HistoryStore interface {
	// Insert writes a new interval.
	Insert(ctx context.Context, iv *domain.Interval) error

	// Open returns the subject's currently open interval (valid_to null).
	// domain.ErrNotFound when none is open.
	Open(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (*domain.Interval, error)

	// Close sets valid_to on the interval identified by (kind, subject,
	// validFrom).
	Close(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, validFrom, validTo time.Time) error

	// List returns all of a subject's intervals, newest first.
	List(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]*domain.Interval, error)
}
