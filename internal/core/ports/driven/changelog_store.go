package driven

import (
	"context"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// ChangeLogStore persists the append-only audit trail. No update or delete
// operations exist; the log is the audit of record.
type ChangeLogStore interface {
	// Append writes entries. Entries produced by one save share a
	// timestamp and source and are written together.
	Append(ctx context.Context, entries ...domain.ChangeEntry) error

	// List returns a subject's entries, newest first.
	List(ctx context.Context, kind domain.SubjectKind, subjectID string) ([]domain.ChangeEntry, error)
}
