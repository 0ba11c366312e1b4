package driving

import (
	"context"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// SaveOptions carries optional audit attribution for a versioned write.
type SaveOptions struct {
	// BatchID groups change log entries produced by one bulk operation.
	BatchID string

	// ActorID identifies the initiator when known.
	ActorID string
}

// SaveResult reports what a SaveWithHistory call did.
type SaveResult struct {
	// Created is true when the subject had no prior snapshot.
	Created bool

	// Changes lists the tracked-field differences recorded. Empty for a
	// no-op re-save.
	Changes []domain.FieldChange
}

// VersionService is the version tracker: it decides whether a proposed
// snapshot differs from the current one and maintains the interval chain
// and change log accordingly.
type VersionService interface {
	// SaveWithHistory persists snap as the subject's current state.
	// First sight of a subject opens an interval and writes one create
	// entry; an identical snapshot is re-saved without history noise; a
	// differing one closes the open interval, opens a new one, and writes
	// one update entry per changed tracked field.
	SaveWithHistory(ctx context.Context, snap domain.Snapshot, source string, opts SaveOptions) (*SaveResult, error)

	// DeleteWithHistory removes the subject's current state, closing the
	// open interval and writing one whole-record delete entry.
	DeleteWithHistory(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, source string, opts SaveOptions) error
}

// TemporalService answers point-in-time and full-history reads.
type TemporalService interface {
	// AtTime returns the snapshot believed true at t, under half-open
	// interval semantics. domain.ErrNotFound when no interval covers t.
	AtTime(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, t time.Time) (domain.Snapshot, error)

	// History returns all of a subject's intervals, newest first.
	History(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]*domain.Interval, error)

	// Changes returns a subject's change log entries, newest first.
	Changes(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]domain.ChangeEntry, error)
}
