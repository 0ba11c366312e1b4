package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
	"github.com/filingworks/identity-core/internal/core/ports/driving"
)

// Ensure versionService implements VersionService
var _ driving.VersionService = (*versionService)(nil)

// versionService implements the version tracker state machine. Per subject
// it is a read-modify-write: read current snapshot and open interval,
// compare, then write. Not atomic; callers serialize same-subject work
// (see driven.SubjectLock).
type versionService struct {
	snapshots driven.SnapshotStore
	history   driven.HistoryStore
	changes   driven.ChangeLogStore

	// now supplies interval boundaries. Write-time, never source-document
	// time: backfilling out of order produces boundaries that do not match
	// real-world event dates, which is a documented limitation.
	now func() time.Time
}

// NewVersionService creates a new VersionService
func NewVersionService(snapshots driven.SnapshotStore, history driven.HistoryStore, changes driven.ChangeLogStore) driving.VersionService {
	return &versionService{
		snapshots: snapshots,
		history:   history,
		changes:   changes,
		now:       time.Now,
	}
}

// SaveWithHistory persists snap as the subject's current state, maintaining
// the interval chain and change log.
func (s *versionService) SaveWithHistory(ctx context.Context, snap domain.Snapshot, source string, opts driving.SaveOptions) (*driving.SaveResult, error) {
	if snap == nil || source == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("save %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	current, err := s.snapshots.Get(ctx, snap.Kind(), snap.Subject())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("read current %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	if current == nil {
		return s.create(ctx, snap, source, opts)
	}

	changed := domain.Diff(current, snap)
	if len(changed) == 0 {
		// Forced re-save: the snapshot is persisted again but no history
		// or log noise is produced.
		if err := s.snapshots.Save(ctx, snap); err != nil {
			return nil, fmt.Errorf("persist %s %s: %w", snap.Kind(), snap.Subject(), err)
		}
		return &driving.SaveResult{}, nil
	}

	return s.update(ctx, snap, changed, source, opts)
}

func (s *versionService) create(ctx context.Context, snap domain.Snapshot, source string, opts driving.SaveOptions) (*driving.SaveResult, error) {
	now := s.now()
	iv := &domain.Interval{
		Kind:       snap.Kind(),
		SubjectID:  snap.Subject(),
		ValidFrom:  now,
		Snapshot:   snap,
		Source:     source,
		RecordedAt: now,
	}
	if err := s.history.Insert(ctx, iv); err != nil {
		return nil, fmt.Errorf("open interval %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	encoded, err := domain.EncodeSnapshot(snap)
	if err != nil {
		return nil, err
	}
	entry := newEntry(snap, domain.FieldWildcard, nil, domain.StringPtr(string(encoded)), domain.ChangeKindCreate, source, now, opts)
	if err := s.changes.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("log create %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("persist %s %s: %w", snap.Kind(), snap.Subject(), err)
	}
	return &driving.SaveResult{Created: true}, nil
}

func (s *versionService) update(ctx context.Context, snap domain.Snapshot, changed []domain.FieldChange, source string, opts driving.SaveOptions) (*driving.SaveResult, error) {
	open, err := s.history.Open(ctx, snap.Kind(), snap.Subject())
	if err != nil {
		return nil, fmt.Errorf("open interval for %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	now := s.now()
	if err := s.history.Close(ctx, snap.Kind(), snap.Subject(), open.ValidFrom, now); err != nil {
		return nil, fmt.Errorf("close interval %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	iv := &domain.Interval{
		Kind:       snap.Kind(),
		SubjectID:  snap.Subject(),
		ValidFrom:  now,
		Snapshot:   snap,
		Source:     source,
		RecordedAt: now,
	}
	if err := s.history.Insert(ctx, iv); err != nil {
		return nil, fmt.Errorf("open interval %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	// One entry per changed tracked field, all sharing the same timestamp,
	// source and batch.
	entries := make([]domain.ChangeEntry, 0, len(changed))
	for _, ch := range changed {
		entries = append(entries, newEntry(snap, ch.Field, ch.Old, ch.New, domain.ChangeKindUpdate, source, now, opts))
	}
	if err := s.changes.Append(ctx, entries...); err != nil {
		return nil, fmt.Errorf("log update %s %s: %w", snap.Kind(), snap.Subject(), err)
	}

	if err := s.snapshots.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("persist %s %s: %w", snap.Kind(), snap.Subject(), err)
	}
	return &driving.SaveResult{Changes: changed}, nil
}

// DeleteWithHistory removes the subject's current state.
func (s *versionService) DeleteWithHistory(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, source string, opts driving.SaveOptions) error {
	if source == "" {
		return domain.ErrInvalidInput
	}
	current, err := s.snapshots.Get(ctx, kind, subjectID)
	if err != nil {
		return fmt.Errorf("read current %s %s: %w", kind, subjectID, err)
	}

	open, err := s.history.Open(ctx, kind, subjectID)
	if err != nil {
		return fmt.Errorf("open interval for %s %s: %w", kind, subjectID, err)
	}

	now := s.now()
	if err := s.history.Close(ctx, kind, subjectID, open.ValidFrom, now); err != nil {
		return fmt.Errorf("close interval %s %s: %w", kind, subjectID, err)
	}

	encoded, err := domain.EncodeSnapshot(current)
	if err != nil {
		return err
	}
	entry := newEntry(current, domain.FieldWildcard, domain.StringPtr(string(encoded)), nil, domain.ChangeKindDelete, source, now, opts)
	if err := s.changes.Append(ctx, entry); err != nil {
		return fmt.Errorf("log delete %s %s: %w", kind, subjectID, err)
	}

	if err := s.snapshots.Delete(ctx, kind, subjectID); err != nil {
		return fmt.Errorf("delete snapshot %s %s: %w", kind, subjectID, err)
	}
	return nil
}

func newEntry(snap domain.Snapshot, field string, oldVal, newVal *string, kind domain.ChangeKind, source string, ts time.Time, opts driving.SaveOptions) domain.ChangeEntry {
	entry := domain.ChangeEntry{
		ID:         uuid.NewString(),
		Kind:       snap.Kind(),
		SubjectID:  snap.Subject().String(),
		Field:      field,
		Old:        oldVal,
		New:        newVal,
		ChangeKind: kind,
		Source:     source,
		Timestamp:  ts,
	}
	if opts.BatchID != "" {
		entry.BatchID = domain.StringPtr(opts.BatchID)
	}
	if opts.ActorID != "" {
		entry.ActorID = domain.StringPtr(opts.ActorID)
	}
	return entry
}
