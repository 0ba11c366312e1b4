package services

import (
	"context"
	"fmt"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
	"github.com/filingworks/identity-core/internal/core/ports/driving"
)

// Ensure temporalService implements TemporalService
var _ driving.TemporalService = (*temporalService)(nil)

// temporalService implements point-in-time and full-history reads over the
// persisted interval chain and change log.
type temporalService struct {
	history driven.HistoryStore
	changes driven.ChangeLogStore
}

// NewTemporalService creates a new TemporalService
func NewTemporalService(history driven.HistoryStore, changes driven.ChangeLogStore) driving.TemporalService {
	return &temporalService{
		history: history,
		changes: changes,
	}
}

// AtTime returns the snapshot believed true at t. Interval bounds are
// half-open: at exactly a boundary instant the later interval wins.
func (s *temporalService) AtTime(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, t time.Time) (domain.Snapshot, error) {
	intervals, err := s.history.List(ctx, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("history for %s %s: %w", kind, subjectID, err)
	}
	for _, iv := range intervals {
		if iv.Covers(t) {
			return iv.Snapshot, nil
		}
	}
	return nil, domain.ErrNotFound
}

// History returns all of a subject's intervals, newest first.
func (s *temporalService) History(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]*domain.Interval, error) {
	intervals, err := s.history.List(ctx, kind, subjectID)
	if err != nil {
		return nil, fmt.Errorf("history for %s %s: %w", kind, subjectID, err)
	}
	return intervals, nil
}

// Changes returns a subject's audit entries, newest first.
func (s *temporalService) Changes(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]domain.ChangeEntry, error) {
	entries, err := s.changes.List(ctx, kind, subjectID.String())
	if err != nil {
		return nil, fmt.Errorf("changes for %s %s: %w", kind, subjectID, err)
	}
	return entries, nil
}
