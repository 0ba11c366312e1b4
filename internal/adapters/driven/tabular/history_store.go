package tabular

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements driven.HistoryStore over a TableStore, keyed
// kind/subject/valid_from so one subject's intervals are a prefix search.
type HistoryStore struct {
	store driven.TableStore
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(store driven.TableStore) *HistoryStore {
	return &HistoryStore{store: store}
}

// intervalDoc is the stored form of an interval. The snapshot is embedded
// as raw JSON and decoded by subject kind on read.
type intervalDoc struct {
	ValidFrom  time.Time       `json:"valid_from"`
	ValidTo    *time.Time      `json:"valid_to,omitempty"`
	Snapshot   json.RawMessage `json:"snapshot"`
	Source     string          `json:"source"`
	RecordedAt time.Time       `json:"recorded_at"`
}

func intervalKey(kind domain.SubjectKind, subjectID domain.SubjectID, validFrom time.Time) string {
	return joinKey(string(kind), subjectID.String(), timeKey(validFrom))
}

func subjectPrefix(kind domain.SubjectKind, subjectID domain.SubjectID) string {
	return joinKey(string(kind), subjectID.String()) + keySep
}

// Insert writes a new interval
func (s *HistoryStore) Insert(ctx context.Context, iv *domain.Interval) error {
	doc, err := encodeInterval(iv)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, TableHistory, driven.TableRecord{
		Key:   intervalKey(iv.Kind, iv.SubjectID, iv.ValidFrom),
		Value: doc,
	})
}

// Open returns the subject's currently open interval
func (s *HistoryStore) Open(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) (*domain.Interval, error) {
	intervals, err := s.List(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}
	for _, iv := range intervals {
		if iv.ValidTo == nil {
			return iv, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Close sets valid_to on the interval identified by (kind, subject, validFrom)
func (s *HistoryStore) Close(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, validFrom, validTo time.Time) error {
	key := intervalKey(kind, subjectID, validFrom)
	rec, err := s.store.Get(ctx, TableHistory, key)
	if err != nil {
		return fmt.Errorf("close interval %s %s: %w", kind, subjectID, err)
	}

	iv, err := decodeInterval(kind, subjectID, rec.Value)
	if err != nil {
		return err
	}
	iv.ValidTo = &validTo

	doc, err := encodeInterval(iv)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, TableHistory, driven.TableRecord{Key: key, Value: doc})
}

// List returns all of a subject's intervals, newest first
func (s *HistoryStore) List(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) ([]*domain.Interval, error) {
	recs, err := s.store.Search(ctx, TableHistory, subjectPrefix(kind, subjectID))
	if err != nil {
		return nil, err
	}

	intervals := make([]*domain.Interval, 0, len(recs))
	for _, rec := range recs {
		iv, err := decodeInterval(kind, subjectID, rec.Value)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].ValidFrom.After(intervals[j].ValidFrom)
	})
	return intervals, nil
}

func encodeInterval(iv *domain.Interval) ([]byte, error) {
	snap, err := domain.EncodeSnapshot(iv.Snapshot)
	if err != nil {
		return nil, err
	}
	return json.Marshal(intervalDoc{
		ValidFrom:  iv.ValidFrom,
		ValidTo:    iv.ValidTo,
		Snapshot:   snap,
		Source:     iv.Source,
		RecordedAt: iv.RecordedAt,
	})
}

func decodeInterval(kind domain.SubjectKind, subjectID domain.SubjectID, data []byte) (*domain.Interval, error) {
	var doc intervalDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode interval: %w", err)
	}

	snap, err := domain.DecodeSnapshot(kind, doc.Snapshot)
	if err != nil {
		return nil, err
	}

	return &domain.Interval{
		Kind:       kind,
		SubjectID:  subjectID,
		ValidFrom:  doc.ValidFrom,
		ValidTo:    doc.ValidTo,
		Snapshot:   snap,
		Source:     doc.Source,
		RecordedAt: doc.RecordedAt,
	}, nil
}
