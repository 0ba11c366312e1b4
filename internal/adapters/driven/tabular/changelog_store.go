package tabular

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChangeLogStore = (*ChangeLogStore)(nil)

// ChangeLogStore implements driven.ChangeLogStore over a TableStore, keyed
// kind/subject/ts/id. Append-only: nothing here updates or deletes.
type ChangeLogStore struct {
	store driven.TableStore
}

// NewChangeLogStore creates a new ChangeLogStore
func NewChangeLogStore(store driven.TableStore) *ChangeLogStore {
	return &ChangeLogStore{store: store}
}

func entryKey(e domain.ChangeEntry) string {
	return joinKey(string(e.Kind), e.SubjectID, timeKey(e.Timestamp), e.ID)
}

// Append writes entries
func (s *ChangeLogStore) Append(ctx context.Context, entries ...domain.ChangeEntry) error {
	for _, e := range entries {
		doc, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode change entry %s: %w", e.ID, err)
		}
		if err := s.store.Put(ctx, TableChangeLog, driven.TableRecord{Key: entryKey(e), Value: doc}); err != nil {
			return err
		}
	}
	return nil
}

// List returns a subject's entries, newest first
func (s *ChangeLogStore) List(ctx context.Context, kind domain.SubjectKind, subjectID string) ([]domain.ChangeEntry, error) {
	prefix := joinKey(string(kind), subjectID) + keySep
	recs, err := s.store.Search(ctx, TableChangeLog, prefix)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ChangeEntry, 0, len(recs))
	for _, rec := range recs {
		var e domain.ChangeEntry
		if err := json.Unmarshal(rec.Value, &e); err != nil {
			return nil, fmt.Errorf("decode change entry: %w", err)
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
