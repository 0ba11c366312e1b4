package tabular

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RelationStore = (*RelationStore)(nil)

// RelationStore implements driven.RelationStore over a TableStore. Keys
// lead with the subject so per-subject listings are prefix searches.
type RelationStore struct {
	store driven.TableStore
}

// NewRelationStore creates a new RelationStore
func NewRelationStore(store driven.TableStore) *RelationStore {
	return &RelationStore{store: store}
}

func relationKey(subjectID domain.SubjectID, tag, hash string) string {
	return joinKey(subjectID.String(), tag, hash)
}

// Link inserts or replaces a relation on its composite key
func (s *RelationStore) Link(ctx context.Context, rel *domain.Relation) error {
	doc, err := json.Marshal(rel)
	if err != nil {
		return fmt.Errorf("encode relation: %w", err)
	}
	return s.store.Put(ctx, TableRelations, driven.TableRecord{
		Key:   relationKey(rel.SubjectID, rel.Tag, rel.EntityHash),
		Value: doc,
	})
}

// Get retrieves one relation by its composite key
func (s *RelationStore) Get(ctx context.Context, hash, tag string, subjectID domain.SubjectID) (*domain.Relation, error) {
	rec, err := s.store.Get(ctx, TableRelations, relationKey(subjectID, tag, hash))
	if err != nil {
		return nil, err
	}
	return decodeRelation(rec.Value)
}

// ForSubject returns every relation pointing at a subject
func (s *RelationStore) ForSubject(ctx context.Context, subjectID domain.SubjectID) ([]*domain.Relation, error) {
	return s.search(ctx, subjectID.String()+keySep)
}

// ForSubjectAndTag returns a subject's relations under one tag
func (s *RelationStore) ForSubjectAndTag(ctx context.Context, subjectID domain.SubjectID, tag string) ([]*domain.Relation, error) {
	return s.search(ctx, joinKey(subjectID.String(), tag)+keySep)
}

func (s *RelationStore) search(ctx context.Context, prefix string) ([]*domain.Relation, error) {
	recs, err := s.store.Search(ctx, TableRelations, prefix)
	if err != nil {
		return nil, err
	}

	rels := make([]*domain.Relation, 0, len(recs))
	for _, rec := range recs {
		rel, err := decodeRelation(rec.Value)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

func decodeRelation(data []byte) (*domain.Relation, error) {
	var rel domain.Relation
	if err := json.Unmarshal(data, &rel); err != nil {
		return nil, fmt.Errorf("decode relation: %w", err)
	}
	return &rel, nil
}
