package tabular

import (
	"context"
	"fmt"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EntityStore = (*EntityStore)(nil)

// EntityStore implements driven.EntityStore over a TableStore, keyed
// kind/hash.
type EntityStore struct {
	store driven.TableStore
}

// NewEntityStore creates a new EntityStore
func NewEntityStore(store driven.TableStore) *EntityStore {
	return &EntityStore{store: store}
}

func entityKey(kind domain.EntityKind, hash string) string {
	return joinKey(string(kind), hash)
}

// Upsert writes an entity
func (s *EntityStore) Upsert(ctx context.Context, entity domain.Entity) error {
	doc, err := domain.EncodeEntity(entity)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, TableEntities, driven.TableRecord{
		Key:   entityKey(entity.EntityKind(), entity.EntityHash()),
		Value: doc,
	})
}

// Get retrieves an entity by kind and hash
func (s *EntityStore) Get(ctx context.Context, kind domain.EntityKind, hash string) (domain.Entity, error) {
	rec, err := s.store.Get(ctx, TableEntities, entityKey(kind, hash))
	if err != nil {
		return nil, fmt.Errorf("get %s entity %s: %w", kind, hash, err)
	}
	return domain.DecodeEntity(kind, rec.Value)
}
