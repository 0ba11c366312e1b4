package driven

import (
	"context"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// EntityStore persists canonical entities, one collection per entity kind,
// keyed by identity hash.
type EntityStore interface {
	// Upsert writes an entity. Writing the same canonical entity twice is
	// a no-op in effect.
	Upsert(ctx context.Context, entity domain.Entity) error

	// Get retrieves an entity by kind and hash. domain.ErrNotFound if the
	// hash was never upserted.
	Get(ctx context.Context, kind domain.EntityKind, hash string) (domain.Entity, error)
}

// RelationStore persists entity-to-subject junction records.
type RelationStore interface {
	// Link inserts or replaces a relation on its composite key
	// (entity hash, tag, subject ID). Re-linking replaces the role list.
	Link(ctx context.Context, rel *domain.Relation) error

	// Get retrieves one relation by its composite key.
	Get(ctx context.Context, hash, tag string, subjectID domain.SubjectID) (*domain.Relation, error)

	// ForSubject returns every relation pointing at a subject.
	ForSubject(ctx context.Context, subjectID domain.SubjectID) ([]*domain.Relation, error)

	// ForSubjectAndTag returns a subject's relations under one tag.
	ForSubjectAndTag(ctx context.Context, subjectID domain.SubjectID, tag string) ([]*domain.Relation, error)
}
