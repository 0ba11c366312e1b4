package driving

import (
	"context"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// IdentityService resolves canonical entities and their subject relations.
type IdentityService interface {
	// UpsertEntity writes a canonical entity. Idempotent by identity hash.
	UpsertEntity(ctx context.Context, entity domain.Entity) error

	// Link attaches an already-upserted entity to a subject under a
	// relation tag. Idempotent on (hash, tag, subject); re-linking
	// replaces roles. Linking an unknown hash is caller misuse and
	// returns domain.ErrUnknownEntity.
	Link(ctx context.Context, hash string, kind domain.EntityKind, tag string, subjectID domain.SubjectID, roles []string) error

	// EntitiesForSubject hydrates every canonical entity related to a
	// subject, through its relation rows.
	EntitiesForSubject(ctx context.Context, subjectID domain.SubjectID) ([]RelatedEntity, error)

	// EntitiesForSubjectAndRelation restricts the hydration to one tag.
	EntitiesForSubjectAndRelation(ctx context.Context, subjectID domain.SubjectID, tag string) ([]RelatedEntity, error)
}

// RelatedEntity pairs a hydrated canonical entity with the junction row
// that reached it.
type RelatedEntity struct {
	Entity   domain.Entity
	Relation *domain.Relation
}
