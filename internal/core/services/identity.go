package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
	"github.com/filingworks/identity-core/internal/core/ports/driving"
)

// Ensure identityService implements IdentityService
var _ driving.IdentityService = (*identityService)(nil)

// identityService implements the IdentityService interface
type identityService struct {
	entities  driven.EntityStore
	relations driven.RelationStore
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(entities driven.EntityStore, relations driven.RelationStore) driving.IdentityService {
	return &identityService{
		entities:  entities,
		relations: relations,
	}
}

// UpsertEntity writes a canonical entity, idempotently by hash.
func (s *identityService) UpsertEntity(ctx context.Context, entity domain.Entity) error {
	if entity == nil || entity.EntityHash() == "" {
		return domain.ErrInvalidInput
	}
	if err := s.entities.Upsert(ctx, entity); err != nil {
		return fmt.Errorf("upsert %s %s: %w", entity.EntityKind(), entity.EntityHash(), err)
	}
	return nil
}

// Link attaches an upserted entity to a subject under a relation tag.
func (s *identityService) Link(ctx context.Context, hash string, kind domain.EntityKind, tag string, subjectID domain.SubjectID, roles []string) error {
	rel := &domain.Relation{
		EntityHash: hash,
		EntityKind: kind,
		Tag:        tag,
		SubjectID:  subjectID,
		Roles:      roles,
	}
	if err := rel.Validate(); err != nil {
		return err
	}

	// A relation must point at a stored entity. A dangling hash is caller
	// misuse and aborts the unit of work.
	if _, err := s.entities.Get(ctx, kind, hash); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("link %s/%s to subject %s: %w", kind, hash, subjectID, domain.ErrUnknownEntity)
		}
		return fmt.Errorf("link %s/%s to subject %s: %w", kind, hash, subjectID, err)
	}

	if err := s.relations.Link(ctx, rel); err != nil {
		return fmt.Errorf("link %s/%s to subject %s: %w", kind, hash, subjectID, err)
	}
	return nil
}

// EntitiesForSubject hydrates every entity related to a subject.
func (s *identityService) EntitiesForSubject(ctx context.Context, subjectID domain.SubjectID) ([]driving.RelatedEntity, error) {
	rels, err := s.relations.ForSubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("relations for subject %s: %w", subjectID, err)
	}
	return s.hydrate(ctx, rels)
}

// EntitiesForSubjectAndRelation hydrates a subject's entities under one tag.
func (s *identityService) EntitiesForSubjectAndRelation(ctx context.Context, subjectID domain.SubjectID, tag string) ([]driving.RelatedEntity, error) {
	rels, err := s.relations.ForSubjectAndTag(ctx, subjectID, tag)
	if err != nil {
		return nil, fmt.Errorf("relations for subject %s tag %s: %w", subjectID, tag, err)
	}
	return s.hydrate(ctx, rels)
}

func (s *identityService) hydrate(ctx context.Context, rels []*domain.Relation) ([]driving.RelatedEntity, error) {
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].EntityKind != rels[j].EntityKind {
			return rels[i].EntityKind < rels[j].EntityKind
		}
		if rels[i].EntityHash != rels[j].EntityHash {
			return rels[i].EntityHash < rels[j].EntityHash
		}
		return rels[i].Tag < rels[j].Tag
	})

	out := make([]driving.RelatedEntity, 0, len(rels))
	for _, rel := range rels {
		entity, err := s.entities.Get(ctx, rel.EntityKind, rel.EntityHash)
		if err != nil {
			return nil, fmt.Errorf("hydrate %s/%s: %w", rel.EntityKind, rel.EntityHash, err)
		}
		out = append(out, driving.RelatedEntity{Entity: entity, Relation: rel})
	}
	return out, nil
}
