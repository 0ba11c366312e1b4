package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RelationStore = (*RelationStore)(nil)

// RelationStore implements driven.RelationStore using PostgreSQL
type RelationStore struct {
	db *DB
}

// NewRelationStore creates a new RelationStore
func NewRelationStore(db *DB) *RelationStore {
	return &RelationStore{db: db}
}

// Link inserts or replaces a relation on its composite key
func (s *RelationStore) Link(ctx context.Context, rel *domain.Relation) error {
	query := `
		INSERT INTO relations (entity_hash, entity_kind, tag, subject_id, roles)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (entity_hash, tag, subject_id) DO UPDATE SET
			entity_kind = EXCLUDED.entity_kind,
			roles = EXCLUDED.roles
	`

	_, err := s.db.ExecContext(ctx, query,
		rel.EntityHash,
		string(rel.EntityKind),
		rel.Tag,
		int64(rel.SubjectID),
		pq.Array(rel.Roles),
	)
	return err
}

// Get retrieves one relation by its composite key
func (s *RelationStore) Get(ctx context.Context, hash, tag string, subjectID domain.SubjectID) (*domain.Relation, error) {
	query := `
		SELECT entity_hash, entity_kind, tag, subject_id, roles
		FROM relations
		WHERE entity_hash = $1 AND tag = $2 AND subject_id = $3
	`

	rel, err := scanRelation(s.db.QueryRowContext(ctx, query, hash, tag, int64(subjectID)))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return rel, err
}

// ForSubject returns every relation pointing at a subject
func (s *RelationStore) ForSubject(ctx context.Context, subjectID domain.SubjectID) ([]*domain.Relation, error) {
	query := `
		SELECT entity_hash, entity_kind, tag, subject_id, roles
		FROM relations
		WHERE subject_id = $1
		ORDER BY entity_kind, entity_hash, tag
	`

	return s.queryRelations(ctx, query, int64(subjectID))
}

// ForSubjectAndTag returns a subject's relations under one tag
func (s *RelationStore) ForSubjectAndTag(ctx context.Context, subjectID domain.SubjectID, tag string) ([]*domain.Relation, error) {
	query := `
		SELECT entity_hash, entity_kind, tag, subject_id, roles
		FROM relations
		WHERE subject_id = $1 AND tag = $2
		ORDER BY entity_kind, entity_hash
	`

	return s.queryRelations(ctx, query, int64(subjectID), tag)
}

func (s *RelationStore) queryRelations(ctx context.Context, query string, args ...interface{}) ([]*domain.Relation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []*domain.Relation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rels, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRelation(row rowScanner) (*domain.Relation, error) {
	var rel domain.Relation
	var kind string
	var subjectID int64
	var roles []string

	err := row.Scan(&rel.EntityHash, &kind, &rel.Tag, &subjectID, pq.Array(&roles))
	if err != nil {
		return nil, err
	}

	rel.EntityKind = domain.EntityKind(kind)
	rel.SubjectID = domain.SubjectID(subjectID)
	rel.Roles = roles
	return &rel, nil
}
