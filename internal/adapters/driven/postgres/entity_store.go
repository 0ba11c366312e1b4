package postgres

import (
	"context"
	"database/sql"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EntityStore = (*EntityStore)(nil)

// EntityStore implements driven.EntityStore using PostgreSQL
type EntityStore struct {
	db *DB
}

// NewEntityStore creates a new EntityStore
func NewEntityStore(db *DB) *EntityStore {
	return &EntityStore{db: db}
}

// Upsert writes a canonical entity, idempotently by (kind, hash)
func (s *EntityStore) Upsert(ctx context.Context, entity domain.Entity) error {
	doc, err := domain.EncodeEntity(entity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO entities (kind, hash, doc)
		VALUES ($1, $2, $3)
		ON CONFLICT (kind, hash) DO UPDATE SET
			doc = EXCLUDED.doc
	`

	_, err = s.db.ExecContext(ctx, query, string(entity.EntityKind()), entity.EntityHash(), doc)
	return err
}

// Get retrieves a canonical entity by kind and hash
func (s *EntityStore) Get(ctx context.Context, kind domain.EntityKind, hash string) (domain.Entity, error) {
	query := `
		SELECT doc
		FROM entities
		WHERE kind = $1 AND hash = $2
	`

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, string(kind), hash).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return domain.DecodeEntity(kind, doc)
}
