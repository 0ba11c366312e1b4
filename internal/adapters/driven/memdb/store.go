// Package memdb provides an in-memory TableStore backed by
// hashicorp/go-memdb. It serves tests and single-process tooling where a
// PostgreSQL instance is unavailable; data does not survive the process.
package memdb

import (
	"context"
	"fmt"
	"sort"

	memdb "github.com/hashicorp/go-memdb"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TableStore = (*Store)(nil)

// record is the object stored in memdb tables. go-memdb indexes struct
// fields, so the opaque key/value pair is wrapped rather than stored raw.
type record struct {
	Key   string
	Value []byte
}

// Store implements driven.TableStore over a go-memdb database. Every
// operation runs in its own memdb transaction; go-memdb's MVCC makes
// concurrent readers and a single writer safe without external locking.
type Store struct {
	db     *memdb.MemDB
	tables map[string]bool
}

// New creates a Store with one memdb table per requested collection name.
func New(tables ...string) (*Store, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("memdb store: at least one table required")
	}

	schema := &memdb.DBSchema{Tables: map[string]*memdb.TableSchema{}}
	known := make(map[string]bool, len(tables))
	for _, name := range tables {
		schema.Tables[name] = &memdb.TableSchema{
			Name: name,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Key"},
				},
			},
		}
		known[name] = true
	}

	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("memdb store: %w", err)
	}

	return &Store{db: db, tables: known}, nil
}

func (s *Store) check(table string) error {
	if !s.tables[table] {
		return fmt.Errorf("table %q: %w", table, domain.ErrTableNotInitialized)
	}
	return nil
}

// Get retrieves one record by exact key
func (s *Store) Get(ctx context.Context, table, key string) (*driven.TableRecord, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}

	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(table, "id", key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, domain.ErrNotFound
	}

	rec := raw.(*record)
	return &driven.TableRecord{Key: rec.Key, Value: rec.Value}, nil
}

// Put inserts or overwrites one record
func (s *Store) Put(ctx context.Context, table string, rec driven.TableRecord) error {
	if err := s.check(table); err != nil {
		return err
	}

	txn := s.db.Txn(true)
	if err := txn.Insert(table, &record{Key: rec.Key, Value: rec.Value}); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()
	return nil
}

// Search returns all records whose key starts with prefix, in key order
func (s *Store) Search(ctx context.Context, table, prefix string) ([]driven.TableRecord, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}

	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, "id_prefix", prefix)
	if err != nil {
		return nil, err
	}

	return collect(it), nil
}

// Delete removes one record by exact key. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, table, key string) error {
	if err := s.check(table); err != nil {
		return err
	}

	txn := s.db.Txn(true)
	raw, err := txn.First(table, "id", key)
	if err != nil {
		txn.Abort()
		return err
	}
	if raw == nil {
		txn.Abort()
		return nil
	}
	if err := txn.Delete(table, raw); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()
	return nil
}

// GetAll returns every record in the collection, in key order
func (s *Store) GetAll(ctx context.Context, table string) ([]driven.TableRecord, error) {
	if err := s.check(table); err != nil {
		return nil, err
	}

	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, "id")
	if err != nil {
		return nil, err
	}

	return collect(it), nil
}

func collect(it memdb.ResultIterator) []driven.TableRecord {
	var recs []driven.TableRecord
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rec := raw.(*record)
		recs = append(recs, driven.TableRecord{Key: rec.Key, Value: rec.Value})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Key < recs[j].Key })
	return recs
}
