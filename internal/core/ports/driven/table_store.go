package driven

import "context"

// TableRecord is an opaque row in a tabular collection. Key encodes the
// record's (possibly composite) key; composite parts are joined with "/".
type TableRecord struct {
	Key   string
	Value []byte
}

// TableStore is the minimal tabular contract the core needs from a storage
// engine: keyed get/put/search/delete plus a full scan, per named
// collection. Any store offering these five operations with composite-key
// prefix lookup suffices; the core does not assume SQL.
//
// Operations against a collection the store never initialized return
// domain.ErrTableNotInitialized rather than silently dropping writes.
type TableStore interface {
	// Get retrieves one record by exact key. domain.ErrNotFound if absent.
	Get(ctx context.Context, table, key string) (*TableRecord, error)

	// Put inserts or overwrites one record.
	Put(ctx context.Context, table string, rec TableRecord) error

	// Search returns all records whose key starts with prefix, in key order.
	Search(ctx context.Context, table, prefix string) ([]TableRecord, error)

	// Delete removes one record by exact key. Deleting a missing key is a
	// no-op.
	Delete(ctx context.Context, table, key string) error

	// GetAll returns every record in the collection, in key order.
	GetAll(ctx context.Context, table string) ([]TableRecord, error)
}
