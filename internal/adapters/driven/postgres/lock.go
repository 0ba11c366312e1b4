package postgres

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SubjectLock = (*AdvisoryLock)(nil)

// AdvisoryLock implements SubjectLock using PostgreSQL advisory locks.
//
// Advisory locks are connection-scoped, not TTL-based: the TTL parameter
// is ignored and a lost connection releases the lock. For multi-worker
// deployments the Redis lock is recommended; this is the fallback when
// Redis is unavailable.
type AdvisoryLock struct {
	db *DB
}

// NewAdvisoryLock creates a new PostgreSQL advisory lock adapter
func NewAdvisoryLock(db *DB) *AdvisoryLock {
	return &AdvisoryLock{db: db}
}

// subjectLockID folds a subject key into the 64-bit space advisory locks
// use. FNV-1a for consistent, well-distributed values.
func subjectLockID(kind domain.SubjectKind, subjectID domain.SubjectID) int64 {
	h := fnv.New64a()
	h.Write([]byte("identity:lock:" + string(kind) + ":" + subjectID.String()))
	return int64(h.Sum64())
}

// Acquire attempts to take the subject's advisory lock without blocking
func (l *AdvisoryLock) Acquire(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, ttl time.Duration) (bool, error) {
	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", subjectLockID(kind, subjectID)).Scan(&acquired)
	if err != nil {
		return false, err
	}
	return acquired, nil
}

// Release releases the subject's advisory lock. Safe to call when the lock
// is not held.
func (l *AdvisoryLock) Release(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	var released bool
	return l.db.QueryRowContext(ctx, "SELECT pg_advisory_unlock($1)", subjectLockID(kind, subjectID)).Scan(&released)
}
