package driven

import (
	"context"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// SubjectLock serializes writers per subject. The version tracker's
// compare-then-write is not atomic, so concurrent updates to the same
// subject must not interleave; callers acquire the subject's lock around
// each saveWithHistory call. Different subjects proceed concurrently.
type SubjectLock interface {
	// Acquire attempts to take the lock for one subject with the given
	// TTL. Returns false when another holder has it.
	Acquire(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, ttl time.Duration) (bool, error)

	// Release releases the subject's lock if held by this instance. Safe
	// to call after expiry.
	Release(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error
}
