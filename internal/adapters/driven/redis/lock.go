package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SubjectLock = (*SubjectLock)(nil)

const lockPrefix = "identity:lock:"

// SubjectLock implements per-subject mutual exclusion using Redis SETNX
// with TTL. It uses a unique owner ID to prevent accidental release by
// other instances, and the TTL bounds how long a crashed holder can block
// a subject.
type SubjectLock struct {
	client  *redis.Client
	ownerID string
}

// NewSubjectLock creates a new Redis-backed subject lock.
// The owner ID is automatically generated to uniquely identify this instance.
func NewSubjectLock(client *redis.Client) *SubjectLock {
	return &SubjectLock{
		client:  client,
		ownerID: generateOwnerID(),
	}
}

// generateOwnerID creates a unique identifier for this lock holder.
// Format: hostname:pid:random
func generateOwnerID() string {
	hostname, _ := os.Hostname()
	randomBytes := make([]byte, 8)
	_, _ = rand.Read(randomBytes)
	return fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(randomBytes))
}

func lockKey(kind domain.SubjectKind, subjectID domain.SubjectID) string {
	return lockPrefix + string(kind) + ":" + subjectID.String()
}

// Acquire attempts to acquire a subject's lock with the given TTL.
// Uses Redis SETNX (SET if Not eXists) for atomic lock acquisition.
// Returns true if acquired, false if already held by another instance.
func (l *SubjectLock) Acquire(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID, ttl time.Duration) (bool, error) {
	key := lockKey(kind, subjectID)
	result, err := l.client.SetNX(ctx, key, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s %s: %w", kind, subjectID, err)
	}
	return result, nil
}

// releaseScript is a Lua script for safe lock release.
// It only deletes the lock if the current owner matches, preventing
// accidental release of locks held by other instances.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release releases a subject's lock if held by this instance.
// Uses a Lua script to atomically check ownership and delete.
// Safe to call even if the lock is not held or has expired.
func (l *SubjectLock) Release(ctx context.Context, kind domain.SubjectKind, subjectID domain.SubjectID) error {
	key := lockKey(kind, subjectID)
	_, err := releaseScript.Run(ctx, l.client, []string{key}, l.ownerID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %s %s: %w", kind, subjectID, err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy.
func (l *SubjectLock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// OwnerID returns the unique identifier for this lock instance.
// Useful for debugging and logging.
func (l *SubjectLock) OwnerID() string {
	return l.ownerID
}
