package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownEntity indicates a relation references a canonical entity
	// that was never upserted. This is caller misuse, not missing data.
	ErrUnknownEntity = errors.New("unknown canonical entity")

	// ErrSubjectMismatch indicates composite-key fields disagree across
	// related records (e.g. an offering whose registrant ID does not match
	// the subject it is filed under)
	ErrSubjectMismatch = errors.New("subject id mismatch")

	// ErrSubjectOutOfRange indicates a subject ID outside the registrant
	// identifier domain (non-negative, at most 10 digits)
	ErrSubjectOutOfRange = errors.New("subject id out of range")

	// ErrTableNotInitialized indicates a store was used against a
	// collection it never initialized. Configuration error; writes are
	// never silently dropped.
	ErrTableNotInitialized = errors.New("table not initialized")

	// ErrUnknownSubjectKind indicates a snapshot kind with no registered
	// tracked-field list
	ErrUnknownSubjectKind = errors.New("unknown subject kind")

	// ErrLockNotAcquired indicates the per-subject lock is held elsewhere
	ErrLockNotAcquired = errors.New("subject lock not acquired")
)
