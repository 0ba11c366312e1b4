package domain

import "time"

// ChangeKind classifies a change log entry.
type ChangeKind string

const (
	ChangeKindCreate ChangeKind = "create"
	ChangeKindUpdate ChangeKind = "update"
	ChangeKindDelete ChangeKind = "delete"
)

// FieldWildcard marks a whole-record create or delete entry.
const FieldWildcard = "*"

// ChangeEntry is one field-level audit record. Entries are append-only and
// immutable once written: replayed in timestamp order they reconstruct the
// subject's interval sequence exactly. One update touching N tracked fields
// produces N entries sharing a timestamp and source.
type ChangeEntry struct {
	ID        string      `json:"id"`
	Kind      SubjectKind `json:"kind"`
	SubjectID string      `json:"subject_id"`

	// Field is the tracked field name, or FieldWildcard for whole-record
	// create/delete entries.
	Field string `json:"field"`

	Old *string `json:"old,omitempty"`
	New *string `json:"new,omitempty"`

	ChangeKind ChangeKind `json:"change_kind"`
	Source     string     `json:"source"`
	Timestamp  time.Time  `json:"timestamp"`

	// BatchID groups entries produced by one bulk operation.
	BatchID *string `json:"batch_id,omitempty"`

	// ActorID identifies who or what initiated the change, when known.
	ActorID *string `json:"actor_id,omitempty"`
}
