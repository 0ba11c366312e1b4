package domain

import "time"

// Interval is one valid-time-bounded snapshot of a subject's attributes.
// ValidFrom is inclusive; ValidTo is exclusive, nil meaning the interval is
// still current. For a given (kind, subject) at most one interval is open,
// and intervals never overlap.
type Interval struct {
	Kind      SubjectKind `json:"kind"`
	SubjectID SubjectID   `json:"subject_id"`
	ValidFrom time.Time   `json:"valid_from"`
	ValidTo   *time.Time  `json:"valid_to,omitempty"`
	Snapshot  Snapshot    `json:"-"`

	// Source names the document type or process that produced the version.
	Source string `json:"source"`

	// RecordedAt is the write-time clock reading. Interval boundaries are
	// write times, not source-document dates; backfilling out of
	// chronological order yields boundaries that do not match real-world
	// event dates.
	RecordedAt time.Time `json:"recorded_at"`
}

// Covers reports whether t falls inside the interval under half-open
// semantics: valid_from <= t < valid_to, with a nil valid_to open-ended.
func (iv *Interval) Covers(t time.Time) bool {
	if t.Before(iv.ValidFrom) {
		return false
	}
	return iv.ValidTo == nil || t.Before(*iv.ValidTo)
}
