package domain

// FieldValue is one tracked field of a subject snapshot. Value is nil when
// the field is unset; nil is distinct from the empty string and the
// distinction survives into the change log.
type FieldValue struct {
	Name  string
	Value *string
}

// FieldChange is one detected difference between two snapshots of the same
// subject.
type FieldChange struct {
	Field string
	Old   *string
	New   *string
}

// Snapshot is the current believed-true attribute record for a versioned
// subject. Implementations enumerate their tracked fields explicitly:
// Fields is the allow-list that decides what enters the audit trail, so
// bookkeeping attributes stay out of it.
type Snapshot interface {
	// Kind returns the subject family the snapshot belongs to.
	Kind() SubjectKind
	// Subject returns the registrant identifier the snapshot is keyed by.
	Subject() SubjectID
	// Fields returns the tracked fields in a fixed declaration order.
	Fields() []FieldValue
	// Validate reports caller misuse (bad subject ID, mismatched
	// composite-key fields). Misuse aborts the unit of work.
	Validate() error
}

// Diff compares two snapshots of the same kind field-for-field and returns
// the changes in declaration order. Both nil-vs-set and value differences
// count; two nils are equal.
func Diff(prev, next Snapshot) []FieldChange {
	oldFields := prev.Fields()
	newFields := next.Fields()

	var changes []FieldChange
	for i, nf := range newFields {
		var ov *string
		if i < len(oldFields) {
			ov = oldFields[i].Value
		}
		if !equalValue(ov, nf.Value) {
			changes = append(changes, FieldChange{Field: nf.Name, Old: ov, New: nf.Value})
		}
	}
	return changes
}

func equalValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// StringPtr returns a pointer to s. Convenience for building snapshots and
// expected diffs.
func StringPtr(s string) *string {
	return &s
}
