package domain

// Relation links a canonical entity to a regulatory subject under a named
// provenance tag (e.g. "form-d:issuer"). It is a pure junction: it carries
// only the entity hash, never denormalized entity attributes, so entity
// updates are visible through every relation without rewriting junctions.
//
// Composite key: (EntityHash, Tag, SubjectID). Re-linking the same key
// replaces Roles.
type Relation struct {
	EntityHash string     `json:"entity_hash"`
	EntityKind EntityKind `json:"entity_kind"`
	Tag        string     `json:"tag"`
	SubjectID  SubjectID  `json:"subject_id"`
	Roles      []string   `json:"roles,omitempty"`
}

// Validate checks the composite key is complete.
func (r *Relation) Validate() error {
	if r.EntityHash == "" || r.Tag == "" {
		return ErrInvalidInput
	}
	return r.SubjectID.Validate()
}
