package domain

import "time"

// RegistrantProfile is the versioned subject snapshot for a filer: the
// present-day believed-true attribute record keyed by its registration
// number.
type RegistrantProfile struct {
	SubjectID SubjectID `json:"subject_id"`

	Name         string  `json:"name"`
	Street1      string  `json:"street1"`
	Street2      *string `json:"street2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Phone        *string `json:"phone,omitempty"`
	Jurisdiction *string `json:"jurisdiction,omitempty"`
	EntityType   *string `json:"entity_type,omitempty"`
	YearOfInc    *string `json:"year_of_incorporation,omitempty"`

	// FetchedAt records when the upstream document was retrieved. It is
	// bookkeeping, not a tracked field, and never enters the audit trail.
	FetchedAt time.Time `json:"fetched_at,omitempty"`
}

func (r *RegistrantProfile) Kind() SubjectKind  { return SubjectKindRegistrant }
func (r *RegistrantProfile) Subject() SubjectID { return r.SubjectID }

func (r *RegistrantProfile) Validate() error {
	if r.Name == "" {
		return ErrInvalidInput
	}
	return r.SubjectID.Validate()
}

// Fields lists the tracked attributes in declaration order. FetchedAt is
// deliberately absent.
func (r *RegistrantProfile) Fields() []FieldValue {
	return []FieldValue{
		{Name: "name", Value: StringPtr(r.Name)},
		{Name: "street1", Value: StringPtr(r.Street1)},
		{Name: "street2", Value: r.Street2},
		{Name: "city", Value: StringPtr(r.City)},
		{Name: "state", Value: StringPtr(r.State)},
		{Name: "zip", Value: StringPtr(r.Zip)},
		{Name: "phone", Value: r.Phone},
		{Name: "jurisdiction", Value: r.Jurisdiction},
		{Name: "entity_type", Value: r.EntityType},
		{Name: "year_of_incorporation", Value: r.YearOfInc},
	}
}
