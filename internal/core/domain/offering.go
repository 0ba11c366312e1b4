package domain

// Offering is the versioned snapshot of a registrant's exempt offering,
// keyed by the registrant's subject ID.
type Offering struct {
	SubjectID SubjectID `json:"subject_id"`

	// RegistrantID repeats the filer the offering belongs to. It must match
	// SubjectID; a disagreement is a programming error upstream, not data.
	RegistrantID SubjectID `json:"registrant_id"`

	OfferingType      *string `json:"offering_type,omitempty"`
	IndustryGroup     *string `json:"industry_group,omitempty"`
	Exemptions        *string `json:"exemptions,omitempty"`
	TotalAmount       *string `json:"total_amount,omitempty"`
	AmountSold        *string `json:"amount_sold,omitempty"`
	MinimumInvestment *string `json:"minimum_investment,omitempty"`

	// OwnershipPrecision is a bookkeeping column (decimal precision used
	// when amounts were parsed); untracked.
	OwnershipPrecision int `json:"ownership_precision,omitempty"`
}

func (o *Offering) Kind() SubjectKind  { return SubjectKindOffering }
func (o *Offering) Subject() SubjectID { return o.SubjectID }

func (o *Offering) Validate() error {
	if err := o.SubjectID.Validate(); err != nil {
		return err
	}
	if o.RegistrantID != o.SubjectID {
		return ErrSubjectMismatch
	}
	return nil
}

func (o *Offering) Fields() []FieldValue {
	return []FieldValue{
		{Name: "offering_type", Value: o.OfferingType},
		{Name: "industry_group", Value: o.IndustryGroup},
		{Name: "exemptions", Value: o.Exemptions},
		{Name: "total_amount", Value: o.TotalAmount},
		{Name: "amount_sold", Value: o.AmountSold},
		{Name: "minimum_investment", Value: o.MinimumInvestment},
	}
}
