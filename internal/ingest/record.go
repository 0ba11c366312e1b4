// Package ingest turns raw feed records into canonical entities, relation
// links, and versioned snapshot saves. It is the batch driver sitting on
// top of the core services; parsing filings into ImportRecords is the
// upstream layer's job.
package ingest

import "time"

// ImportRecord is the raw, feed-shaped input for one regulatory subject:
// the filer's attribute block plus the free-text mentions parsed out of the
// filing. Values arrive exactly as the feed printed them; canonicalization
// happens here, not upstream.
type ImportRecord struct {
	SubjectID int64 `json:"subject_id"`

	// Source names the document type that produced the record, e.g.
	// "annual-report" or "form-d".
	Source string `json:"source"`

	Registrant *RawRegistrant `json:"registrant,omitempty"`
	Offering   *RawOffering   `json:"offering,omitempty"`

	Companies []CompanyMention `json:"companies,omitempty"`
	People    []PersonMention  `json:"people,omitempty"`
	Phones    []PhoneMention   `json:"phones,omitempty"`
	Addresses []AddressMention `json:"addresses,omitempty"`
}

// RawRegistrant is the filer attribute block as printed in the feed.
type RawRegistrant struct {
	Name         string    `json:"name"`
	Street1      string    `json:"street1,omitempty"`
	Street2      string    `json:"street2,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Zip          string    `json:"zip,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Jurisdiction string    `json:"jurisdiction,omitempty"`
	EntityType   string    `json:"entity_type,omitempty"`
	YearOfInc    string    `json:"year_of_incorporation,omitempty"`
	FetchedAt    time.Time `json:"fetched_at,omitempty"`
}

// RawOffering is the exempt-offering attribute block. Empty strings mean
// the filing left the field blank.
type RawOffering struct {
	OfferingType      string `json:"offering_type,omitempty"`
	IndustryGroup     string `json:"industry_group,omitempty"`
	Exemptions        string `json:"exemptions,omitempty"`
	TotalAmount       string `json:"total_amount,omitempty"`
	AmountSold        string `json:"amount_sold,omitempty"`
	MinimumInvestment string `json:"minimum_investment,omitempty"`
}

// CompanyMention is one free-text company reference with its provenance.
type CompanyMention struct {
	Raw   string   `json:"raw"`
	Tag   string   `json:"tag"`
	Roles []string `json:"roles,omitempty"`
}

// PersonMention is one free-text person reference. Note disambiguates
// same-named people when the filing provides extra context.
type PersonMention struct {
	Raw   string   `json:"raw"`
	Note  string   `json:"note,omitempty"`
	Tag   string   `json:"tag"`
	Roles []string `json:"roles,omitempty"`
}

// PhoneMention is one raw phone string. Region overrides the default
// parsing region when set.
type PhoneMention struct {
	Raw    string   `json:"raw"`
	Region string   `json:"region,omitempty"`
	Tag    string   `json:"tag"`
	Roles  []string `json:"roles,omitempty"`
}

// AddressMention is one structured address block.
type AddressMention struct {
	Street1 string   `json:"street1,omitempty"`
	Street2 string   `json:"street2,omitempty"`
	City    string   `json:"city,omitempty"`
	State   string   `json:"state,omitempty"`
	Zip     string   `json:"zip,omitempty"`
	Country string   `json:"country,omitempty"`
	Tag     string   `json:"tag"`
	Roles   []string `json:"roles,omitempty"`
}
