package domain

// EntityKind identifies a canonical-entity collection.
type EntityKind string

const (
	EntityKindCompany EntityKind = "company"
	EntityKindPerson  EntityKind = "person"
	EntityKindPhone   EntityKind = "phone"
	EntityKindAddress EntityKind = "address"
)

// Entity is a deduplicated representation of a real-world mention, keyed by
// a deterministic identity hash. Entities are immutable by convention:
// re-normalizing the same logical mention yields the same hash and an
// idempotent overwrite.
type Entity interface {
	// EntityHash returns the opaque lowercase hyphenated identity key.
	EntityHash() string
	// EntityKind returns which collection the entity belongs to.
	EntityKind() EntityKind
	// DisplayName returns the canonical human-readable form.
	DisplayName() string
}

// Company is a canonical company record.
type Company struct {
	Hash string `json:"hash"`
	Name string `json:"name"`
}

func (c *Company) EntityHash() string     { return c.Hash }
func (c *Company) EntityKind() EntityKind { return EntityKindCompany }
func (c *Company) DisplayName() string    { return c.Name }

// Person is a canonical person record. Optional name components are empty
// strings when absent; First and Last are always set.
type Person struct {
	Hash     string `json:"hash"`
	First    string `json:"first"`
	Middle   string `json:"middle,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Last     string `json:"last"`
	Suffix   string `json:"suffix,omitempty"`
	Title    string `json:"title,omitempty"`

	// Note is a free-text disambiguation note carried into the hash so two
	// same-named individuals can be kept apart by upstream parsers.
	Note string `json:"note,omitempty"`
}

func (p *Person) EntityHash() string     { return p.Hash }
func (p *Person) EntityKind() EntityKind { return EntityKindPerson }

func (p *Person) DisplayName() string {
	name := p.First
	if p.Middle != "" {
		name += " " + p.Middle
	}
	if p.Nickname != "" {
		name += " \"" + p.Nickname + "\""
	}
	name += " " + p.Last
	if p.Suffix != "" {
		name += " " + p.Suffix
	}
	return name
}

// Phone is a canonical phone record. Raw preserves the input exactly as it
// appeared in the filing; International is the normalized form the hash is
// derived from.
type Phone struct {
	Hash          string `json:"hash"`
	Raw           string `json:"raw"`
	International string `json:"international"`
	LineType      string `json:"line_type"`
}

func (p *Phone) EntityHash() string     { return p.Hash }
func (p *Phone) EntityKind() EntityKind { return EntityKindPhone }
func (p *Phone) DisplayName() string    { return p.International }

// Address is a canonical postal address record.
type Address struct {
	Hash    string `json:"hash"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

func (a *Address) EntityHash() string     { return a.Hash }
func (a *Address) EntityKind() EntityKind { return EntityKindAddress }

func (a *Address) DisplayName() string {
	s := a.Street1
	if a.Street2 != "" {
		s += ", " + a.Street2
	}
	if a.City != "" {
		s += ", " + a.City
	}
	if a.State != "" {
		s += ", " + a.State
	}
	if a.Zip != "" {
		s += " " + a.Zip
	}
	return s
}
