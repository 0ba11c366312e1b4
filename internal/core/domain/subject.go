package domain

import "strconv"

// SubjectID is a regulatory registrant identifier. Non-negative, at most
// ten decimal digits.
type SubjectID int64

const maxSubjectID SubjectID = 9_999_999_999

// Validate checks the identifier is inside the registrant domain.
func (id SubjectID) Validate() error {
	if id < 0 || id > maxSubjectID {
		return ErrSubjectOutOfRange
	}
	return nil
}

// String renders the identifier the way the change log stores it.
func (id SubjectID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseSubjectID parses a decimal registrant identifier.
func ParseSubjectID(s string) (SubjectID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidInput
	}
	id := SubjectID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// SubjectKind tags which versioned record family a subject snapshot
// belongs to. Each kind has its own tracked-field allow-list.
type SubjectKind string

const (
	SubjectKindRegistrant SubjectKind = "registrant"
	SubjectKindOffering   SubjectKind = "offering"
)
