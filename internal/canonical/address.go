package canonical

import (
	"strings"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// AddressInput is a raw address mention as parsed from a filing.
type AddressInput struct {
	Street1 string
	Street2 string
	City    string
	State   string
	Zip     string
	Country string
}

// streetAbbrev maps street-type words to their USPS abbreviation so
// "100 Main Street" and "100 Main St." canonicalize identically.
var streetAbbrev = map[string]string{
	"street":    "St",
	"avenue":    "Ave",
	"boulevard": "Blvd",
	"drive":     "Dr",
	"road":      "Rd",
	"lane":      "Ln",
	"court":     "Ct",
	"place":     "Pl",
	"plaza":     "Plz",
	"square":    "Sq",
	"terrace":   "Ter",
	"parkway":   "Pkwy",
	"highway":   "Hwy",
	"circle":    "Cir",
	"suite":     "Ste",
	"floor":     "Fl",
	"building":  "Bldg",
	"apartment": "Apt",
}

// stateCodes maps spelled-out US state and territory names to USPS codes.
var stateCodes = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"puerto rico": "PR", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA",
	"west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// countryAliases collapse the feed's common spellings of the home country.
var countryAliases = map[string]string{
	"united states":            "US",
	"united states of america": "US",
	"usa":                      "US",
	"u.s.":                     "US",
	"u.s.a.":                   "US",
}

// NormalizeAddress canonicalizes a raw address. Returns nil when neither a
// street nor a city is present.
func NormalizeAddress(in AddressInput) *domain.Address {
	street1 := normalizeStreet(in.Street1)
	street2 := normalizeStreet(in.Street2)
	city := nameCaseLoose(collapseWhitespace(in.City))
	if street1 == "" && city == "" {
		return nil
	}

	addr := &domain.Address{
		Street1: street1,
		Street2: street2,
		City:    city,
		State:   normalizeState(in.State),
		Zip:     normalizeZip(in.Zip),
		Country: normalizeCountry(in.Country),
	}

	addr.Hash = Slugify(strings.Join([]string{
		addr.Street1, addr.Street2, addr.City, addr.State, addr.Zip, addr.Country,
	}, " "))
	return addr
}

func normalizeStreet(s string) string {
	words := strings.Fields(strings.Trim(collapseWhitespace(s), " .,;"))
	for i, w := range words {
		key := strings.ToLower(strings.Trim(w, ".,"))
		if abbrev, ok := streetAbbrev[key]; ok {
			words[i] = abbrev
			continue
		}
		words[i] = capitalizeSegments(strings.ToLower(strings.Trim(w, ",")))
	}
	return strings.Join(words, " ")
}

func normalizeState(s string) string {
	s = collapseWhitespace(s)
	if s == "" {
		return ""
	}
	if code, ok := stateCodes[strings.ToLower(s)]; ok {
		return code
	}
	if len(s) == 2 {
		return strings.ToUpper(s)
	}
	return nameCaseLoose(s)
}

// normalizeZip keeps the five-digit prefix, dropping ZIP+4 extensions.
func normalizeZip(s string) string {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if r < '0' || r > '9' {
			break
		}
		digits.WriteRune(r)
		if digits.Len() == 5 {
			break
		}
	}
	return digits.String()
}

func normalizeCountry(s string) string {
	s = collapseWhitespace(s)
	if s == "" {
		return ""
	}
	if code, ok := countryAliases[strings.ToLower(s)]; ok {
		return code
	}
	if len(s) == 2 {
		return strings.ToUpper(s)
	}
	return nameCaseLoose(s)
}

// nameCaseLoose title-cases plain words without surname particle handling.
func nameCaseLoose(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = capitalizeSegments(w)
	}
	return strings.Join(words, " ")
}
