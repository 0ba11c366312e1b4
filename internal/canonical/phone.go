package canonical

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// DefaultRegion is assumed when a mention carries no country code.
const DefaultRegion = "US"

// NormalizePhone canonicalizes a free-text phone mention against a region
// (ISO 3166 alpha-2, DefaultRegion when empty). Returns nil when the input
// is empty, unparseable, or a known placeholder (all-zero digits); none of
// these are errors. The raw input is preserved alongside the normalized
// international form.
func NormalizePhone(raw, region string) *domain.Phone {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if region == "" {
		region = DefaultRegion
	}

	if isPlaceholder(trimmed) {
		return nil
	}

	num, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return nil
	}
	if isPlaceholder(phonenumbers.GetNationalSignificantNumber(num)) {
		return nil
	}

	return &domain.Phone{
		Raw:           raw,
		International: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		LineType:      lineTypeName(phonenumbers.GetNumberType(num)),
		Hash:          Slugify(phonenumbers.Format(num, phonenumbers.E164)),
	}
}

// isPlaceholder reports whether the mention's digits are all zeros, the
// feed's convention for "no phone on file".
func isPlaceholder(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return false
		}
		if r == '0' {
			digits++
		}
	}
	return digits > 0
}

func lineTypeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.FIXED_LINE:
		return "fixed_line"
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "fixed_line_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.PREMIUM_RATE:
		return "premium_rate"
	case phonenumbers.SHARED_COST:
		return "shared_cost"
	case phonenumbers.VOIP:
		return "voip"
	case phonenumbers.PERSONAL_NUMBER:
		return "personal"
	case phonenumbers.PAGER:
		return "pager"
	case phonenumbers.UAN:
		return "uan"
	case phonenumbers.VOICEMAIL:
		return "voicemail"
	default:
		return "unknown"
	}
}
