package canonical

import (
	"regexp"
	"strings"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// rewriteRule is one ordered pattern→replacement step. The tables below are
// ordered slices, not maps: the pipeline's determinism depends on rules
// running in a fixed sequence.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// abbreviationRules collapse multi-token legal-entity abbreviations written
// with arbitrary dot/space spacing to one canonical token. Longer forms
// come first so "P.L.L.C." is not half-eaten by the "L.L.C." rule.
var abbreviationRules = []rewriteRule{
	{regexp.MustCompile(`(?i)\bp\.?\s*l\.?\s*l\.?\s*c\.?(\b|$)`), "PLLC"},
	{regexp.MustCompile(`(?i)\bl\.?\s*l\.?\s*c\.?(\b|$)`), "LLC"},
	{regexp.MustCompile(`(?i)\bl\.?\s*l\.?\s*p\.?(\b|$)`), "LLP"},
	{regexp.MustCompile(`(?i)\bl\.\s*p\.?(\b|$)`), "LP"},
	{regexp.MustCompile(`(?i)\bp\.\s*c\.?(\b|$)`), "PC"},
	{regexp.MustCompile(`(?i)\bn\.\s*a\.?(\b|$)`), "NA"},
	{regexp.MustCompile(`(?i)\bs\.\s*a\.?(\b|$)`), "SA"},
}

// strippableSuffixes are entity-type words removed from the end of a name,
// repeatedly, until none matches. Multi-word entries precede their
// substrings. Distinguishing descriptors (Holdings, Group, Technologies,
// International, Partners, Industries, ...) are deliberately not here:
// stripping them would merge distinct entities.
var strippableSuffixes = []string{
	"incorporated",
	"corporation",
	"company",
	"limited",
	"corp",
	"pllc",
	"inc",
	"ltd",
	"llc",
	"llp",
	"lp",
	"pc",
	"na",
	"sa",
	"co",
}

// strippablePhrases are literal boilerplate fragments removed from the end
// of a name during the same loop.
var strippablePhrases = []string{
	"and subsidiaries",
	"and affiliates",
	"et al",
}

// renameTable maps a post-stripping name (lower-cased) to the display name
// it is known under. These are literal historical/brand renames, applied
// after suffix stripping; running the rename first would miss "Apple Inc".
var renameTable = map[string]string{
	"apple":                   "Apple Computer",
	"facebook":                "Meta Platforms",
	"philip morris companies": "Altria",
}

// residualBoilerplate removes leftover filing noise anywhere in the name.
var residualBoilerplate = []rewriteRule{
	{regexp.MustCompile(`(?i)\(\s*a\s+\w+\s+(corporation|partnership|trust)\s*\)`), ""},
	{regexp.MustCompile(`(?i)\bd/b/a\b.*$`), ""},
	{regexp.MustCompile(`(?i)\bf/k/a\b.*$`), ""},
}

// terminalPunct is what gets trimmed off the ends between pipeline steps.
const terminalPunct = " \t.,;:'\"-&"

// NormalizeCompany canonicalizes a free-text company mention. It returns
// nil when the input is empty, whitespace-only, or nothing survives
// normalization; nil is "nothing to store", not an error.
//
// The steps run in a fixed order: punctuation/whitespace cleanup,
// abbreviation rewrite, looped suffix strip, rename, boilerplate removal,
// hash. The hash is only stable because the order is fixed.
func NormalizeCompany(raw string) *domain.Company {
	name := collapseWhitespace(raw)
	if name == "" {
		return nil
	}
	name = strings.Trim(name, terminalPunct)

	for _, rule := range abbreviationRules {
		name = rule.pattern.ReplaceAllString(name, rule.replacement)
	}

	name = stripEntitySuffixes(name)

	if display, ok := renameTable[strings.ToLower(name)]; ok {
		name = display
	}

	for _, rule := range residualBoilerplate {
		name = rule.pattern.ReplaceAllString(name, "")
	}

	name = collapseWhitespace(strings.Trim(collapseWhitespace(name), terminalPunct))
	if name == "" {
		return nil
	}

	return &domain.Company{
		Name: name,
		Hash: Slugify(name),
	}
}

// stripEntitySuffixes removes trailing entity-type words, looping so
// "X Corporation Incorporated" reduces to "X". It never strips the whole
// name away: a mention that is nothing but a suffix word stays as-is.
func stripEntitySuffixes(name string) string {
	for {
		trimmed := collapseWhitespace(strings.TrimRight(name, " \t.,;:"))
		lower := strings.ToLower(trimmed)

		cut := 0
		for _, phrase := range strippablePhrases {
			if strings.HasSuffix(lower, " "+phrase) {
				cut = len(phrase) + 1
				break
			}
		}
		if cut == 0 {
			for _, suffix := range strippableSuffixes {
				if strings.HasSuffix(lower, " "+suffix) {
					cut = len(suffix) + 1
					break
				}
			}
		}
		if cut == 0 {
			return trimmed
		}
		name = trimmed[:len(trimmed)-cut]
	}
}
