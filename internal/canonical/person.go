package canonical

import (
	"regexp"
	"strings"

	"github.com/filingworks/identity-core/internal/core/domain"
)

// honorifics are leading titles peeled off before name splitting. The first
// one found is kept as the person's title.
var honorifics = map[string]string{
	"mr":   "Mr.",
	"mrs":  "Mrs.",
	"ms":   "Ms.",
	"miss": "Miss",
	"dr":   "Dr.",
	"prof": "Prof.",
	"hon":  "Hon.",
	"rev":  "Rev.",
	"sir":  "Sir",
}

// credentials are trailing professional designations dropped from the name.
var credentials = map[string]bool{
	"md":  true,
	"phd": true,
	"esq": true,
	"cpa": true,
	"cfa": true,
	"jd":  true,
	"mba": true,
	"dds": true,
	"rn":  true,
	"pe":  true,
}

// generational normalizes generational suffixes to one spelling each.
var generational = map[string]string{
	"jr":     "Jr.",
	"junior": "Jr.",
	"2nd":    "Jr.",
	"sr":     "Sr.",
	"senior": "Sr.",
	"ii":     "II",
	"iii":    "III",
	"3rd":    "III",
	"iv":     "IV",
	"4th":    "IV",
	"v":      "V",
	"5th":    "V",
}

// particles are surname prefixes that stay attached to the last name
// ("Oscar de la Hoya" → last name "de la Hoya").
var particles = map[string]bool{
	"van":   true,
	"von":   true,
	"de":    true,
	"del":   true,
	"della": true,
	"di":    true,
	"da":    true,
	"la":    true,
	"le":    true,
	"den":   true,
	"der":   true,
	"ter":   true,
	"st":    true,
	"mac":   false, // fused, never freestanding
}

// nicknamePattern matches a quoted or parenthesized nickname anywhere in
// the mention: John "Jack" Kennedy, William (Bill) Gates.
var nicknamePattern = regexp.MustCompile(`["“”']([^"“”']+)["“”']|\(([^)]+)\)`)

// NormalizePerson canonicalizes a free-text person mention. The note is an
// optional disambiguation string carried into the hash so two same-named
// individuals stay distinct. Returns nil when a first and last name cannot
// both be determined.
func NormalizePerson(raw, note string) *domain.Person {
	name := collapseWhitespace(raw)
	if name == "" {
		return nil
	}

	var nickname string
	if m := nicknamePattern.FindStringSubmatch(name); m != nil {
		if m[1] != "" {
			nickname = m[1]
		} else {
			nickname = m[2]
		}
		name = collapseWhitespace(nicknamePattern.ReplaceAllString(name, " "))
	}

	name = reorderLastFirst(name)

	tokens := strings.Fields(name)

	// Leading honorifics.
	title := ""
	for len(tokens) > 0 {
		t, ok := honorifics[bareToken(tokens[0])]
		if !ok {
			break
		}
		if title == "" {
			title = t
		}
		tokens = tokens[1:]
	}

	// Trailing credentials and generational suffix, in any order.
	suffix := ""
	for len(tokens) > 0 {
		last := bareToken(tokens[len(tokens)-1])
		if credentials[last] {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		if g, ok := generational[last]; ok && len(tokens) > 2 {
			if suffix == "" {
				suffix = g
			}
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}

	if len(tokens) < 2 {
		return nil
	}

	// The last name starts at the final token and absorbs preceding
	// particles.
	start := len(tokens) - 1
	for start > 1 && particles[strings.ToLower(tokens[start-1])] {
		start--
	}
	last := strings.Join(tokens[start:], " ")
	first := tokens[0]
	middle := strings.Join(tokens[1:start], " ")

	p := &domain.Person{
		First:    nameCase(first),
		Middle:   nameCase(middle),
		Nickname: nameCase(nickname),
		Last:     nameCase(last),
		Suffix:   suffix,
		Title:    title,
		Note:     collapseWhitespace(note),
	}
	p.Hash = personHash(p)
	return p
}

// personHash joins the non-empty ordered components with separators and
// slugs the result.
func personHash(p *domain.Person) string {
	parts := make([]string, 0, 6)
	for _, part := range []string{p.First, p.Middle, p.Nickname, p.Last, p.Suffix, p.Note} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return Slugify(strings.Join(parts, " "))
}

// reorderLastFirst rewrites "Last, First Middle" to "First Middle Last".
// A comma followed only by a suffix or credential ("John Smith, Jr., CPA")
// is attribution, not inversion, and is flattened in place.
func reorderLastFirst(name string) string {
	idx := strings.Index(name, ",")
	if idx < 0 {
		return name
	}

	head := strings.TrimSpace(name[:idx])
	tail := strings.TrimSpace(strings.ReplaceAll(name[idx+1:], ",", " "))
	if head == "" || tail == "" {
		return collapseWhitespace(strings.ReplaceAll(name, ",", " "))
	}

	rest := strings.Fields(tail)
	b := bareToken(rest[0])
	if _, isGen := generational[b]; isGen || credentials[b] {
		return collapseWhitespace(head + " " + tail)
	}
	return collapseWhitespace(tail + " " + head)
}

// bareToken lowercases a token and drops surrounding punctuation so "Jr.,"
// and "jr" compare equal.
func bareToken(t string) string {
	return strings.Trim(strings.ToLower(t), ".,;:")
}

// nameCase capitalizes each hyphen- or apostrophe-separated segment,
// leaving surname particles lower-case.
func nameCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if particles[w] && i < len(words)-1 {
			continue
		}
		words[i] = capitalizeSegments(w)
	}
	return strings.Join(words, " ")
}

func capitalizeSegments(w string) string {
	var b strings.Builder
	upper := true
	for _, r := range w {
		if upper && r >= 'a' && r <= 'z' {
			b.WriteRune(r - ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
		upper = r == '-' || r == '\''
	}
	return b.String()
}
