package canonical

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases and hyphenates", in: "Acme Widget Works", want: "acme-widget-works"},
		{name: "ampersand becomes and", in: "Johnson & Johnson", want: "johnson-and-johnson"},
		{name: "punctuation collapses to single hyphens", in: "A.B.C. -- Holdings", want: "a-b-c-holdings"},
		{name: "diacritics stripped", in: "Crédit Müller", want: "credit-muller"},
		{name: "leading and trailing junk trimmed", in: "  --Acme-- ", want: "acme"},
		{name: "digits survive", in: "21st Century", want: "21st-century"},
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "-.,-", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
