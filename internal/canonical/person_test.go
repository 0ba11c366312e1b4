package canonical

import "testing"

func TestNormalizePerson_Components(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *struct {
			first, middle, nickname, last, suffix, title string
		}
	}{
		{
			name: "simple",
			in:   "John Smith",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "John", last: "Smith",
			},
		},
		{
			name: "middle and generational suffix",
			in:   "John A. Smith Jr.",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "John", middle: "A.", last: "Smith", suffix: "Jr.",
			},
		},
		{
			name: "2nd normalizes to Jr",
			in:   "John Smith 2nd",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "John", last: "Smith", suffix: "Jr.",
			},
		},
		{
			name: "last-first ordering",
			in:   "Smith, John A.",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "John", middle: "A.", last: "Smith",
			},
		},
		{
			name: "comma before suffix is not inversion",
			in:   "John Smith, Jr., CPA",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "John", last: "Smith", suffix: "Jr.",
			},
		},
		{
			name: "surname particles",
			in:   "Oscar de la Hoya",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "Oscar", last: "de la Hoya",
			},
		},
		{
			name: "nickname in quotes",
			in:   `William "Bill" Gates`,
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "William", nickname: "Bill", last: "Gates",
			},
		},
		{
			name: "honorific title",
			in:   "Dr. Jane Doe MD",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "Jane", last: "Doe", title: "Dr.",
			},
		},
		{
			name: "apostrophe and hyphen",
			in:   "mary o'brien-smith",
			want: &struct{ first, middle, nickname, last, suffix, title string }{
				first: "Mary", last: "O'Brien-Smith",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NormalizePerson(tt.in, "")
			if p == nil {
				t.Fatal("expected canonical person")
			}
			if p.First != tt.want.first {
				t.Errorf("first: got %q, want %q", p.First, tt.want.first)
			}
			if p.Middle != tt.want.middle {
				t.Errorf("middle: got %q, want %q", p.Middle, tt.want.middle)
			}
			if p.Nickname != tt.want.nickname {
				t.Errorf("nickname: got %q, want %q", p.Nickname, tt.want.nickname)
			}
			if p.Last != tt.want.last {
				t.Errorf("last: got %q, want %q", p.Last, tt.want.last)
			}
			if p.Suffix != tt.want.suffix {
				t.Errorf("suffix: got %q, want %q", p.Suffix, tt.want.suffix)
			}
			if p.Title != tt.want.title {
				t.Errorf("title: got %q, want %q", p.Title, tt.want.title)
			}
		})
	}
}

func TestNormalizePerson_Determinism(t *testing.T) {
	a := NormalizePerson("Smith, John A.", "")
	b := NormalizePerson("john a. smith", "")
	if a == nil || b == nil {
		t.Fatal("expected canonical persons")
	}
	if a.Hash != b.Hash {
		t.Errorf("equivalent mentions must share a hash: %q vs %q", a.Hash, b.Hash)
	}
}

func TestNormalizePerson_NoteDisambiguates(t *testing.T) {
	a := NormalizePerson("John Smith", "")
	b := NormalizePerson("John Smith", "director of Acme")
	if a == nil || b == nil {
		t.Fatal("expected canonical persons")
	}
	if a.Hash == b.Hash {
		t.Error("disambiguation note must enter the hash")
	}
}

func TestNormalizePerson_Absent(t *testing.T) {
	for _, in := range []string{"", "   ", "Smith", "Dr.", "John CPA"} {
		if p := NormalizePerson(in, ""); p != nil {
			t.Errorf("%q: expected absent, got %+v", in, p)
		}
	}
}
