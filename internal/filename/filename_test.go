package filename

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/apolinex/nameit/internal/publication"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name string
		pub  publication.Publication
		want string
	}{
		{
			name: "single author",
			pub: publication.Publication{
				Authors:   []publication.FamilyName{"Smith"},
				Year:      2020,
				Title:     "Deep Learning for X",
				Venue:     "Journal of AI",
				Publisher: "Springer",
			},
			want: "Smith (2020) Deep Learning for X @ Journal of AI - Springer.pdf",
		},
		{
			name: "three authors collapse to et al",
			pub: publication.Publication{
				Authors:   []publication.FamilyName{"Smith", "Johnson", "Lee"},
				Year:      2021,
				Title:     "A Survey",
				Venue:     "Journal of AI",
				Publisher: "Elsevier",
			},
			want: "Smith et al. (2021) A Survey @ Journal of AI - Elsevier.pdf",
		},
		{
			name: "two authors",
			pub: publication.Publication{
				Authors:   []publication.FamilyName{"Smith", "Jones"},
				Year:      2019,
				Title:     "On Things",
				Venue:     "Nature",
				Publisher: "Springer Nature",
			},
			want: "Smith and Jones (2019) On Things @ Nature - Springer Nature.pdf",
		},
		{
			name: "unsafe characters sanitized",
			pub: publication.Publication{
				Authors:   []publication.FamilyName{"Smith"},
				Year:      2020,
				Title:     "Q: what/why?",
				Venue:     "J. of A/B",
				Publisher: "ACM",
			},
			want: "Smith (2020) Q_ what_why_ @ J. of A_B - ACM.pdf",
		},
		{
			name: "sentinel venue and publisher",
			pub: publication.Publication{
				Authors:   []publication.FamilyName{"Smith"},
				Year:      2020,
				Title:     "A Title",
				Venue:     publication.UnknownVenue,
				Publisher: publication.UnknownPublisher,
			},
			want: "Smith (2020) A Title @ Unknown publication - Unknown publisher.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Synthesize(&tt.pub)
			if err != nil {
				t.Fatalf("Synthesize() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Synthesize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesizeEmptyAuthors(t *testing.T) {
	_, err := Synthesize(&publication.Publication{Year: 2020, Title: "T"})
	if !errors.Is(err, publication.ErrEmptyAuthorList) {
		t.Errorf("Synthesize() error = %v, want ErrEmptyAuthorList", err)
	}
}

func TestSynthesizeLengthBound(t *testing.T) {
	for _, titleLen := range []int{0, 100, 180, 200, 255, 1000, 10000} {
		pub := publication.Publication{
			Authors:   []publication.FamilyName{"Smith", "Johnson", "Lee"},
			Year:      2020,
			Title:     strings.Repeat("x", titleLen),
			Venue:     "Journal of AI",
			Publisher: "Springer",
		}
		name, err := Synthesize(&pub)
		if err != nil {
			t.Fatalf("Synthesize() error: %v", err)
		}
		if len(name) > MaxLength {
			t.Errorf("title length %d: len(name) = %d, exceeds %d", titleLen, len(name), MaxLength)
		}
		if titleLen > MaxLength && !strings.Contains(name, Ellipsis) {
			t.Errorf("title length %d: truncated name lacks ellipsis: %q", titleLen, name)
		}
	}
}

func TestSynthesizeLengthBoundLongFields(t *testing.T) {
	long := strings.Repeat("x", 300)

	base := publication.Publication{
		Authors:   []publication.FamilyName{"Smith"},
		Year:      2020,
		Title:     "Short",
		Venue:     "Journal of AI",
		Publisher: "Springer",
	}

	tests := []struct {
		name   string
		mutate func(*publication.Publication)
	}{
		{name: "long venue", mutate: func(p *publication.Publication) { p.Venue = long }},
		{name: "long publisher", mutate: func(p *publication.Publication) { p.Publisher = long }},
		{name: "long author", mutate: func(p *publication.Publication) {
			p.Authors = []publication.FamilyName{publication.FamilyName(strings.Repeat("X", 300))}
		}},
		{name: "every field long", mutate: func(p *publication.Publication) {
			p.Authors = []publication.FamilyName{publication.FamilyName(strings.Repeat("X", 300))}
			p.Title = long
			p.Venue = long
			p.Publisher = long
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := base
			tt.mutate(&pub)
			name, err := Synthesize(&pub)
			if err != nil {
				t.Fatalf("Synthesize() error: %v", err)
			}
			if len(name) > MaxLength {
				t.Errorf("len(name) = %d, exceeds %d", len(name), MaxLength)
			}
			if !strings.HasSuffix(name, ".pdf") {
				t.Errorf("clamped name lost its extension: %q", name)
			}
		})
	}
}

func TestSynthesizeTruncationKeepsRunesIntact(t *testing.T) {
	pub := publication.Publication{
		Authors:   []publication.FamilyName{"Müller"},
		Year:      2020,
		Title:     strings.Repeat("ü", 400),
		Venue:     "Zeitschrift für Dinge",
		Publisher: "Springer",
	}
	name, err := Synthesize(&pub)
	if err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}
	if len(name) > MaxLength {
		t.Errorf("len(name) = %d, exceeds %d", len(name), MaxLength)
	}
	if !utf8.ValidString(name) {
		t.Errorf("truncation split a UTF-8 sequence: %q", name)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "short string unchanged", input: "abc", max: 10, want: "abc"},
		{name: "exact length unchanged", input: "abc", max: 3, want: "abc"},
		{name: "cut at byte limit", input: "abcdef", max: 4, want: "abcd"},
		{name: "backs off to rune boundary", input: "aüb", max: 2, want: "a"},
		{name: "zero budget", input: "abc", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}
