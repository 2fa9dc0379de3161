package vocab

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func entriesWith(mut func([]Entry) []Entry) []Entry {
	base := make([]Entry, len(runeEntries))
	copy(base, runeEntries)
	return mut(base)
}

func TestNew_RejectsBadTables(t *testing.T) {
	cases := []struct {
		name    string
		entries []Entry
		reason  string
	}{
		{
			name:    "missing keyword",
			entries: entriesWith(func(e []Entry) []Entry { return e[1:] }),
			reason:  "missing keywords: var",
		},
		{
			name: "unknown keyword",
			entries: entriesWith(func(e []Entry) []Entry {
				return append(e, Entry{Keyword: "let", Glyph: "⚑"})
			}),
			reason: `unknown keyword "let"`,
		},
		{
			name: "duplicate keyword",
			entries: entriesWith(func(e []Entry) []Entry {
				return append(e, Entry{Keyword: "var", Glyph: "⚑"})
			}),
			reason: `keyword "var" mapped twice`,
		},
		{
			name: "duplicate glyph",
			entries: entriesWith(func(e []Entry) []Entry {
				e[1].Glyph = e[0].Glyph
				return e
			}),
			reason: "shared by",
		},
		{
			name: "glyph is keyword",
			entries: entriesWith(func(e []Entry) []Entry {
				e[0].Glyph = "while"
				return e
			}),
			reason: "is itself a keyword",
		},
		{
			name: "reserved rune",
			entries: entriesWith(func(e []Entry) []Entry {
				e[0].Glyph = "𖤍;"
				return e
			}),
			reason: "reserved character",
		},
		{
			name: "empty glyph",
			entries: entriesWith(func(e []Entry) []Entry {
				e[0].Glyph = "  "
				return e
			}),
			reason: "empty glyph",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("custom", tc.entries)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("New() error = %v, want *ConfigError", err)
			}
			if cfgErr.Vocabulary != "custom" {
				t.Fatalf("ConfigError.Vocabulary = %q, want custom", cfgErr.Vocabulary)
			}
			if !strings.Contains(cfgErr.Reason, tc.reason) {
				t.Fatalf("ConfigError.Reason = %q, want it to contain %q", cfgErr.Reason, tc.reason)
			}
		})
	}
}

func TestNew_MissingName(t *testing.T) {
	if _, err := New(" ", runeEntries); err == nil {
		t.Fatalf("New with blank name succeeded")
	}
}

func TestBuiltins_Bijective(t *testing.T) {
	for _, v := range Builtins() {
		if got := len(v.Entries()); got != len(Keywords) {
			t.Fatalf("%s: %d entries, want %d", v.Name(), got, len(Keywords))
		}
		for _, kw := range Keywords {
			glyph, ok := v.Glyph(kw)
			if !ok {
				t.Fatalf("%s: no glyph for %q", v.Name(), kw)
			}
			back, ok := v.Keyword(glyph)
			if !ok || back != kw {
				t.Fatalf("%s: Keyword(%q) = %q, %v; want %q", v.Name(), glyph, back, ok, kw)
			}
		}
	}
}

func TestRune_Overlaps(t *testing.T) {
	want := []Overlap{
		{Short: "♅", Long: "♅♅"},
		{Short: "🕈", Long: "🕈↟"},
		{Short: "🕈", Long: "🕈↡"},
	}
	if diff := cmp.Diff(want, Rune().Overlaps()); diff != "" {
		t.Fatalf("rune overlaps mismatch (-want +got):\n%s", diff)
	}
	if got := Runic().Overlaps(); len(got) != 0 {
		t.Fatalf("runic overlaps = %v, want none", got)
	}
}

func TestEntry_BothSides(t *testing.T) {
	v := Rune()
	e, side, ok := v.Entry("♅♅")
	if !ok || side != GlyphSide || e.Keyword != "print" {
		t.Fatalf("Entry(♅♅) = %+v, %v, %v", e, side, ok)
	}
	if e.Description != "Print statement" {
		t.Fatalf("print description = %q", e.Description)
	}
	e, side, ok = v.Entry("class")
	if !ok || side != KeywordSide || e.Glyph != "🕈" {
		t.Fatalf("Entry(class) = %+v, %v, %v", e, side, ok)
	}
	if _, _, ok := v.Entry("Class"); ok {
		t.Fatalf("keywords must be case-sensitive")
	}
	if diff := cmp.Diff([]string{"while", "↟↠"}, v.Forms("while")); diff != "" {
		t.Fatalf("Forms(while) mismatch (-want +got):\n%s", diff)
	}
}

func TestFingerprint_DiffersPerVocabulary(t *testing.T) {
	if Rune().Fingerprint() == Runic().Fingerprint() {
		t.Fatalf("rune and runic fingerprints collide")
	}
}
