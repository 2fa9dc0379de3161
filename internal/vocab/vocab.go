package vocab

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Side selects one half of a mapping table.
type Side uint8

const (
	// KeywordSide is the ASCII keyword spelling.
	KeywordSide Side = iota
	// GlyphSide is the symbolic spelling.
	GlyphSide
)

func (s Side) String() string {
	if s == GlyphSide {
		return "glyph"
	}
	return "keyword"
}

// Entry pairs a keyword with its glyph sequence.
type Entry struct {
	Keyword     string
	Glyph       string
	Description string
}

// Overlap records a glyph that is a strict prefix of another glyph of the same vocabulary.
type Overlap struct {
	Short string
	Long  string
}

// ConfigError reports an invalid mapping table.
type ConfigError struct {
	Vocabulary string
	Reason     string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vocabulary %q: %s", e.Vocabulary, e.Reason)
}

// reservedGlyphRunes would be split, spaced or quoted by the formatter.
const reservedGlyphRunes = `(){};,"`

// Vocabulary is one complete glyph set paired with the shared keyword set.
type Vocabulary struct {
	name      string
	entries   []Entry
	byKeyword map[string]int
	byGlyph   map[string]int
	overlaps  []Overlap
	keywords  *matcher
	glyphs    *matcher
}

// New validates entries and builds a vocabulary. The result is immutable and safe
// for concurrent use.
func New(name string, entries []Entry) (*Vocabulary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ConfigError{Vocabulary: name, Reason: "missing name"}
	}
	byKeyword := make(map[string]Entry, len(entries))
	byGlyph := make(map[string]string, len(entries))
	for _, e := range entries {
		e.Keyword = strings.TrimSpace(e.Keyword)
		e.Glyph = norm.NFC.String(strings.TrimSpace(e.Glyph))
		if !IsKeyword(e.Keyword) {
			return nil, &ConfigError{Vocabulary: name, Reason: fmt.Sprintf("unknown keyword %q", e.Keyword)}
		}
		if _, dup := byKeyword[e.Keyword]; dup {
			return nil, &ConfigError{Vocabulary: name, Reason: fmt.Sprintf("keyword %q mapped twice", e.Keyword)}
		}
		if err := checkGlyph(e.Glyph); err != "" {
			return nil, &ConfigError{Vocabulary: name, Reason: fmt.Sprintf("keyword %q: %s", e.Keyword, err)}
		}
		if prev, dup := byGlyph[e.Glyph]; dup {
			return nil, &ConfigError{Vocabulary: name, Reason: fmt.Sprintf("glyph %q shared by %q and %q", e.Glyph, prev, e.Keyword)}
		}
		if e.Description == "" {
			e.Description = DefaultDescription(e.Keyword)
		}
		byKeyword[e.Keyword] = e
		byGlyph[e.Glyph] = e.Keyword
	}
	var missing []string
	for _, kw := range Keywords {
		if _, ok := byKeyword[kw]; !ok {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Vocabulary: name, Reason: "missing keywords: " + strings.Join(missing, ", ")}
	}

	v := &Vocabulary{
		name:      name,
		entries:   make([]Entry, 0, len(Keywords)),
		byKeyword: make(map[string]int, len(Keywords)),
		byGlyph:   make(map[string]int, len(Keywords)),
	}
	for i, kw := range Keywords {
		e := byKeyword[kw]
		v.entries = append(v.entries, e)
		v.byKeyword[e.Keyword] = i
		v.byGlyph[e.Glyph] = i
	}
	v.overlaps = findOverlaps(v.entries)
	v.keywords = newMatcher(v.entries, KeywordSide)
	v.glyphs = newMatcher(v.entries, GlyphSide)
	return v, nil
}

func checkGlyph(glyph string) string {
	if glyph == "" {
		return "empty glyph"
	}
	if IsKeyword(glyph) {
		return fmt.Sprintf("glyph %q is itself a keyword", glyph)
	}
	for _, r := range glyph {
		if unicode.IsSpace(r) || strings.ContainsRune(reservedGlyphRunes, r) {
			return fmt.Sprintf("glyph %q contains reserved character %q", glyph, r)
		}
	}
	return ""
}

func findOverlaps(entries []Entry) []Overlap {
	var out []Overlap
	for _, short := range entries {
		for _, long := range entries {
			if short.Glyph != long.Glyph && strings.HasPrefix(long.Glyph, short.Glyph) {
				out = append(out, Overlap{Short: short.Glyph, Long: long.Glyph})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Short != out[j].Short {
			return out[i].Short < out[j].Short
		}
		return out[i].Long < out[j].Long
	})
	return out
}

// Name returns the vocabulary name.
func (v *Vocabulary) Name() string { return v.name }

// Entries returns the table in canonical keyword order.
func (v *Vocabulary) Entries() []Entry {
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Overlaps lists glyph pairs where one is a prefix of the other.
func (v *Vocabulary) Overlaps() []Overlap {
	out := make([]Overlap, len(v.overlaps))
	copy(out, v.overlaps)
	return out
}

// Glyph returns the glyph sequence mapped to keyword.
func (v *Vocabulary) Glyph(keyword string) (string, bool) {
	i, ok := v.byKeyword[keyword]
	if !ok {
		return "", false
	}
	return v.entries[i].Glyph, true
}

// Keyword returns the keyword mapped to glyph.
func (v *Vocabulary) Keyword(glyph string) (string, bool) {
	i, ok := v.byGlyph[norm.NFC.String(glyph)]
	if !ok {
		return "", false
	}
	return v.entries[i].Keyword, true
}

// Entry looks token up on either side.
func (v *Vocabulary) Entry(token string) (Entry, Side, bool) {
	if i, ok := v.byKeyword[token]; ok {
		return v.entries[i], KeywordSide, true
	}
	if i, ok := v.byGlyph[norm.NFC.String(token)]; ok {
		return v.entries[i], GlyphSide, true
	}
	return Entry{}, KeywordSide, false
}

// Forms returns the keyword followed by its glyph.
func (v *Vocabulary) Forms(keyword string) []string {
	glyph, ok := v.Glyph(keyword)
	if !ok {
		return nil
	}
	return []string{keyword, glyph}
}

// Fingerprint is a stable digest input describing the table contents.
func (v *Vocabulary) Fingerprint() string {
	var b strings.Builder
	b.WriteString(v.name)
	for _, e := range v.entries {
		b.WriteByte('|')
		b.WriteString(e.Keyword)
		b.WriteByte('=')
		b.WriteString(e.Glyph)
	}
	return b.String()
}

func (v *Vocabulary) matcher(side Side) *matcher {
	if side == GlyphSide {
		return v.glyphs
	}
	return v.keywords
}
