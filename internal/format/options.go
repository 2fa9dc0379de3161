package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"valkyrie/internal/vocab"
)

// ErrNoVocabulary is returned when translation is requested without a vocabulary.
var ErrNoVocabulary = errors.New("format: translation requested without a vocabulary")

// Revision changes whenever formatter output for the same input may change.
const Revision = "1"

// Direction selects how keyword and glyph spellings are rewritten.
type Direction uint8

const (
	// Keep leaves spellings as written.
	Keep Direction = iota
	// ToKeywords rewrites glyphs into ASCII keywords.
	ToKeywords
	// ToGlyphs rewrites keywords into glyphs.
	ToGlyphs
)

func (d Direction) String() string {
	switch d {
	case ToKeywords:
		return "keywords"
	case ToGlyphs:
		return "glyphs"
	default:
		return "keep"
	}
}

// ParseDirection accepts the names printed by Direction.String plus a few aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "none":
		return Keep, nil
	case "keywords", "keyword", "ascii":
		return ToKeywords, nil
	case "glyphs", "glyph", "runes":
		return ToGlyphs, nil
	}
	return Keep, fmt.Errorf("unknown direction %q (want keywords, glyphs or keep)", s)
}

type Options struct {
	IndentWidth int
	UseTabs     bool
	Direction   Direction
	Vocabulary  *vocab.Vocabulary
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

func (o Options) validate() error {
	if o.Direction != Keep && o.Vocabulary == nil {
		return ErrNoVocabulary
	}
	return nil
}

// Fingerprint identifies every option that influences output.
func (o Options) Fingerprint() string {
	o = o.withDefaults()
	var b strings.Builder
	b.WriteString("r")
	b.WriteString(Revision)
	b.WriteString(";w")
	b.WriteString(strconv.Itoa(o.IndentWidth))
	if o.UseTabs {
		b.WriteString(";tabs")
	}
	b.WriteString(";")
	b.WriteString(o.Direction.String())
	if o.Vocabulary != nil {
		b.WriteString(";")
		b.WriteString(o.Vocabulary.Fingerprint())
	}
	return b.String()
}
