package vocab

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Match is one recognised token occurrence. Start and End are byte offsets.
type Match struct {
	Start int
	End   int
	Side  Side
	Entry Entry
}

// Text returns the matched spelling.
func (m Match) Text() string {
	if m.Side == GlyphSide {
		return m.Entry.Glyph
	}
	return m.Entry.Keyword
}

type candidate struct {
	text  string
	entry Entry
	// head/tail are set when the edge rune is a word rune and therefore needs a
	// non-word neighbour on that side.
	head bool
	tail bool
}

type matcher struct {
	byFirst map[rune][]candidate
}

func newMatcher(entries []Entry, side Side) *matcher {
	m := &matcher{byFirst: make(map[rune][]candidate, len(entries))}
	for _, e := range entries {
		text := e.Keyword
		if side == GlyphSide {
			text = e.Glyph
		}
		first, _ := utf8.DecodeRuneInString(text)
		last, _ := utf8.DecodeLastRuneInString(text)
		m.byFirst[first] = append(m.byFirst[first], candidate{
			text:  text,
			entry: e,
			head:  IsWordRune(first),
			tail:  IsWordRune(last),
		})
	}
	for r := range m.byFirst {
		list := m.byFirst[r]
		sort.Slice(list, func(i, j int) bool {
			li, lj := utf8.RuneCountInString(list[i].text), utf8.RuneCountInString(list[j].text)
			if li != lj {
				return li > lj
			}
			return list[i].text < list[j].text
		})
	}
	return m
}

// IsWordRune reports whether r can be part of an identifier.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// HasTokenAt reports whether tok occurs at byte offset i of text as a whole token.
func HasTokenAt(text string, i int, tok string) bool {
	if tok == "" || i < 0 || !strings.HasPrefix(text[i:], tok) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(tok)
	if IsWordRune(first) && i > 0 {
		prev, _ := utf8.DecodeLastRuneInString(text[:i])
		if IsWordRune(prev) {
			return false
		}
	}
	last, _ := utf8.DecodeLastRuneInString(tok)
	if IsWordRune(last) {
		next, _ := utf8.DecodeRuneInString(text[i+len(tok):])
		if IsWordRune(next) {
			return false
		}
	}
	return true
}

func (m *matcher) at(text string, i int, prev rune) (candidate, bool) {
	first, _ := utf8.DecodeRuneInString(text[i:])
	for _, c := range m.byFirst[first] {
		if !strings.HasPrefix(text[i:], c.text) {
			continue
		}
		if c.head && IsWordRune(prev) {
			continue
		}
		if c.tail {
			next, _ := utf8.DecodeRuneInString(text[i+len(c.text):])
			if IsWordRune(next) {
				continue
			}
		}
		return c, true
	}
	return candidate{}, false
}

// scan walks text left to right and reports every match, skipping string literals.
func (m *matcher) scan(text string, fn func(start int, c candidate)) {
	inString := false
	prev := rune(-1)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if inString {
			if r == '\\' && i+size < len(text) {
				esc, escSize := utf8.DecodeRuneInString(text[i+size:])
				prev = esc
				i += size + escSize
				continue
			}
			if r == '"' {
				inString = false
			}
			prev = r
			i += size
			continue
		}
		if r == '"' {
			inString = true
			prev = r
			i += size
			continue
		}
		if c, ok := m.at(text, i, prev); ok {
			fn(i, c)
			prev, _ = utf8.DecodeLastRuneInString(c.text)
			i += len(c.text)
			continue
		}
		prev = r
		i += size
	}
}

// Scan returns the occurrences of side's spellings in text.
func (v *Vocabulary) Scan(text string, side Side) []Match {
	var out []Match
	v.matcher(side).scan(text, func(start int, c candidate) {
		out = append(out, Match{Start: start, End: start + len(c.text), Side: side, Entry: c.entry})
	})
	return out
}

// Replace rewrites every whole-token occurrence of from-side spellings into the
// other side. Code outside string literals is NFC-normalised first so decomposed
// glyph input still matches.
func (v *Vocabulary) Replace(text string, from Side) string {
	text = composeCode(text)
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	v.matcher(from).scan(text, func(start int, c candidate) {
		b.WriteString(text[last:start])
		end := start + len(c.text)
		if from == GlyphSide {
			// A symbolic glyph may touch an identifier; the keyword must not.
			if prev, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 && IsWordRune(prev) {
				b.WriteByte(' ')
			}
			b.WriteString(c.entry.Keyword)
			if next, _ := utf8.DecodeRuneInString(text[end:]); end < len(text) && IsWordRune(next) {
				b.WriteByte(' ')
			}
		} else {
			b.WriteString(c.entry.Glyph)
		}
		last = end
	})
	if last == 0 {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// composeCode NFC-normalises text outside double-quoted literals.
func composeCode(text string) string {
	if norm.NFC.IsNormalString(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '"' {
			continue
		}
		b.WriteString(norm.NFC.String(text[last:i]))
		end := i + 1
		for end < len(text) && text[end] != '"' {
			if text[end] == '\\' {
				end++
			}
			end++
		}
		if end < len(text) {
			end++
		} else {
			end = len(text)
		}
		b.WriteString(text[i:end])
		last = end
		i = end - 1
	}
	b.WriteString(norm.NFC.String(text[last:]))
	return b.String()
}

// TokenAt returns the keyword or glyph covering byte offset off. A cursor right
// after a token counts as inside it. The longest spelling wins when both sides match.
func (v *Vocabulary) TokenAt(text string, off int) (Match, bool) {
	var best Match
	found := false
	for _, side := range []Side{KeywordSide, GlyphSide} {
		for _, m := range v.Scan(text, side) {
			if off < m.Start || off > m.End {
				continue
			}
			if !found || m.End-m.Start > best.End-best.Start {
				best = m
				found = true
			}
		}
	}
	return best, found
}
