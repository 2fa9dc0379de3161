package format

import "strings"

type pieceKind uint8

const (
	pieceWord pieceKind = iota
	pieceString
	pieceSpace
	piecePunct
)

type piece struct {
	kind pieceKind
	text string
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isPunctByte(c byte) bool {
	return strings.IndexByte("(){};", c) >= 0
}

func splitPieces(line string) []piece {
	var out []piece
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == '"':
			end := stringEnd(line, i)
			out = append(out, piece{kind: pieceString, text: line[i:end]})
			i = end
		case isSpaceByte(c):
			j := i
			for j < len(line) && isSpaceByte(line[j]) {
				j++
			}
			out = append(out, piece{kind: pieceSpace, text: line[i:j]})
			i = j
		case isPunctByte(c):
			out = append(out, piece{kind: piecePunct, text: line[i : i+1]})
			i++
		default:
			j := i
			for j < len(line) && line[j] != '"' && !isSpaceByte(line[j]) && !isPunctByte(line[j]) {
				j++
			}
			out = append(out, piece{kind: pieceWord, text: line[i:j]})
			i = j
		}
	}
	return out
}

// normalizeLine collapses whitespace and fixes spacing around brackets,
// semicolons and commas. String literals are copied unchanged.
//
// Rules:
//   - '{' gets one space before it; '}' and '{' are followed by a space;
//   - no space after '(' or before ')' and ';';
//   - a keyword or glyph is separated from a following '(' by one space;
//     any other space before '(' is kept;
//   - ';' is followed by one space when more text follows.
func normalizeLine(line string, sp spellings) string {
	var b strings.Builder
	b.Grow(len(line))
	pending, force := false, false
	prevWord := ""
	last := func() byte {
		s := b.String()
		if s == "" {
			return 0
		}
		return s[len(s)-1]
	}
	space := func() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
	}
	for _, p := range splitPieces(line) {
		switch p.kind {
		case pieceSpace:
			pending = true
			continue
		case piecePunct:
			switch p.text[0] {
			case '(':
				if _, kw := sp[prevWord]; (kw || pending || force) && last() != '(' {
					space()
				}
			case '{':
				if last() != '(' {
					space()
				}
			case '}':
				space()
			}
			b.WriteString(p.text)
			force = p.text != "(" && p.text != ")"
			prevWord = ""
		default:
			if (pending || force) && last() != '(' {
				space()
			}
			b.WriteString(p.text)
			force = false
			prevWord = ""
			if p.kind == pieceWord {
				prevWord = p.text
			}
		}
		pending = false
	}
	return NormalizeCommas(b.String())
}
