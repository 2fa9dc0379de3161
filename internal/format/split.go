package format

import (
	"strings"

	"valkyrie/internal/vocab"
)

// splitStatements cuts code into fragments on ';'. A for header through its
// optional '{' is kept as one fragment.
func splitStatements(code string, sp spellings) []string {
	var out []string
	for code != "" {
		start, end, ok := findForHeader(code, sp)
		if !ok {
			out = append(out, splitSemicolons(code)...)
			break
		}
		out = append(out, splitSemicolons(code[:start])...)
		out = append(out, strings.TrimSpace(code[start:end]))
		code = code[end:]
	}
	return out
}

func splitSemicolons(code string) []string {
	var out []string
	last := 0
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	codeBytes(code, func(i int) bool {
		if code[i] == ';' {
			add(code[last:i])
			last = i + 1
		}
		return true
	})
	add(code[last:])
	return out
}

// findForHeader locates the first for keyword or glyph followed by a balanced
// parenthesised clause.
func findForHeader(code string, sp spellings) (start, end int, ok bool) {
	forms := sp.forms("for")
	codeBytes(code, func(i int) bool {
		for _, f := range forms {
			if !vocab.HasTokenAt(code, i, f) {
				continue
			}
			j := skipSpaces(code, i+len(f))
			if j >= len(code) || code[j] != '(' {
				continue
			}
			closing := matchParen(code, j)
			if closing < 0 {
				continue
			}
			end = closing + 1
			if k := skipSpaces(code, end); k < len(code) && code[k] == '{' {
				end = k + 1
			}
			start, ok = i, true
			return false
		}
		return true
	})
	return start, end, ok
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// matchParen returns the offset of the ')' closing the '(' at open, or -1.
func matchParen(code string, open int) int {
	depth := 0
	for i := open; i < len(code); i++ {
		switch code[i] {
		case '"':
			i = stringEnd(code, i) - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// braceSegments cuts a fragment after every '{' and before every '}'.
func braceSegments(fragment string) []string {
	var out []string
	last := 0
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	codeBytes(fragment, func(i int) bool {
		switch fragment[i] {
		case '{':
			add(fragment[last : i+1])
			last = i + 1
		case '}':
			add(fragment[last:i])
			last = i
		}
		return true
	})
	add(fragment[last:])
	return out
}
