package format

import "strings"

// insertTerminators appends ';' to every code line that needs one.
//
// A line is left alone when it ends with '{', '}' or ';', when it is a
// control header (if/while/for ending in ')', or a trailing else), or when
// the next code line opens with '{'.
func insertTerminators(lines []Line, sp spellings) {
	for i := range lines {
		if lines[i].Kind != KindCode || !needsTerminator(lines, i, sp) {
			continue
		}
		lines[i].Text += ";"
	}
}

func needsTerminator(lines []Line, i int, sp spellings) bool {
	text := lines[i].Text
	if text == "" {
		return false
	}
	switch text[len(text)-1] {
	case '{', '}', ';':
		return false
	}
	if isControlHeader(text, sp) {
		return false
	}
	for _, next := range lines[i+1:] {
		if next.Kind != KindCode {
			continue
		}
		return !strings.HasPrefix(next.Text, "{")
	}
	return true
}

func isControlHeader(text string, sp spellings) bool {
	words := strings.Fields(text)
	if sp.is(words[len(words)-1], "else") {
		return true
	}
	if !strings.HasSuffix(text, ")") {
		return false
	}
	for len(words) > 1 && (words[0] == "}" || sp.is(words[0], "else")) {
		words = words[1:]
	}
	head, _, _ := strings.Cut(words[0], "(")
	return sp.is(head, "if") || sp.is(head, "while") || sp.is(head, "for")
}
