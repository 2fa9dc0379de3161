package format

import "strings"

// Line is one emitted output line.
type Line struct {
	Text    string
	Indent  int
	Kind    LineKind
	Comment string
}

// Full returns the line text with its trailing comment re-attached.
func (l Line) Full() string {
	switch {
	case l.Comment == "":
		return l.Text
	case l.Text == "":
		return l.Comment
	default:
		return l.Text + " " + l.Comment
	}
}

// indenter tracks brace depth and collects emitted lines.
type indenter struct {
	sp           spellings
	level        int
	lines        []Line
	pendingBlank bool
}

func (e *indenter) blank() {
	if len(e.lines) > 0 {
		e.pendingBlank = true
	}
}

func (e *indenter) emit(kind LineKind, text string) int {
	if e.pendingBlank {
		e.lines = append(e.lines, Line{Kind: KindBlank})
		e.pendingBlank = false
	}
	e.lines = append(e.lines, Line{Text: text, Indent: e.level, Kind: kind})
	return len(e.lines) - 1
}

// segment emits one brace segment. leading is set for the first segment of a
// source line, which is the only place a lone '{' may be pulled up.
func (e *indenter) segment(text string, leading bool) int {
	if leading && text == "{" {
		if idx, ok := e.joinable(); ok {
			e.lines[idx].Text += " {"
			e.level++
			return idx
		}
	}
	if strings.HasPrefix(text, "}") && e.level > 0 {
		e.level--
	}
	idx := e.emit(KindCode, text)
	if strings.HasSuffix(text, "{") {
		e.level++
	}
	return idx
}

// joinable reports whether the previous line is a header waiting for its '{'.
func (e *indenter) joinable() (int, bool) {
	if e.pendingBlank || len(e.lines) == 0 {
		return 0, false
	}
	idx := len(e.lines) - 1
	prev := e.lines[idx]
	if prev.Kind != KindCode || prev.Comment != "" || prev.Indent != e.level {
		return 0, false
	}
	if strings.HasSuffix(prev.Text, ")") {
		return idx, true
	}
	words := strings.Fields(prev.Text)
	if e.sp.is(words[len(words)-1], "else") || e.sp.is(words[0], "class") {
		return idx, true
	}
	return 0, false
}
