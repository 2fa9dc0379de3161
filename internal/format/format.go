package format

import "strings"

// Lines formats text and returns the emitted lines with terminators applied.
func Lines(text string, opts Options) ([]Line, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return formatLines(text, opts), nil
}

func formatLines(text string, opts Options) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	sp := newSpellings(opts.Vocabulary)
	var comments commentTracker
	ind := &indenter{sp: sp}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			ind.blank()
			continue
		}
		kind, continuation := comments.classify(line)
		if kind != KindCode {
			if continuation && strings.HasPrefix(line, "*") {
				line = " " + line
			}
			ind.emit(kind, line)
			continue
		}

		code, comment := comments.splitTrailing(line)
		last := -1
		for _, frag := range splitStatements(code, sp) {
			frag = translate(normalizeLine(frag, sp), opts)
			for _, seg := range braceSegments(frag) {
				last = ind.segment(seg, last < 0)
			}
		}
		switch {
		case comment == "":
		case last >= 0:
			ind.lines[last].Comment = comment
		case strings.HasPrefix(comment, "/*"):
			ind.emit(KindBlockComment, comment)
		default:
			ind.emit(KindLineComment, comment)
		}
	}

	insertTerminators(ind.lines, sp)
	return ind.lines
}

// String formats a whole document.
func String(text string, opts Options) (string, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return "", err
	}
	lines := formatLines(text, opts)
	return Render(lines, opts, strings.HasSuffix(text, "\n")), nil
}

// Source formats a whole document held in a byte slice.
func Source(src []byte, opts Options) ([]byte, error) {
	out, err := String(string(src), opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Render joins lines with indentation. A final newline is written only when
// trailingNewline is set and there is output.
func Render(lines []Line, opts Options, trailingNewline bool) string {
	w := NewWriter(opts)
	for i, l := range lines {
		if i > 0 {
			w.Newline()
		}
		w.WriteLine(l)
	}
	if trailingNewline && len(lines) > 0 {
		w.Newline()
	}
	return string(w.Bytes())
}
