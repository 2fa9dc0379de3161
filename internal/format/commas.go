package format

import "sort"

type commaEdit struct {
	start int
	end   int
	data  string
}

// NormalizeCommas returns text with whitespace around commas normalized.
// Commas inside string literals are left alone.
//
// Rules:
//   - tabs/spaces before ',' are removed;
//   - a single space is inserted after ',' unless the next non-space character
//     is ')', another comma, or the end of the text.
func NormalizeCommas(text string) string {
	var edits []commaEdit
	codeBytes(text, func(i int) bool {
		if text[i] == ',' {
			addCommaEdit(&edits, text, i)
		}
		return true
	})
	if len(edits) == 0 {
		return text
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	for _, e := range edits {
		text = text[:e.start] + e.data + text[e.end:]
	}
	return text
}

func addCommaEdit(out *[]commaEdit, text string, at int) {
	i := at - 1
	for i >= 0 && (text[i] == ' ' || text[i] == '\t') {
		i--
	}
	left := i + 1

	j := at + 1
	for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
		j++
	}

	wantSpace := true
	if j >= len(text) {
		wantSpace = false
	} else {
		switch text[j] {
		case ')', '\n', '\r', ',':
			wantSpace = false
		}
	}

	repl := ","
	if wantSpace {
		repl = ", "
	}
	// Whitespace between two commas belongs to the later one.
	if n := len(*out); n > 0 && (*out)[n-1].end > left {
		(*out)[n-1].end = left
	}
	if text[left:j] == repl {
		return
	}
	*out = append(*out, commaEdit{start: left, end: j, data: repl})
}
