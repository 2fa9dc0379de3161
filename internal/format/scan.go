package format

import "valkyrie/internal/vocab"

// stringEnd returns the offset just past the string literal opening at text[i].
// Unterminated literals run to the end of text.
func stringEnd(text string, i int) int {
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(text)
}

// codeBytes calls fn for every byte offset outside string literals. Returning
// false stops the walk.
func codeBytes(text string, fn func(i int) bool) {
	for i := 0; i < len(text); i++ {
		if text[i] == '"' {
			i = stringEnd(text, i) - 1
			continue
		}
		if !fn(i) {
			return
		}
	}
}

// spellings maps every known keyword and glyph spelling to its keyword.
type spellings map[string]string

func newSpellings(v *vocab.Vocabulary) spellings {
	sp := make(spellings, len(vocab.Keywords)*3)
	for _, kw := range vocab.Keywords {
		sp[kw] = kw
	}
	vocabs := vocab.Builtins()
	if v != nil {
		vocabs = append([]*vocab.Vocabulary{v}, vocabs...)
	}
	for _, voc := range vocabs {
		for _, e := range voc.Entries() {
			if _, taken := sp[e.Glyph]; !taken {
				sp[e.Glyph] = e.Keyword
			}
		}
	}
	return sp
}

func (sp spellings) is(word, keyword string) bool {
	kw, ok := sp[word]
	return ok && kw == keyword
}

// forms lists every spelling of keyword.
func (sp spellings) forms(keyword string) []string {
	var out []string
	for s, kw := range sp {
		if kw == keyword {
			out = append(out, s)
		}
	}
	return out
}
