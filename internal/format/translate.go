package format

import "valkyrie/internal/vocab"

// translate rewrites spellings in one code fragment according to opts.Direction.
func translate(fragment string, opts Options) string {
	switch opts.Direction {
	case ToKeywords:
		return opts.Vocabulary.Replace(fragment, vocab.GlyphSide)
	case ToGlyphs:
		return opts.Vocabulary.Replace(fragment, vocab.KeywordSide)
	default:
		return fragment
	}
}

// Translate rewrites every keyword or glyph in text without touching layout.
func Translate(text string, opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	return translate(text, opts), nil
}
