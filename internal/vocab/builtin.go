package vocab

import "fmt"

const (
	// RuneName names the symbolic vocabulary.
	RuneName = "rune"
	// RunicName names the Elder Futhark vocabulary.
	RunicName = "runic"
)

var runeEntries = []Entry{
	{Keyword: "var", Glyph: "𖤍"},
	{Keyword: "fun", Glyph: "♅"},
	{Keyword: "print", Glyph: "♅♅"},
	{Keyword: "if", Glyph: "↟↟"},
	{Keyword: "else", Glyph: "↟↡"},
	{Keyword: "while", Glyph: "↟↠"},
	{Keyword: "for", Glyph: "𒌐"},
	{Keyword: "return", Glyph: "↡"},
	{Keyword: "and", Glyph: "↠↠"},
	{Keyword: "class", Glyph: "🕈"},
	{Keyword: "or", Glyph: "↞↞"},
	{Keyword: "super", Glyph: "🕈↟"},
	{Keyword: "this", Glyph: "🕈↡"},
}

var runicEntries = []Entry{
	{Keyword: "var", Glyph: "ᛡᚨᛃ"},
	{Keyword: "fun", Glyph: "ᚠᚢᚾ"},
	{Keyword: "print", Glyph: "ᛩᛃᛁᚾᛄ"},
	{Keyword: "if", Glyph: "ᛁᚠ"},
	{Keyword: "else", Glyph: "ᛅᛐᛋᛅ"},
	{Keyword: "while", Glyph: "ᚳᚺᛁᛐᛅ"},
	{Keyword: "for", Glyph: "ᚠᛜᛃ"},
	{Keyword: "return", Glyph: "ᛃᛅᛄᚢᛃᚾ"},
	{Keyword: "and", Glyph: "ᚨᚾᚦ"},
	{Keyword: "class", Glyph: "ᚲᛐᚨᛋᛋ"},
	{Keyword: "or", Glyph: "ᛜᛃ"},
	{Keyword: "super", Glyph: "ᛋᚢᛩᛅᛃ"},
	{Keyword: "this", Glyph: "ᛄᚺᛁᛋ"},
}

var (
	runeVocab  = mustNew(RuneName, runeEntries)
	runicVocab = mustNew(RunicName, runicEntries)
)

func mustNew(name string, entries []Entry) *Vocabulary {
	v, err := New(name, entries)
	if err != nil {
		panic(fmt.Sprintf("vocab: built-in table: %v", err))
	}
	return v
}

// Rune returns the symbolic vocabulary.
func Rune() *Vocabulary { return runeVocab }

// Runic returns the Elder Futhark vocabulary.
func Runic() *Vocabulary { return runicVocab }

// Builtins returns the built-in vocabularies in a fixed order.
func Builtins() []*Vocabulary {
	return []*Vocabulary{runeVocab, runicVocab}
}
