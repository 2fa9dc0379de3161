package lsp

import (
	"testing"

	"valkyrie/internal/vocab"
)

func findCompletion(items []completionItem, label string) *completionItem {
	for i := range items {
		if items[i].Label == label {
			return &items[i]
		}
	}
	return nil
}

func findCompletionKind(items []completionItem, label string, kind int) *completionItem {
	for i := range items {
		if items[i].Label == label && items[i].Kind == kind {
			return &items[i]
		}
	}
	return nil
}

func TestCompletionKeywordsAndGlyphs(t *testing.T) {
	items := buildCompletions(vocab.Default())

	kw := findCompletionKind(items, "print", completionKindKeyword)
	if kw == nil {
		t.Fatal("missing keyword completion for print")
	}
	if kw.Detail != "Keyword: print" {
		t.Fatalf("keyword detail = %q", kw.Detail)
	}
	if kw.Documentation == nil || kw.Documentation.Value != "Rune: ♅♅\n\nRunic: ᛩᛃᛁᚾᛄ" {
		t.Fatalf("keyword documentation = %+v", kw.Documentation)
	}

	glyph := findCompletion(items, "♅♅")
	if glyph == nil {
		t.Fatal("missing glyph completion for ♅♅")
	}
	if glyph.Detail != "Rune: ♅♅" || glyph.Documentation.Value != "Keyword: print" {
		t.Fatalf("glyph item = %+v", glyph)
	}
	if runic := findCompletion(items, "ᚠᛜᛃ"); runic == nil || runic.Detail != "Runic: ᚠᛜᛃ" {
		t.Fatalf("runic glyph item = %+v", runic)
	}

	glyphs := 0
	for _, it := range items {
		if it.Kind == completionKindKeyword {
			glyphs++
		}
	}
	if want := len(vocab.Keywords) * 3; glyphs != want {
		t.Fatalf("keyword-kind items = %d, want %d", glyphs, want)
	}
}

func TestCompletionSnippets(t *testing.T) {
	items := buildCompletions(vocab.Default())
	cases := []struct {
		label  string
		detail string
		body   string
	}{
		{label: "var", detail: "Variable declaration", body: "var ${1:name} = ${2:value};"},
		{label: "var (rune)", detail: "Rune: Variable declaration", body: "𖤍 ${1:name} = ${2:value};"},
		{label: "var (runic)", detail: "Runic: Variable declaration", body: "ᛡᚨᛃ ${1:name} = ${2:value};"},
		{label: "constructor (rune)", detail: "Rune: Constructor method", body: "init() {\n\t🕈↡.${1:attribute} = ${2:value};\n}"},
		{label: "super constructor (rune)", detail: "Rune: Constructor with inheritance", body: "🕈 ${1:ChildClass} < ${2:ParentClass} {\n\tinit() {\n\t\t🕈↟.init();\n\t}\n}"},
		{label: "for (runic)", detail: "Runic: For loop", body: "ᚠᛜᛃ (ᛡᚨᛃ ${1:i} = ${2:0}; ${3:i} < ${4:limit}; ${5:i}++) {\n\t$6\n}"},
		{label: "fun (rune)", detail: "Rune: Function definition", body: "♅ ${1:functionName}(${2:params}) {\n\t$3\n\t↡ ${4:null};\n}"},
		{label: "pipe (rune)", detail: "Rune: Pipe usage", body: "𖤍 ${1:variable} = ${2:value} |> ${3:function};"},
	}
	for _, tc := range cases {
		item := findCompletionKind(items, tc.label, completionKindSnippet)
		if item == nil {
			t.Fatalf("missing snippet %q", tc.label)
		}
		if item.Detail != tc.detail {
			t.Fatalf("%s detail = %q, want %q", tc.label, item.Detail, tc.detail)
		}
		if item.InsertText != tc.body {
			t.Fatalf("%s body = %q, want %q", tc.label, item.InsertText, tc.body)
		}
		if item.InsertTextFormat != insertTextFormatSnippet {
			t.Fatalf("%s insertTextFormat = %d", tc.label, item.InsertTextFormat)
		}
	}
}

func TestCompletionIncludesCustomVocabulary(t *testing.T) {
	glyphs := []string{"ᚃ", "ᚁ", "ᚂ", "ᚄ", "ᚅ", "ᚆ", "ᚇ", "ᚈ", "ᚉ", "ᚊ", "ᚋ", "ᚌ", "ᚍ"}
	entries := make([]vocab.Entry, len(vocab.Keywords))
	for i, kw := range vocab.Keywords {
		entries[i] = vocab.Entry{Keyword: kw, Glyph: glyphs[i]}
	}
	ogham, err := vocab.New("ogham", entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reg, err := vocab.NewRegistry(ogham)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	items := buildCompletions(reg)
	if item := findCompletion(items, "ᚃ"); item == nil || item.Detail != "Ogham: ᚃ" {
		t.Fatalf("ogham glyph item = %+v", item)
	}
	if item := findCompletionKind(items, "print (ogham)", completionKindSnippet); item == nil || item.InsertText != "ᚂ ${1:variable};" {
		t.Fatalf("ogham print snippet = %+v", item)
	}
}
