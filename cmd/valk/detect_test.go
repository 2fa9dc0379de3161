package main

import (
	"bytes"
	"strings"
	"testing"

	"valkyrie/internal/vocab"
)

func TestDetectFile(t *testing.T) {
	cases := []struct {
		text     string
		notation string
		glyphs   bool
	}{
		{text: "var x = 1;\nprint x;\n", notation: "keyword"},
		{text: "𖤍 x = 1;\n♅♅ x;\n", notation: "rune", glyphs: true},
		{text: "ᛡᚨᛃ x = 1;\nᛩᛃᛁᚾᛄ x;\n", notation: "runic", glyphs: true},
		{text: "x = 1;\n", notation: "none"},
	}
	for _, tc := range cases {
		r := detectFile("f.valk", tc.text, vocab.Builtins())
		if r.Notation != tc.notation || r.Glyphs != tc.glyphs {
			t.Fatalf("detectFile(%q) = %+v, want %s glyphs=%v", tc.text, r, tc.notation, tc.glyphs)
		}
	}
}

func TestWriteDetectText(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	writeDetectText(&buf, []detectReport{
		{Path: "a.valk", Notation: "rune", Glyphs: true, Confidence: 0.75, RunnerUp: "keyword", Signals: 4},
		{Path: "b.valk", Notation: "none"},
	})
	want := "a.valk: rune (75% of 4 signals, runner-up keyword)\nb.valk: none\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatal("expected one line per report")
	}
}
