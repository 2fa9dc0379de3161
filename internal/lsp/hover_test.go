package lsp

import (
	"testing"

	"valkyrie/internal/vocab"
)

func TestBuildHover(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		pos   position
		want  string
		start position
		end   position
	}{
		{
			name:  "keyword lists every vocabulary",
			text:  "print x;",
			pos:   position{Line: 0, Character: 2},
			want:  "**Keyword**: print\n\n**Rune**: ♅♅\n\n**Runic**: ᛩᛃᛁᚾᛄ\n\nPrint statement",
			start: position{Line: 0, Character: 0},
			end:   position{Line: 0, Character: 5},
		},
		{
			name:  "longest rune glyph wins",
			text:  "♅♅ x;",
			pos:   position{Line: 0, Character: 1},
			want:  "**Rune**: ♅♅\n\n**Keyword**: print\n\nPrint statement",
			start: position{Line: 0, Character: 0},
			end:   position{Line: 0, Character: 2},
		},
		{
			name:  "astral glyph at its end",
			text:  "x = 1;\n𖤍 y = 2;",
			pos:   position{Line: 1, Character: 2},
			want:  "**Rune**: 𖤍\n\n**Keyword**: var\n\nVariable declaration",
			start: position{Line: 1, Character: 0},
			end:   position{Line: 1, Character: 2},
		},
		{
			name:  "runic glyph",
			text:  "ᛁᚠ (x) {",
			pos:   position{Line: 0, Character: 0},
			want:  "**Runic**: ᛁᚠ\n\n**Keyword**: if\n\nConditional statement",
			start: position{Line: 0, Character: 0},
			end:   position{Line: 0, Character: 2},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildHover(vocab.Default(), tc.text, tc.pos)
			if got == nil {
				t.Fatal("expected hover")
			}
			if got.Contents.Kind != "markdown" {
				t.Fatalf("kind = %q", got.Contents.Kind)
			}
			if got.Contents.Value != tc.want {
				t.Fatalf("hover = %q, want %q", got.Contents.Value, tc.want)
			}
			if got.Range == nil || got.Range.Start != tc.start || got.Range.End != tc.end {
				t.Fatalf("range = %+v, want %+v-%+v", got.Range, tc.start, tc.end)
			}
		})
	}
}

func TestBuildHoverMisses(t *testing.T) {
	cases := map[string]position{
		"identifier":    {Line: 0, Character: 9},
		"inside string": {Line: 0, Character: 16},
		"past the end":  {Line: 4, Character: 0},
	}
	text := `var name = "print";`
	for name, pos := range cases {
		t.Run(name, func(t *testing.T) {
			if got := buildHover(vocab.Default(), text, pos); got != nil {
				t.Fatalf("unexpected hover %q", got.Contents.Value)
			}
		})
	}
}
