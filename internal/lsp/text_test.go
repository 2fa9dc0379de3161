package lsp

import "testing"

func TestPositionOffsetRoundTrip(t *testing.T) {
	text := "𖤍 x = 1;\n♅♅ x;\nᛩᛃᛁᚾᛄ y;"
	cases := []struct {
		offset int
		pos    position
	}{
		{offset: 0, pos: position{Line: 0, Character: 0}},
		{offset: 4, pos: position{Line: 0, Character: 2}},
		{offset: 5, pos: position{Line: 0, Character: 3}},
		{offset: 12, pos: position{Line: 1, Character: 0}},
		{offset: 18, pos: position{Line: 1, Character: 2}},
		{offset: len(text), pos: position{Line: 2, Character: 8}},
	}
	for _, tc := range cases {
		if got := positionForOffset(text, tc.offset); got != tc.pos {
			t.Fatalf("positionForOffset(%d) = %+v, want %+v", tc.offset, got, tc.pos)
		}
		if got := offsetForPosition(text, tc.pos); got != tc.offset {
			t.Fatalf("offsetForPosition(%+v) = %d, want %d", tc.pos, got, tc.offset)
		}
	}
}

func TestApplyChanges(t *testing.T) {
	text := "var x = 1;\nprint x;\n"
	changed := applyChanges(text, []textDocumentContentChangeEvent{
		{
			Range: &lspRange{
				Start: position{Line: 1, Character: 0},
				End:   position{Line: 1, Character: 5},
			},
			Text: "♅♅",
		},
	})
	if want := "var x = 1;\n♅♅ x;\n"; changed != want {
		t.Fatalf("applyChanges = %q, want %q", changed, want)
	}
	full := applyChanges(changed, []textDocumentContentChangeEvent{{Text: "reset"}})
	if full != "reset" {
		t.Fatalf("full replacement = %q", full)
	}
}
