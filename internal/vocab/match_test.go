package vocab

import "testing"

func TestReplace(t *testing.T) {
	cases := []struct {
		name string
		v    *Vocabulary
		from Side
		in   string
		want string
	}{
		{"keyword to rune", Rune(), KeywordSide, "print x;", "♅♅ x;"},
		{"identifier untouched", Rune(), KeywordSide, "var printer = format;", "𖤍 printer = format;"},
		{"string untouched", Rune(), KeywordSide, `print "if or else";`, `♅♅ "if or else";`},
		{"escaped quote", Rune(), KeywordSide, `print "a\"if";`, `♅♅ "a\"if";`},
		{"longest glyph", Rune(), GlyphSide, "🕈↟.init(); 🕈↡.x; 🕈 A {}", "super.init(); this.x; class A {}"},
		{"print vs fun", Rune(), GlyphSide, "♅ f() { ♅♅ 1; }", "fun f() { print 1; }"},
		{"else vs return", Rune(), GlyphSide, "↟↡ { ↡ 1; }", "else { return 1; }"},
		{"runic for vs or", Runic(), GlyphSide, "ᚠᛜᛃ (a ᛜᛃ b)", "for (a or b)"},
		{"runic glyph inside word", Runic(), GlyphSide, "ᛁᚠx ᛁᚠ", "ᛁᚠx if"},
		{"nothing to do", Rune(), GlyphSide, "x = 1;", "x = 1;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Replace(tc.in, tc.from); got != tc.want {
				t.Fatalf("Replace(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestReplace_RoundTrip(t *testing.T) {
	src := "class A < B {\n    init() { super.init(); this.x = 1; }\n    m() { if (a and b or c) { return 1; } else { while (x) { print x; } } }\n}\nfor (var i = 0; i < 3; i = i + 1) { fun f() {} }\n"
	for _, v := range Builtins() {
		glyphs := v.Replace(src, KeywordSide)
		if back := v.Replace(glyphs, GlyphSide); back != src {
			t.Fatalf("%s round trip:\nwant %q\ngot  %q", v.Name(), src, back)
		}
	}
}

func TestScan_Offsets(t *testing.T) {
	text := "𖤍 a = 1; ♅♅ a;"
	got := Rune().Scan(text, GlyphSide)
	if len(got) != 2 {
		t.Fatalf("Scan found %d matches, want 2", len(got))
	}
	if got[0].Start != 0 || got[0].Entry.Keyword != "var" {
		t.Fatalf("first match = %+v", got[0])
	}
	if text[got[1].Start:got[1].End] != "♅♅" {
		t.Fatalf("second match covers %q", text[got[1].Start:got[1].End])
	}
}

func TestTokenAt(t *testing.T) {
	text := "♅♅ x; print y;"
	m, ok := Rune().TokenAt(text, 3)
	if !ok || m.Entry.Keyword != "print" || m.Side != GlyphSide {
		t.Fatalf("TokenAt(3) = %+v, %v", m, ok)
	}
	m, ok = Rune().TokenAt(text, len("♅♅"))
	if !ok || m.Text() != "♅♅" {
		t.Fatalf("TokenAt at token end = %+v, %v", m, ok)
	}
	off := len("♅♅ x; pr")
	m, ok = Rune().TokenAt(text, off)
	if !ok || m.Side != KeywordSide || m.Entry.Keyword != "print" {
		t.Fatalf("TokenAt(%d) = %+v, %v", off, m, ok)
	}
	if _, ok := Rune().TokenAt(text, len("♅♅ ")); ok {
		t.Fatalf("TokenAt on identifier should miss")
	}
}

func TestHasTokenAt(t *testing.T) {
	if !HasTokenAt("} else {", 2, "else") {
		t.Fatalf("HasTokenAt missed else")
	}
	if HasTokenAt("elsewhere", 0, "else") {
		t.Fatalf("HasTokenAt matched inside an identifier")
	}
	if HasTokenAt("x_for", 2, "for") {
		t.Fatalf("HasTokenAt matched after underscore")
	}
}

func TestReplace_SeparatesKeywordFromIdentifier(t *testing.T) {
	if got := Rune().Replace("♅♅x", GlyphSide); got != "print x" {
		t.Fatalf("Replace(♅♅x) = %q, want %q", got, "print x")
	}
	if got := Rune().Replace("a↠↠b", GlyphSide); got != "a and b" {
		t.Fatalf("Replace(a↠↠b) = %q, want %q", got, "a and b")
	}
}
