package format

import (
	"testing"

	"valkyrie/internal/vocab"
)

func TestLanguageForPath(t *testing.T) {
	cases := map[string]string{
		"main.valk":        LanguageValkyrie,
		"dir/Script.RUNIC": LanguageRunic,
	}
	for path, want := range cases {
		got, ok := LanguageForPath(path)
		if !ok || got != want {
			t.Fatalf("LanguageForPath(%q) = %q, %v; want %q", path, got, ok, want)
		}
	}
	if IsSourcePath("notes.txt") {
		t.Fatalf("IsSourcePath accepted .txt")
	}
}

func TestProfileFor(t *testing.T) {
	p, ok := ProfileFor(LanguageValkyrie)
	if !ok || p.Vocabulary != vocab.Rune() || p.Direction != ToKeywords {
		t.Fatalf("valkyrie profile = %+v, %v", p, ok)
	}
	p, ok = ProfileFor(LanguageRunic)
	if !ok || p.Vocabulary != vocab.Runic() || p.Direction != ToGlyphs {
		t.Fatalf("runic profile = %+v, %v", p, ok)
	}
	opts := p.Options(Options{IndentWidth: 2})
	if opts.IndentWidth != 2 || opts.Vocabulary != vocab.Runic() {
		t.Fatalf("Options() = %+v", opts)
	}
	if _, ok := ProfileFor("go"); ok {
		t.Fatalf("ProfileFor(go) succeeded")
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"keywords": ToKeywords,
		"Glyphs":   ToGlyphs,
		" keep ":   Keep,
	} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
		if again, _ := ParseDirection(got.String()); again != got {
			t.Fatalf("String/Parse mismatch for %v", got)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("ParseDirection accepted garbage")
	}
}

func TestOptionsFingerprint(t *testing.T) {
	a := Options{}.Fingerprint()
	b := Options{IndentWidth: 4}.Fingerprint()
	if a != b {
		t.Fatalf("default width changes fingerprint: %q vs %q", a, b)
	}
	c := Options{Direction: ToGlyphs, Vocabulary: vocab.Rune()}.Fingerprint()
	d := Options{Direction: ToGlyphs, Vocabulary: vocab.Runic()}.Fingerprint()
	if c == d || a == c {
		t.Fatalf("fingerprints collide: %q %q %q", a, c, d)
	}
}
