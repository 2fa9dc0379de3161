package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestPlain(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	cases := map[string]string{
		"1.2.3":      "1.2.3",
		"  0.1.0  ":  "0.1.0",
		"":           "dev",
		"2.0.0-beta": "2.0.0-beta",
	}
	for in, want := range cases {
		Version = in
		if got := Plain(); got != want {
			t.Fatalf("Plain() with Version=%q = %q, want %q", in, got, want)
		}
	}
}

func TestColoredWithoutColor(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })
	color.NoColor = true

	cases := map[string]string{
		"0.1.0-dev":            "0.1.0-dev",
		"1.2.3+build.7":        "1.2.3+build.7",
		"nightly":              "nightly",
		"1.2":                  "1.2",
		"1.2.3-rc.1+build.123": "1.2.3-rc.1+build.123",
	}
	for in, want := range cases {
		Version = in
		if got := Colored(); got != want {
			t.Fatalf("Colored() with Version=%q = %q, want %q", in, got, want)
		}
	}
}

func TestColoredAddsEscapes(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	t.Cleanup(func() { Version, color.NoColor = origVersion, origNoColor })
	color.NoColor = false
	Version = "1.2.3"

	if got := Colored(); got == "1.2.3" {
		t.Fatalf("expected ANSI colours in %q", got)
	}
}
