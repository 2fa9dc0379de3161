package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"valkyrie/internal/vocab"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestWriteLookup(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	unknown := writeLookup(&buf, vocab.Default(), []string{"print", "🕈↡"})
	if unknown != 0 {
		t.Fatalf("unknown = %d", unknown)
	}
	want := strings.Join([]string{
		"print  Print statement",
		"  rune   ♅♅",
		"  runic  ᛩᛃᛁᚾᛄ",
		"",
		"this  Reference to current instance",
		"  rune  🕈↡",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("lookup output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteLookupSuggests(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	if unknown := writeLookup(&buf, vocab.Default(), []string{"prnt"}); unknown != 1 {
		t.Fatalf("unknown = %d, want 1", unknown)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "prnt: unknown\n") || !strings.Contains(out, "did you mean") || !strings.Contains(out, "print") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWriteVocabularyTable(t *testing.T) {
	disableColor(t)
	var buf bytes.Buffer
	writeVocabularyTable(&buf, vocab.Default())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(vocab.Keywords)+1 {
		t.Fatalf("table has %d lines, want %d", len(lines), len(vocab.Keywords)+1)
	}
	if lines[0] != "keyword  rune  runic" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[3] != "print    ♅♅    ᛩᛃᛁᚾᛄ" {
		t.Fatalf("print row = %q", lines[3])
	}
}
