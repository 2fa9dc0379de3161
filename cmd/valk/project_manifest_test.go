package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"valkyrie/internal/vocab"
)

const oghamManifest = `[package]
name = "demo"

[format]
indent_width = 2
use_tabs = true
vocabulary = "ogham"
direction = "glyphs"

[run]
interpreter = "/usr/local/bin/valkyrie"
main = "src/main.valk"

[[vocabulary]]
name = "ogham"
[vocabulary.glyphs]
var = "ᚃ"
fun = "ᚁ"
print = "ᚂ"
if = "ᚄ"
else = "ᚅ"
while = "ᚆ"
for = "ᚇ"
return = "ᚈ"
and = "ᚉ"
class = "ᚊ"
or = "ᚋ"
super = "ᚌ"
this = "ᚍ"
[vocabulary.descriptions]
print = "Write to stdout"
`

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, manifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", manifestName, err)
	}
	return path
}

func TestLoadWorkspaceWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, oghamManifest)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ws, err := loadWorkspace(nested)
	if err != nil {
		t.Fatalf("loadWorkspace: %v", err)
	}
	if ws.manifest == nil || ws.manifest.Root != root {
		t.Fatalf("manifest root = %+v, want %s", ws.manifest, root)
	}
	cfg := ws.formatConfig()
	if cfg.IndentWidth != 2 || !cfg.UseTabs || cfg.Vocabulary != "ogham" || cfg.Direction != "glyphs" {
		t.Fatalf("format config = %+v", cfg)
	}
	if got := ws.runConfig().Main; got != "src/main.valk" {
		t.Fatalf("run.main = %q", got)
	}

	ogham, err := ws.registry.Lookup("ogham")
	if err != nil {
		t.Fatalf("Lookup(ogham): %v", err)
	}
	if glyph, _ := ogham.Glyph("print"); glyph != "ᚂ" {
		t.Fatalf("ogham print = %q", glyph)
	}
	entry, _, _ := ogham.Entry("print")
	if entry.Description != "Write to stdout" {
		t.Fatalf("description = %q", entry.Description)
	}
	if names := ws.registry.Names(); len(names) != 3 || names[2] != "ogham" {
		t.Fatalf("registry names = %v", names)
	}
}

func TestLoadWorkspaceWithoutManifest(t *testing.T) {
	ws, err := loadWorkspace(t.TempDir())
	if err != nil {
		t.Fatalf("loadWorkspace: %v", err)
	}
	if ws.manifest != nil {
		t.Skipf("found an unrelated %s above the temp dir: %s", manifestName, ws.manifest.Path)
	}
	if ws.registry != vocab.Default() {
		t.Fatal("expected the default registry")
	}
	if cfg := ws.formatConfig(); cfg != (formatConfig{}) {
		t.Fatalf("format config = %+v", cfg)
	}
}

func TestLoadWorkspaceErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "missing package", body: "[format]\nindent_width = 2\n", want: "missing [package]"},
		{name: "missing name", body: "[package]\nversion = \"1\"\n", want: "missing [package].name"},
		{name: "bad indent", body: "[package]\nname = \"x\"\n[format]\nindent_width = 0\n", want: "indent_width must be positive"},
		{name: "bad direction", body: "[package]\nname = \"x\"\n[format]\ndirection = \"sideways\"\n", want: "unknown direction"},
		{name: "bad toml", body: "[package\n", want: "failed to parse TOML"},
		{name: "incomplete vocabulary", body: "[package]\nname = \"x\"\n[[vocabulary]]\nname = \"half\"\n[vocabulary.glyphs]\nvar = \"ᚃ\"\n", want: "missing keywords"},
		{name: "builtin name reused", body: strings.Replace(oghamManifest, `name = "ogham"`, `name = "rune"`, 1), want: "defined more than once"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tc.body)
			_, err := loadWorkspace(dir)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestCustomVocabularyConfigError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, strings.Replace(oghamManifest, `fun = "ᚁ"`, `fun = "ᚃ"`, 1))
	_, err := loadWorkspace(dir)
	var cfgErr *vocab.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected vocab.ConfigError, got %v", err)
	}
	if cfgErr.Vocabulary != "ogham" {
		t.Fatalf("ConfigError.Vocabulary = %q", cfgErr.Vocabulary)
	}
}
