package logging

import (
	"bytes"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})
}

func TestSetupStderr(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, closer, err := Setup(Options{Level: "info", Color: "off", Stderr: &buf})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("formatted", "file", "main.valk")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record leaked at info level: %q", out)
	}
	if !strings.Contains(out, "formatted") || !strings.Contains(out, "main.valk") {
		t.Fatalf("missing info record: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colour escapes with --color off: %q", out)
	}
}

func TestSetupFile(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "lsp.log")
	logger, closer, err := Setup(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Info("initialize", "root", "/tmp/project")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "initialize") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestStandardLogRedirect(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	log.SetOutput(&slogWriter{})

	log.Print("ERROR disk full")
	log.Print("plain message")

	out := buf.String()
	if !strings.Contains(out, "level=ERROR msg=\"disk full\"") {
		t.Fatalf("error prefix not routed: %q", out)
	}
	if !strings.Contains(out, "level=DEBUG msg=\"plain message\"") {
		t.Fatalf("plain message not routed to debug: %q", out)
	}
}
