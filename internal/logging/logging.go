// Package logging installs the process-wide slog logger used by the valk CLI
// and language server.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures Setup.
type Options struct {
	// Level is debug, info, warn or error. Empty means warn.
	Level string
	// Color is auto, on or off.
	Color string
	// File, when set, sends logs to a rotating file instead of Stderr.
	File string
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

// Setup builds the logger, installs it as the slog default and redirects the
// standard log package into it. The returned closer releases the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer
		closer  io.Closer = nopCloser{}
		noColor bool
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		lumber := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			Compress:   true,
		}
		w, closer, noColor = lumber, lumber, true
	} else {
		w = opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		noColor = !wantColor(opts.Color, w)
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}))
	slog.SetDefault(logger)

	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetFlags(0)
	return logger, closer, nil
}

func wantColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// slogWriter forwards standard log output to slog, honouring a leading level word.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")
	switch {
	case strings.HasPrefix(msg, "ERROR "):
		slog.Error(msg[6:])
	case strings.HasPrefix(msg, "WARN "):
		slog.Warn(msg[5:])
	case strings.HasPrefix(msg, "INFO "):
		slog.Info(msg[5:])
	default:
		slog.Debug(msg)
	}
	return len(p), nil
}
