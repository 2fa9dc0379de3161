package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"valkyrie/internal/driver"
	"valkyrie/internal/observ"
	"valkyrie/internal/ui"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format valkyrie source files",
	Long: `Format .valk and .runic files in place. Directories are walked recursively.
--to rewrites keywords into glyphs (glyphs), glyphs into keywords (keywords),
leaves spellings alone (keep) or follows each file's dominant notation (auto).`,
	Args: cobra.ArbitraryArgs,
	RunE: runFmt,
}

func init() {
	addFmtFlags(fmtCmd)
}

func addFmtFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "check if files are properly formatted")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	cmd.Flags().String("to", "", "notation to emit (keywords|glyphs|keep|auto); default per file extension")
	cmd.Flags().String("vocab", "", "glyph vocabulary (rune|runic|custom name)")
	cmd.Flags().Int("indent", 0, "spaces per indent level (default 4)")
	cmd.Flags().Bool("tabs", false, "indent with tabs")
	cmd.Flags().Int("jobs", 0, "files formatted in parallel (default GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("no-cache", false, "ignore and do not update the format cache")
	cmd.Flags().Bool("clear-cache", false, "drop the format cache first; paths are optional")
}

// formatCacheApp names the cache directory under the user cache root.
const formatCacheApp = "valkyrie"

func runFmt(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	check, err := flags.GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := flags.GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}
	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	clearCache, err := flags.GetBool("clear-cache")
	if err != nil {
		return err
	}
	if clearCache {
		if err := clearFormatCache(cmd.ErrOrStderr(), quiet); err != nil {
			return err
		}
		if len(args) == 0 {
			return nil
		}
	}
	if len(args) == 0 {
		return fmt.Errorf("fmt: requires at least one path")
	}

	ws, err := loadWorkspace(".")
	if err != nil {
		return err
	}
	opts, err := buildFormatOptions(cmd, ws)
	if err != nil {
		return err
	}
	opts.Check = check
	opts.Stdout = writeToStdout
	opts.Logger = slog.Default()
	if timings {
		opts.Timer = observ.NewTimer()
	}

	var results []driver.FormatResult
	if !writeToStdout && outputFormat == "text" && !quiet && shouldUseTUI(mode) {
		results, err = runFormatWithUI(cmd.Context(), args, opts, teaRunner(cmd.ErrOrStderr()))
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if timings {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	switch {
	case writeToStdout:
		hasErrors = renderFmtStdout(out, errOut, results)
	case outputFormat == "json":
		if err := renderFmtJSON(out, results, check); err != nil {
			return err
		}
		hasErrors, hasChanges = tally(results)
	default:
		hasErrors, hasChanges = renderFmtText(out, errOut, results, check, quiet)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

// buildFormatOptions layers command-line flags over the manifest's [format] table.
func buildFormatOptions(cmd *cobra.Command, ws *workspace) (driver.FormatOptions, error) {
	flags := cmd.Flags()
	cfg := ws.formatConfig()
	opts := driver.FormatOptions{Vocabularies: ws.registry.All()}
	opts.Options.IndentWidth = cfg.IndentWidth
	opts.Options.UseTabs = cfg.UseTabs
	opts.Direction = strings.TrimSpace(cfg.Direction)
	vocabName := strings.TrimSpace(cfg.Vocabulary)

	if flags.Changed("indent") {
		width, err := flags.GetInt("indent")
		if err != nil {
			return opts, err
		}
		if width <= 0 {
			return opts, fmt.Errorf("fmt: --indent must be positive")
		}
		opts.Options.IndentWidth = width
	}
	if flags.Changed("tabs") {
		tabs, err := flags.GetBool("tabs")
		if err != nil {
			return opts, err
		}
		opts.Options.UseTabs = tabs
	}
	if flags.Changed("to") {
		to, err := flags.GetString("to")
		if err != nil {
			return opts, err
		}
		opts.Direction = strings.TrimSpace(to)
	}
	if flags.Changed("vocab") {
		name, err := flags.GetString("vocab")
		if err != nil {
			return opts, err
		}
		vocabName = strings.TrimSpace(name)
	}
	if vocabName != "" {
		v, err := ws.registry.Lookup(vocabName)
		if err != nil {
			return opts, err
		}
		opts.Vocabulary = v
	}

	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return opts, err
	}
	opts.Jobs = jobs

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return opts, err
	}
	if !noCache {
		cache, err := driver.OpenCache(formatCacheApp)
		if err != nil {
			slog.Debug("format cache disabled", "err", err)
		} else {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func clearFormatCache(out io.Writer, quiet bool) error {
	cache, err := driver.OpenCache(formatCacheApp)
	if err != nil {
		return fmt.Errorf("fmt: open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("fmt: clear cache: %w", err)
	}
	if !quiet {
		fmt.Fprintf(out, "cleared format cache %s\n", cache.Dir())
	}
	return nil
}

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

// errInterrupted is returned when the progress view is quit before formatting ends.
var errInterrupted = errors.New("fmt: interrupted")

// uiRunner drives a Bubble Tea model until it quits and returns the final model.
type uiRunner func(tea.Model) (tea.Model, error)

func teaRunner(out io.Writer) uiRunner {
	return func(model tea.Model) (tea.Model, error) {
		return tea.NewProgram(model, tea.WithOutput(out)).Run()
	}
}

func runFormatWithUI(ctx context.Context, paths []string, opts driver.FormatOptions, run uiRunner) ([]driver.FormatResult, error) {
	files, err := driver.CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, driver.ErrNoSourceFiles
	}
	fmtCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)
	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(fmtCtx, files, optsCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	final, uiErr := run(ui.NewProgressModel("valk fmt", files, events))
	interrupted := ui.Interrupted(final)
	if interrupted {
		cancel()
	}
	// The view no longer reads events once it has quit.
	for range events {
	}
	outcome := <-outcomeCh

	if uiErr != nil {
		slog.Warn("progress view failed, formatting continued without it", "err", uiErr)
	}
	if interrupted && errors.Is(outcome.err, context.Canceled) && ctx.Err() == nil {
		return outcome.results, errInterrupted
	}
	return outcome.results, outcome.err
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
		} else {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
	return hasErrors, hasChanges
}

func tally(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path       string `json:"path"`
		Changed    bool   `json:"changed"`
		Cached     bool   `json:"cached,omitempty"`
		Vocabulary string `json:"vocabulary,omitempty"`
		Direction  string `json:"direction,omitempty"`
		Error      string `json:"error,omitempty"`
		CheckRun   bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, CheckRun: check}
		if res.Options.Vocabulary != nil {
			jr.Vocabulary = res.Options.Vocabulary.Name()
			jr.Direction = res.Options.Direction.String()
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
