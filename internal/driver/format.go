package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"valkyrie/internal/format"
	"valkyrie/internal/observ"
	"valkyrie/internal/vocab"
)

// DirectionAuto keeps whichever notation dominates each file.
const DirectionAuto = "auto"

// ErrNoSourceFiles is returned when the given paths hold no .valk or .runic files.
var ErrNoSourceFiles = errors.New("format: no source files found")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check  bool
	Stdout bool
	// Jobs bounds concurrent files; <= 0 means GOMAXPROCS.
	Jobs int
	// Options carries layout settings. Vocabulary and direction come from the
	// fields below or from the file extension.
	Options format.Options
	// Vocabulary overrides the per-extension vocabulary when set.
	Vocabulary *vocab.Vocabulary
	// Direction is "", "auto" or a name accepted by format.ParseDirection.
	// Empty uses the per-extension default.
	Direction string
	// Vocabularies are candidates for "auto" detection; defaults to the built-ins.
	Vocabularies []*vocab.Vocabulary

	Cache    *Cache
	Progress Sink
	Timer    *observ.Timer
	Logger   *slog.Logger
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	Options   format.Options
}

// FormatPaths formats provided files or directories (recursively collecting
// .valk and .runic files). When opts.Check is true, files are not modified;
// Changed indicates whether formatting would update the file contents. When
// opts.Stdout is true, formatted content is returned in the results without
// touching files on disk. Results are in sorted path order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateDirection(opts.Direction); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	phase := opts.Timer.Begin("collect")
	files, err := CollectSourceFiles(ctx, paths)
	opts.Timer.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FormatResult, len(files))

	phase = opts.Timer.Begin("format")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(path, opts, logger)
			status := StatusDone
			switch {
			case results[i].Err != nil:
				status = StatusError
			case results[i].Cached:
				status = StatusCached
			case results[i].Changed:
				status = StatusChanged
			}
			emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: status})
			return nil
		})
	}
	err = g.Wait()
	opts.Timer.End(phase, summarize(results))
	if err != nil {
		return results, err
	}
	return results, nil
}

func summarize(results []FormatResult) string {
	var changed, cached, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Cached:
			cached++
		case r.Changed:
			changed++
		}
	}
	return fmt.Sprintf("%d changed, %d cached, %d failed", changed, cached, failed)
}

func formatOne(path string, opts FormatOptions, logger *slog.Logger) FormatResult {
	result := FormatResult{Path: path}
	start := time.Now()
	defer func() { opts.Timer.Add("file", time.Since(start)) }()

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	fopts, err := FileOptions(path, data, opts)
	if err != nil {
		result.Err = err
		return result
	}
	result.Options = fopts
	fingerprint := fopts.Fingerprint()

	if !opts.Stdout {
		var entry CacheEntry
		hit, cerr := opts.Cache.Get(CacheKey(data, fingerprint), &entry)
		if cerr != nil {
			logger.Debug("cache read failed", "path", path, "err", cerr)
		}
		if hit {
			logger.Debug("cache hit", "path", path)
			result.Cached = true
			return result
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	formatted, err := format.Source(data, fopts)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	changed := !bytes.Equal(data, formatted)
	logger.Debug("formatted", "path", path, "changed", changed, "vocabulary", vocabName(fopts), "direction", fopts.Direction)

	switch {
	case opts.Check:
		result.Changed = changed
	case opts.Stdout:
		result.Formatted = formatted
		result.Changed = changed
	case changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
			return result
		}
		result.Changed = true
	}

	remember(opts.Cache, path, formatted, fingerprint, logger)
	return result
}

// remember marks formatted content as canonical for fingerprint.
func remember(cache *Cache, path string, content []byte, fingerprint string, logger *slog.Logger) {
	if cache == nil {
		return
	}
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return
	}
	entry := &CacheEntry{Path: path, Size: size, Fingerprint: fingerprint}
	if err := cache.Put(CacheKey(content, fingerprint), entry); err != nil {
		logger.Debug("cache write failed", "path", path, "err", err)
	}
}

func vocabName(o format.Options) string {
	if o.Vocabulary == nil {
		return ""
	}
	return o.Vocabulary.Name()
}

func validateDirection(dir string) error {
	if dir == "" || dir == DirectionAuto {
		return nil
	}
	_, err := format.ParseDirection(dir)
	return err
}

// FileOptions resolves the formatter options for one file: explicit settings
// first, then detection for "auto", then the extension profile.
func FileOptions(path string, data []byte, opts FormatOptions) (format.Options, error) {
	lang, ok := format.LanguageForPath(path)
	if !ok {
		lang = format.LanguageValkyrie
	}
	return LanguageOptions(lang, data, opts)
}

// LanguageOptions is FileOptions for a document whose language id is already known.
// Unknown ids fall back to the valkyrie profile.
func LanguageOptions(lang string, data []byte, opts FormatOptions) (format.Options, error) {
	out := opts.Options
	profile, ok := format.ProfileFor(lang)
	if !ok {
		profile, _ = format.ProfileFor(format.LanguageValkyrie)
	}
	out = profile.Options(out)
	if opts.Vocabulary != nil {
		out.Vocabulary = opts.Vocabulary
	}

	switch opts.Direction {
	case "":
	case DirectionAuto:
		candidates := opts.Vocabularies
		if len(candidates) == 0 {
			candidates = vocab.Builtins()
		}
		c := vocab.Detect(string(data), candidates...)
		switch {
		case c.Vocabulary != nil:
			if opts.Vocabulary == nil {
				out.Vocabulary = c.Vocabulary
			}
			out.Direction = format.ToGlyphs
		case c.Notation == vocab.KeywordNotation:
			out.Direction = format.ToKeywords
		default:
			out.Direction = format.Keep
		}
	default:
		d, err := format.ParseDirection(opts.Direction)
		if err != nil {
			return format.Options{}, err
		}
		out.Direction = d
	}
	return out, nil
}

// CollectSourceFiles expands paths into a sorted, de-duplicated file list.
// Directories are walked recursively, skipping hidden directories. Explicit
// file arguments are accepted regardless of extension.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if format.IsSourcePath(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
