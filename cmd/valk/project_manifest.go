package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"valkyrie/internal/driver"
	"valkyrie/internal/format"
	"valkyrie/internal/vocab"
)

const manifestName = "valkyrie.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package    packageConfig      `toml:"package"`
	Format     formatConfig       `toml:"format"`
	Run        runConfig          `toml:"run"`
	Vocabulary []vocabularyConfig `toml:"vocabulary"`
}

type packageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type formatConfig struct {
	IndentWidth int    `toml:"indent_width"`
	UseTabs     bool   `toml:"use_tabs"`
	Vocabulary  string `toml:"vocabulary"`
	Direction   string `toml:"direction"`
}

type runConfig struct {
	Interpreter string `toml:"interpreter"`
	Main        string `toml:"main"`
}

type vocabularyConfig struct {
	Name         string            `toml:"name"`
	Glyphs       map[string]string `toml:"glyphs"`
	Descriptions map[string]string `toml:"descriptions"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if meta.IsDefined("format", "indent_width") && cfg.Format.IndentWidth <= 0 {
		return projectConfig{}, fmt.Errorf("%s: [format].indent_width must be positive", path)
	}
	if dir := strings.TrimSpace(cfg.Format.Direction); dir != "" && dir != driver.DirectionAuto {
		if _, err := format.ParseDirection(dir); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [format].direction: %w", path, err)
		}
	}
	for _, key := range meta.Undecoded() {
		slog.Warn("unknown manifest key", "file", path, "key", key.String())
	}
	return cfg, nil
}

// vocabularies builds the custom vocabularies declared with [[vocabulary]].
func (c projectConfig) vocabularies() ([]*vocab.Vocabulary, error) {
	out := make([]*vocab.Vocabulary, 0, len(c.Vocabulary))
	for _, vc := range c.Vocabulary {
		keywords := make([]string, 0, len(vc.Glyphs))
		for kw := range vc.Glyphs {
			keywords = append(keywords, kw)
		}
		sort.Strings(keywords)
		entries := make([]vocab.Entry, 0, len(keywords))
		for _, kw := range keywords {
			entries = append(entries, vocab.Entry{
				Keyword:     kw,
				Glyph:       vc.Glyphs[kw],
				Description: vc.Descriptions[kw],
			})
		}
		v, err := vocab.New(vc.Name, entries)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// workspace is the manifest (if any) plus the vocabulary registry it implies.
type workspace struct {
	manifest *projectManifest
	registry *vocab.Registry
}

func loadWorkspace(startDir string) (*workspace, error) {
	manifest, _, err := loadProjectManifest(startDir)
	if err != nil {
		return nil, err
	}
	ws := &workspace{manifest: manifest, registry: vocab.Default()}
	if manifest == nil || len(manifest.Config.Vocabulary) == 0 {
		return ws, nil
	}
	custom, err := manifest.Config.vocabularies()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifest.Path, err)
	}
	if ws.registry, err = vocab.NewRegistry(custom...); err != nil {
		return nil, fmt.Errorf("%s: %w", manifest.Path, err)
	}
	return ws, nil
}

func (w *workspace) formatConfig() formatConfig {
	if w == nil || w.manifest == nil {
		return formatConfig{}
	}
	return w.manifest.Config.Format
}

func (w *workspace) runConfig() runConfig {
	if w == nil || w.manifest == nil {
		return runConfig{}
	}
	return w.manifest.Config.Run
}
