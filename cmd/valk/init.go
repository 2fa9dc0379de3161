package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new valkyrie project",
	Long: `Initialize a new valkyrie project by creating a project manifest
(valkyrie.toml) and a hello-world entry point (main.valk). If [path|name] is
omitted, initializes the current directory. If a non-existing name is provided,
a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}
	return initProject(cmd.OutOrStdout(), wd, target)
}

// initProject writes valkyrie.toml and main.valk into target, creating it if needed.
// An existing manifest is an error; an existing main.valk is kept.
func initProject(out io.Writer, wd, target string) error {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "valkyrie-project"
	}

	manifestPath := filepath.Join(target, manifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(buildDefaultManifest(name)), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.valk")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMain), 0o644); err != nil {
			return fmt.Errorf("failed to write main.valk: %w", err)
		}
		createdMain = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	fmt.Fprintf(out, "Initialized valkyrie project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", manifestName)
	if createdMain {
		fmt.Fprintln(out, "  - main.valk")
	} else {
		fmt.Fprintln(out, "  - main.valk (existing)")
	}
	return nil
}

func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# valkyrie project manifest
[package]
name = %q
version = "0.1.0"

[format]
indent_width = 4
use_tabs = false
vocabulary = "rune"

[run]
main = "main.valk"
`, name)
}

const defaultMain = `fun greet(name) {
    return "Hello, " + name + "!";
}

var who = "Valkyrie";
print greet(who);
`
