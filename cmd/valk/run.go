package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

const interpreterEnv = "VALKYRIE_INTERPRETER"

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a source file with the valkyrie interpreter",
	Long: `Run a source file with the configured interpreter as
"<interpreter> --run_file <file>". The interpreter comes from --interpreter,
then [run].interpreter in valkyrie.toml, then $VALKYRIE_INTERPRETER. Without a
file argument, [run].main is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("interpreter", "", "path to the valkyrie interpreter")
}

func runRun(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(".")
	if err != nil {
		return err
	}
	flagInterp, err := cmd.Flags().GetString("interpreter")
	if err != nil {
		return err
	}
	interp, err := resolveInterpreter(flagInterp, ws)
	if err != nil {
		return err
	}
	file, err := resolveRunFile(args, ws)
	if err != nil {
		return err
	}

	c := exec.CommandContext(cmd.Context(), interp, "--run_file", file)
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("run: %s exited with status %d", filepath.Base(file), exitErr.ExitCode())
		}
		return fmt.Errorf("run: execution failed: %w", err)
	}
	return nil
}

func resolveInterpreter(flagValue string, ws *workspace) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(ws.runConfig().Interpreter); v != "" {
		if !filepath.IsAbs(v) && strings.ContainsRune(v, filepath.Separator) {
			v = filepath.Join(ws.manifest.Root, v)
		}
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(interpreterEnv)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("run: interpreter path is not set (use --interpreter, [run].interpreter or $%s)", interpreterEnv)
}

func resolveRunFile(args []string, ws *workspace) (string, error) {
	var file string
	switch {
	case len(args) == 1:
		file = args[0]
	case strings.TrimSpace(ws.runConfig().Main) != "":
		file = filepath.Join(ws.manifest.Root, filepath.FromSlash(strings.TrimSpace(ws.runConfig().Main)))
	default:
		return "", fmt.Errorf("run: no file given and no [run].main in %s", manifestName)
	}
	info, err := os.Stat(file)
	if err != nil {
		return "", fmt.Errorf("run: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("run: %s is a directory", file)
	}
	return file, nil
}
