package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"valkyrie/internal/logging"
	"valkyrie/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "valk",
	Short: "Valkyrie formatter, notation tools and language server",
	Long: `valk formats Valkyrie sources written with ASCII keywords or glyph
vocabularies, translates between the two notations and serves editors over LSP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// logCloser releases the log file opened by the lsp command.
var logCloser io.Closer

func init() {
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
}

// main executes the root command and exits with status 1 on error.
func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command with args and reports a returned error on stderr.
// Commands print their own per-file output; the final error is printed once here.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.Version = version.Plain()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		return 1
	}
	return 0
}

func setupGlobals(cmd *cobra.Command, _ []string) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(colorMode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorMode)
	}

	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return err
	}
	opts := logging.Options{Level: level, Color: colorMode, Stderr: cmd.ErrOrStderr()}
	if cmd.Name() == "lsp" {
		// stdout carries JSON-RPC frames.
		if opts.File, err = cmd.Flags().GetString("log-file"); err != nil {
			return err
		}
	}
	_, closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	logCloser = closer
	return nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
