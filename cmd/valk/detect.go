package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"valkyrie/internal/vocab"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file> [file...]",
	Short: "Report the dominant notation of source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().String("format", "text", "output format (text|json)")
}

type detectReport struct {
	Path       string  `json:"path"`
	Notation   string  `json:"notation"`
	Glyphs     bool    `json:"glyphs"`
	Confidence float64 `json:"confidence"`
	RunnerUp   string  `json:"runner_up,omitempty"`
	Signals    int     `json:"signals"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("detect: unsupported output format %q", outputFormat)
	}
	ws, err := loadWorkspace(".")
	if err != nil {
		return err
	}
	reports := make([]detectReport, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		reports = append(reports, detectFile(path, string(data), ws.registry.All()))
	}
	if outputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
	writeDetectText(cmd.OutOrStdout(), reports)
	return nil
}

func detectFile(path, text string, vocabs []*vocab.Vocabulary) detectReport {
	c := vocab.Detect(text, vocabs...)
	notation := c.Notation
	if notation == "" {
		notation = "none"
	}
	return detectReport{
		Path:       path,
		Notation:   notation,
		Glyphs:     c.Glyphs(),
		Confidence: c.Confidence,
		RunnerUp:   c.RunnerUp,
		Signals:    c.ObservedSignals,
	}
}

func writeDetectText(out io.Writer, reports []detectReport) {
	name := color.New(color.Bold)
	for _, r := range reports {
		fmt.Fprintf(out, "%s: %s", r.Path, name.Sprint(r.Notation))
		if r.Notation != "none" {
			fmt.Fprintf(out, " (%.0f%% of %d signals", r.Confidence*100, r.Signals)
			if r.RunnerUp != "" {
				fmt.Fprintf(out, ", runner-up %s", r.RunnerUp)
			}
			fmt.Fprint(out, ")")
		}
		fmt.Fprintln(out)
	}
}
