package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"valkyrie/internal/vocab"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [token...]",
	Short: "Describe keywords and glyphs across vocabularies",
	Long: `Describe each keyword or glyph sequence in every vocabulary that knows it.
Without arguments, print the full mapping table.`,
	RunE: runLookup,
}

var (
	lookupKeyword = color.New(color.Bold)
	lookupGlyph   = color.New(color.FgCyan)
	lookupMiss    = color.New(color.FgRed)
)

func runLookup(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspace(".")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		writeVocabularyTable(out, ws.registry)
		return nil
	}
	if unknown := writeLookup(out, ws.registry, args); unknown > 0 {
		return fmt.Errorf("lookup: %d unknown token(s)", unknown)
	}
	return nil
}

// writeLookup describes every token and returns how many were not recognised.
func writeLookup(out io.Writer, registry *vocab.Registry, tokens []string) int {
	unknown := 0
	for i, token := range tokens {
		if i > 0 {
			fmt.Fprintln(out)
		}
		token = strings.TrimSpace(token)
		descs := registry.Describe(token)
		if len(descs) == 0 {
			unknown++
			fmt.Fprintf(out, "%s: %s\n", token, lookupMiss.Sprint("unknown"))
			if near := registry.Suggest(token); len(near) > 0 {
				fmt.Fprintf(out, "  did you mean %s?\n", strings.Join(near, ", "))
			}
			continue
		}
		first := descs[0]
		fmt.Fprintf(out, "%s  %s\n", lookupKeyword.Sprint(first.Entry.Keyword), first.Entry.Description)
		width := 0
		for _, d := range descs {
			width = max(width, runewidth.StringWidth(d.Vocabulary))
		}
		for _, d := range descs {
			fmt.Fprintf(out, "  %s  %s\n", runewidth.FillRight(d.Vocabulary, width), lookupGlyph.Sprint(d.Entry.Glyph))
		}
	}
	return unknown
}

// writeVocabularyTable prints one row per keyword and one column per vocabulary.
func writeVocabularyTable(out io.Writer, registry *vocab.Registry) {
	vocabs := registry.All()
	header := append([]string{"keyword"}, registry.Names()...)
	rows := [][]string{header}
	for _, kw := range vocab.Keywords {
		row := []string{kw}
		for _, v := range vocabs {
			glyph, _ := v.Glyph(kw)
			row = append(row, glyph)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			padded := runewidth.FillRight(cell, widths[i])
			switch {
			case r == 0:
				cells[i] = lookupKeyword.Sprint(padded)
			case i > 0:
				cells[i] = lookupGlyph.Sprint(padded)
			default:
				cells[i] = padded
			}
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
