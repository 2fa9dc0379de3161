package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"valkyrie/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the valkyrie language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().String("log-file", "", "write logs to a rotating file instead of stderr")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	ws, err := loadWorkspace(".")
	if err != nil {
		return err
	}
	cfg := ws.formatConfig()
	settings := lsp.Settings{
		Vocabulary:  cfg.Vocabulary,
		Direction:   cfg.Direction,
		IndentWidth: cfg.IndentWidth,
	}
	if cfg.UseTabs {
		settings.UseTabs = &cfg.UseTabs
	}
	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Registry: ws.registry,
		Logger:   slog.Default(),
		Settings: settings,
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
