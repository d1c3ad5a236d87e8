package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/store"
	"github.com/mmcdole/shelf/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var serverFlag string

	ctx := newCommandContext(&configFlag, &serverFlag)

	rootCmd := &cobra.Command{
		Use:           "shelf",
		Short:         "Browse and manage a media collection",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("the interactive browser needs a terminal; use a subcommand such as `shelf list`")
			}
			return runTUI(ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration directory")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Backend URL (overrides server.url)")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newExportCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newValueCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newReportCommand(ctx))
	rootCmd.AddCommand(newPricesCommand(ctx))
	rootCmd.AddCommand(newLoansCommand(ctx))
	rootCmd.AddCommand(newPingCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}

// runTUI starts the interactive browser over the persistent cache
func runTUI(ctx *commandContext) error {
	cfg := ctx.configValue()
	logger := ctx.logger

	cacheStore, err := store.NewCatalogStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		logger.Warn("cache unavailable, continuing without persistence", "error", err)
		cacheStore, _ = store.NewCatalogStore("", "")
	}
	defer cacheStore.Close()

	commands := catalog.NewCommands(ctx.client(), cacheStore, logger)
	queries := catalog.NewQueries(cacheStore)

	model := tui.NewModel(commands, queries, tui.Options{
		Timeout:     cfg.Server.Timeout,
		Locale:      cfg.UI.Locale,
		DefaultView: string(cfg.UI.DefaultView),
		Logger:      logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "server", cfg.Server.URL)
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	logger.Info("shutting down")
	return nil
}
