package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mmcdole/shelf/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			rows := [][]string{
				{"server.url", cfg.Server.URL},
				{"server.timeout", cfg.Server.Timeout.String()},
				{"ui.default_view", string(cfg.UI.DefaultView)},
				{"ui.locale", cfg.UI.Locale},
				{"cache.dir", cfg.Cache.Dir},
				{"logging.file", cfg.Logging.File},
				{"logging.level", cfg.Logging.Level},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, nil))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := strings.TrimSpace(*ctx.configFlag)
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			if err := config.Save(ctx.configValue(), dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filepath.Join(dir, "config.yaml"))
			return nil
		},
	})

	return cmd
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local collection cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete cached snapshots and locally stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if err := cfg.ClearCache(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", cfg.Cache.Dir)
			return nil
		},
	})
	return cmd
}
