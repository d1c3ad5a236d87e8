package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/exchange"
	"github.com/spf13/cobra"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the collection as JSON, CSV or XML",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := exchange.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				data, err := cmds.Export(cmd.Context(), format)
				if errors.Is(err, domain.ErrNotFound) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Collection is empty, nothing to export")
					return nil
				}
				if err != nil {
					return err
				}

				if outputFlag == "" || outputFlag == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				target := outputFlag
				if info, err := os.Stat(target); err == nil && info.IsDir() {
					target = filepath.Join(target, exchange.FileName(format))
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s)\n", target, humanize.Bytes(uint64(len(data))))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(domain.ExportJSON), "Export format (json, csv, xml)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file or directory (default stdout)")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Validate and upload an exported collection file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var format domain.ExportFormat
			var err error
			if strings.TrimSpace(formatFlag) != "" {
				format, err = exchange.ParseFormat(formatFlag)
			} else {
				format, err = exchange.DetectFormat(path)
			}
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			records, err := exchange.Decode(format, bytes.NewReader(data))
			if err != nil {
				return err
			}
			summary := exchange.Validate(records)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d records, %d importable, %d skipped\n", summary.Total, summary.Valid, len(summary.Skipped))
			for _, rec := range summary.Skipped {
				title := rec.Title()
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintf(out, "  skip: %s\n", title)
			}
			if summary.Valid == 0 {
				return domain.Invalid("%s has no importable records", filepath.Base(path))
			}
			if dryRun {
				return nil
			}

			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				items, err := cmds.Import(cmd.Context(), format, filepath.Base(path), bytes.NewReader(data), "")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported; the collection now has %s items\n", humanize.Comma(int64(len(items))))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "File format (default: from extension)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate without uploading")
	return cmd
}
