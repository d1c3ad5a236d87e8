package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/spf13/cobra"
)

func newValueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "value",
		Short: "Show the estimated value of the collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				items, err := cmds.Reload(cmd.Context(), "")
				if err != nil {
					return err
				}
				value, err := cmds.CollectionValue(cmd.Context(), len(items))
				if err != nil {
					return err
				}
				rows := [][]string{
					{"Total", "$" + humanize.CommafWithDigits(value.Total, 2)},
					{"Items", humanize.Comma(int64(value.Count))},
					{"Average", "$" + humanize.CommafWithDigits(value.Average(), 2)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <barcode>",
		Short: "Look up a UPC/EAN barcode and add the item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				result, _, err := cmds.Scan(cmd.Context(), args[0], "")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
				return nil
			})
		},
	}
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show item counts and average rating per genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				report, err := cmds.Report(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(report) == 0 {
					fmt.Fprintln(out, "No genres to report")
					return nil
				}
				rows := make([][]string, 0, len(report))
				for _, r := range report {
					rows = append(rows, []string{
						r.Genre,
						humanize.Comma(int64(r.Count)),
						fmt.Sprintf("%.1f", float64(r.AvgRating)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Genre", "Items", "Avg rating"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				return nil
			})
		},
	}
}

func newPricesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prices [title]",
		Short: "Refresh resale prices for one title or the whole collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				items, err := cmds.RefreshPrices(cmd.Context(), title, "")
				if err != nil {
					return err
				}
				priced := 0
				for _, item := range items {
					if item.AveragePrice > 0 {
						priced++
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Prices refreshed: %d of %d items priced\n", priced, len(items))
				return nil
			})
		},
	}
}

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ctx.client()
			status, err := client.Ping(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", client.BaseURL(), status)
			return nil
		},
	}
}
