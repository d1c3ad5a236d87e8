package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/spf13/cobra"
)

type listOptions struct {
	filter string
	sort   string
	search string
	find   string
	json   bool

	advanced bool // criteria search; an empty result is never "empty collection"
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the collection as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, ctx, opts)
		},
	}
	addListFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.search, "search", "", "Backend title search (empty lists everything)")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var opts listOptions
	var q domain.AdvancedQuery

	cmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search by title, or by genre, rating and release date",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Title = strings.TrimSpace(strings.Join(args, " "))
			if q.Genre == "" && q.MinRating == 0 && q.ReleaseDate == "" {
				if q.Title == "" {
					return domain.Invalid("give a title or at least one of --genre, --min-rating, --released")
				}
				opts.search = q.Title
				return runList(cmd, ctx, opts)
			}
			opts.search = q.Title
			opts.advanced = true
			return runListWith(cmd, ctx, opts, func(c context.Context, cmds *catalog.Commands) ([]domain.Item, error) {
				return cmds.Advanced(c, q)
			})
		},
	}
	addListFlags(cmd, &opts)
	cmd.Flags().StringVar(&q.Genre, "genre", "", "Genre contains")
	cmd.Flags().Float64Var(&q.MinRating, "min-rating", 0, "Minimum rating (0-10)")
	cmd.Flags().StringVar(&q.ReleaseDate, "released", "", "Release date or year")
	return cmd
}

func addListFlags(cmd *cobra.Command, opts *listOptions) {
	cmd.Flags().StringVar(&opts.filter, "filter", "all", "Filter key (all, available, lent, genre_<slug>, media_<slug>, year_<decade>)")
	cmd.Flags().StringVar(&opts.sort, "sort", string(catalog.SortTitle), "Sort key")
	cmd.Flags().StringVar(&opts.find, "find", "", "Fuzzy-match titles within the result")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output JSON")
}

func runList(cmd *cobra.Command, ctx *commandContext, opts listOptions) error {
	return runListWith(cmd, ctx, opts, func(c context.Context, cmds *catalog.Commands) ([]domain.Item, error) {
		return cmds.Reload(c, opts.search)
	})
}

// runListWith fetches with fetch, then filters, sorts and prints locally
func runListWith(
	cmd *cobra.Command,
	ctx *commandContext,
	opts listOptions,
	fetch func(context.Context, *catalog.Commands) ([]domain.Item, error),
) error {
	key := catalog.SortKey(opts.sort)
	if !key.Known() {
		return fmt.Errorf("unknown sort key %q", opts.sort)
	}
	filter := catalog.ParseFilter(opts.filter)
	if filter.IsIdentity() && opts.filter != "" && opts.filter != "all" {
		return fmt.Errorf("unknown filter %q", opts.filter)
	}

	return ctx.withCatalog(func(cmds *catalog.Commands) error {
		items, err := fetch(cmd.Context(), cmds)
		if err != nil {
			return err
		}

		view := catalog.View{Filter: filter, Sort: key, Query: opts.find, Locale: ctx.configValue().UI.Locale}
		visible := view.Apply(items)

		if opts.json {
			return writeJSON(cmd, visible)
		}
		out := cmd.OutOrStdout()
		switch {
		case len(items) == 0 && opts.search == "" && !opts.advanced:
			fmt.Fprintln(out, "No items in your collection")
			return nil
		case len(visible) == 0:
			fmt.Fprintln(out, "No items match")
			return nil
		}
		printItems(out, visible)
		if len(visible) != len(items) {
			fmt.Fprintf(out, "%d of %d items\n", len(visible), len(items))
		} else {
			fmt.Fprintf(out, "%s items\n", humanize.Comma(int64(len(items))))
		}
		return nil
	})
}

func printItems(out io.Writer, items []domain.Item) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		year := ""
		if y := item.Year(); y > 0 {
			year = strconv.Itoa(y)
		}
		rating := ""
		if item.Rating > 0 {
			rating = fmt.Sprintf("%.1f", float64(item.Rating))
		}
		status := string(item.EffectiveStatus())
		if item.IsLent() && item.BorrowerName != "" {
			status += " (" + item.BorrowerName + ")"
		}
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			year,
			item.MediaType.Label(),
			rating,
			item.FormattedRuntime(),
			item.FormattedPrice(),
			status,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"ID", "Title", "Year", "Media", "Rating", "Runtime", "Price", "Status"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
}

func newLoansCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "loans",
		Short: "List lent items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(cmds *catalog.Commands) error {
				loans, err := cmds.Loans(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(loans) == 0 {
					fmt.Fprintln(out, "Nothing is lent out")
					return nil
				}
				rows := make([][]string, 0, len(loans))
				for _, l := range loans {
					since := ""
					if !l.LendDate.IsZero() {
						since = l.LendDate.String() + " (" + humanize.Time(l.LendDate.Time()) + ")"
					}
					rows = append(rows, []string{l.Title, l.BorrowerName, since})
				}
				fmt.Fprintln(out, renderTable([]string{"Title", "Borrower", "Since"}, rows, nil))
				return nil
			})
		},
	}
}
