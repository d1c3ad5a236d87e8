package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
)

// Command factories for async operations. Each runs with its own deadline.

func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), d)
}

// ReloadCmd fetches the collection or the search results for term
func ReloadCmd(svc domain.CatalogCommands, timeout time.Duration, term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		items, err := svc.Reload(ctx, term)
		if err != nil {
			return ReloadFailedMsg{Err: err, Term: term}
		}
		return ItemsLoadedMsg{Items: items, Term: term}
	}
}

// LoansCmd fetches the lent list
func LoansCmd(svc domain.CatalogCommands, timeout time.Duration, show bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		loans, err := svc.Loans(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading loans", Background: !show}
		}
		return LoansLoadedMsg{Loans: loans, Show: show}
	}
}

// mutationCmd wraps a write that returns the re-fetched collection
func mutationCmd(
	timeout time.Duration,
	term, context, status string,
	run func(ctx context.Context) ([]domain.Item, error),
) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		items, err := run(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: context}
		}
		return MutationDoneMsg{Items: items, Term: term, Status: status}
	}
}

// AddCmd creates an item
func AddCmd(svc domain.CatalogCommands, timeout time.Duration, in domain.ItemInput, term string) tea.Cmd {
	return mutationCmd(timeout, term, "adding item", "Added: "+in.Title,
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.Add(ctx, in, term)
		})
}

// UpdateCmd edits an item
func UpdateCmd(svc domain.CatalogCommands, timeout time.Duration, id int64, in domain.ItemInput, term string) tea.Cmd {
	return mutationCmd(timeout, term, "updating item", "Updated: "+in.Title,
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.Update(ctx, id, in, term)
		})
}

// DeleteCmd removes an item
func DeleteCmd(svc domain.CatalogCommands, timeout time.Duration, item domain.Item, term string) tea.Cmd {
	return mutationCmd(timeout, term, "deleting item", "Deleted: "+item.Title,
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.Delete(ctx, item.ID, term)
		})
}

// LendCmd lends an item to a borrower
func LendCmd(svc domain.CatalogCommands, timeout time.Duration, item domain.Item, borrower string, date domain.Date, term string) tea.Cmd {
	return mutationCmd(timeout, term, "lending item", fmt.Sprintf("Lent %s to %s", item.Title, borrower),
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.Lend(ctx, item.ID, borrower, date, term)
		})
}

// ReturnCmd marks a lent item as returned
func ReturnCmd(svc domain.CatalogCommands, timeout time.Duration, item domain.Item, term string) tea.Cmd {
	return mutationCmd(timeout, term, "returning item", "Returned: "+item.Title,
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.Return(ctx, item.ID, term)
		})
}

// ApplyMatchCmd overwrites an item's metadata with the chosen match
func ApplyMatchCmd(svc domain.CatalogCommands, timeout time.Duration, item domain.Item, match domain.MetadataMatch, term string) tea.Cmd {
	return mutationCmd(timeout, term, "updating metadata", "Metadata updated: "+match.Title,
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.ApplyMatch(ctx, item, match, term)
		})
}

// RefreshPricesCmd re-prices one title, or everything when title is empty
func RefreshPricesCmd(svc domain.CatalogCommands, timeout time.Duration, title, term string) tea.Cmd {
	status := "Prices refreshed"
	if title != "" {
		status = "Price refreshed: " + title
	}
	return mutationCmd(timeout, term, "refreshing prices", status,
		func(ctx context.Context) ([]domain.Item, error) {
			return svc.RefreshPrices(ctx, title, term)
		})
}

// ScanCmd resolves a barcode and adds the item
func ScanCmd(svc domain.CatalogCommands, timeout time.Duration, code, term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		result, items, err := svc.Scan(ctx, code, term)
		if err != nil {
			return ErrMsg{Err: err, Context: "scanning barcode"}
		}
		return MutationDoneMsg{Items: items, Term: term, Status: result.Summary(), SelectID: result.ID}
	}
}

// MatchesCmd fetches metadata candidates for an item
func MatchesCmd(svc domain.CatalogCommands, timeout time.Duration, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		matches, err := svc.Matches(ctx, item)
		if err != nil {
			return ErrMsg{Err: err, Context: "fetching metadata"}
		}
		return MatchesLoadedMsg{Item: item, Matches: matches}
	}
}

// ValueCmd computes the collection value
func ValueCmd(svc domain.CatalogCommands, timeout time.Duration, count int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		value, err := svc.CollectionValue(ctx, count)
		if err != nil {
			return ErrMsg{Err: err, Context: "calculating value"}
		}
		return ValueLoadedMsg{Value: value}
	}
}

// ReportCmd fetches the genre report
func ReportCmd(svc domain.CatalogCommands, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		rows, err := svc.Report(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "generating report"}
		}
		return ReportLoadedMsg{Rows: rows}
	}
}

// LoadSettingsCmd reads settings, falling back to the backend on first run
func LoadSettingsCmd(svc domain.CatalogCommands, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		s, err := svc.LoadSettings(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading settings", Background: true}
		}
		return SettingsLoadedMsg{Settings: s}
	}
}

// SaveSettingsCmd stores settings locally and on the backend
func SaveSettingsCmd(svc domain.CatalogCommands, timeout time.Duration, s domain.Settings) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(timeout)
		defer cancel()

		saved, err := svc.SaveSettings(ctx, s)
		return SettingsSavedMsg{Settings: saved, Err: err}
	}
}

// ClearStatusCmd clears status message seq after a delay
func ClearStatusCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
