package domain

import (
	"context"
	"io"
)

// CatalogQueries: Synchronous, cache-only reads.
// All methods return instantly. NEVER block on network.
// Safe to call from View() and startup code.
type CatalogQueries interface {
	CachedItems(term string) ([]Item, bool)
	CachedLoans() ([]Loan, bool)
	Settings() Settings
}

// CatalogCommands: Asynchronous operations that hit the network.
// Must be called from tea.Cmd functions, never from View().
// Every mutation re-fetches the collection and returns the fresh copy;
// local state is never patched in place.
type CatalogCommands interface {
	Reload(ctx context.Context, term string) ([]Item, error)
	Loans(ctx context.Context) ([]Loan, error)

	Add(ctx context.Context, in ItemInput, term string) ([]Item, error)
	Update(ctx context.Context, id int64, in ItemInput, term string) ([]Item, error)
	Delete(ctx context.Context, id int64, term string) ([]Item, error)
	Lend(ctx context.Context, id int64, borrower string, date Date, term string) ([]Item, error)
	Return(ctx context.Context, id int64, term string) ([]Item, error)
	ApplyMatch(ctx context.Context, item Item, match MetadataMatch, term string) ([]Item, error)
	Scan(ctx context.Context, barcode, term string) (ScanResult, []Item, error)
	RefreshPrices(ctx context.Context, title, term string) ([]Item, error)
	Import(ctx context.Context, format ExportFormat, name string, r io.Reader, term string) ([]Item, error)

	Matches(ctx context.Context, item Item) ([]MetadataMatch, error)
	CollectionValue(ctx context.Context, count int) (CollectionValue, error)
	Export(ctx context.Context, format ExportFormat) ([]byte, error)
	Report(ctx context.Context) ([]GenreReport, error)
	Advanced(ctx context.Context, q AdvancedQuery) ([]Item, error)
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) (Settings, error)
}
