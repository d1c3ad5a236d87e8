package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/shelf/internal/barcode"
	"github.com/mmcdole/shelf/internal/domain"
)

// Commands provides asynchronous operations that hit the network.
// Implements domain.CatalogCommands.
type Commands struct {
	backend  domain.Backend
	store    domain.Store
	logger   *slog.Logger
	pageSize int
	now      func() time.Time
}

// NewCommands creates a new Commands instance.
func NewCommands(backend domain.Backend, store domain.Store, logger *slog.Logger) *Commands {
	if logger == nil {
		logger = slog.Default()
	}
	return &Commands{
		backend:  backend,
		store:    store,
		logger:   logger,
		pageSize: defaultPageSize,
		now:      time.Now,
	}
}

var _ domain.CatalogCommands = (*Commands)(nil)

// === Reads ===

// Reload fetches the collection, or the backend search results for term
func (c *Commands) Reload(ctx context.Context, term string) ([]domain.Item, error) {
	term = strings.TrimSpace(term)

	var (
		items []domain.Item
		err   error
	)
	if term != "" {
		items, err = c.backend.SearchItems(ctx, term)
	} else {
		items, err = fetchAll(ctx, c.backend.ListItems, c.pageSize)
	}
	if err != nil {
		c.logger.Error("failed to fetch items", "term", term, "error", err)
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}

	if err := c.store.SaveItems(term, items); err != nil {
		c.logger.Error("failed to save items", "term", term, "error", err)
	}
	c.logger.Debug("fetched items", "term", term, "count", len(items))
	return items, nil
}

func (c *Commands) Loans(ctx context.Context) ([]domain.Loan, error) {
	loans, err := c.backend.LentItems(ctx)
	if err != nil {
		c.logger.Error("failed to fetch loans", "error", err)
		return nil, err
	}
	if err := c.store.SaveLoans(loans); err != nil {
		c.logger.Error("failed to save loans", "error", err)
	}
	return loans, nil
}

// Matches returns metadata candidates, closest title first
func (c *Commands) Matches(ctx context.Context, item domain.Item) ([]domain.MetadataMatch, error) {
	matches, err := c.backend.MetadataMatches(ctx, item.ID)
	if errors.Is(err, domain.ErrNotFound) {
		// The backend answers 404 when nothing matched
		return []domain.MetadataMatch{}, nil
	}
	if err != nil {
		c.logger.Error("failed to fetch metadata matches", "itemID", item.ID, "error", err)
		return nil, err
	}

	title := strings.ToLower(item.Title)
	for i := range matches {
		matches[i].Distance = fuzzy.LevenshteinDistance(title, strings.ToLower(matches[i].Title))
	}
	slices.SortStableFunc(matches, func(a, b domain.MetadataMatch) int {
		return a.Distance - b.Distance
	})
	return matches, nil
}

// CollectionValue totals the collection's average prices. count is the
// number of items the caller is showing and only feeds the average.
func (c *Commands) CollectionValue(ctx context.Context, count int) (domain.CollectionValue, error) {
	total, err := c.backend.TotalValue(ctx)
	if err != nil {
		c.logger.Error("failed to calculate collection value", "error", err)
		return domain.CollectionValue{}, err
	}
	return domain.CollectionValue{Total: total, Count: count, UpdatedAt: c.now()}, nil
}

func (c *Commands) Export(ctx context.Context, format domain.ExportFormat) ([]byte, error) {
	data, err := c.backend.Export(ctx, format)
	if err != nil {
		c.logger.Error("failed to export", "format", format, "error", err)
		return nil, err
	}
	return data, nil
}

func (c *Commands) Report(ctx context.Context) ([]domain.GenreReport, error) {
	rows, err := c.backend.Report(ctx)
	if err != nil {
		c.logger.Error("failed to generate report", "error", err)
		return nil, err
	}
	return rows, nil
}

func (c *Commands) Advanced(ctx context.Context, q domain.AdvancedQuery) ([]domain.Item, error) {
	if q.IsEmpty() {
		return nil, domain.Invalid("advanced search needs at least one field")
	}
	items, err := c.backend.AdvancedSearch(ctx, q)
	if err != nil {
		c.logger.Error("failed advanced search", "error", err)
		return nil, err
	}
	return items, nil
}

// === Settings ===

// LoadSettings returns the local settings, falling back to the backend's
// copy on first run. A backend without saved settings yields the defaults.
func (c *Commands) LoadSettings(ctx context.Context) (domain.Settings, error) {
	if s, ok := c.store.GetSettings(); ok {
		return s, nil
	}
	s, err := c.backend.LoadSettings(ctx)
	if err != nil {
		c.logger.Warn("failed to load backend settings, using defaults", "error", err)
		return domain.DefaultSettings(), nil
	}
	if err := c.store.SaveSettings(s); err != nil {
		c.logger.Error("failed to save settings", "error", err)
	}
	return s, nil
}

// SaveSettings stores settings locally, then pushes them to the backend.
// The local copy is kept even if the push fails.
func (c *Commands) SaveSettings(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	s = s.Normalized()
	if err := c.store.SaveSettings(s); err != nil {
		c.logger.Error("failed to save settings", "error", err)
		return s, err
	}
	if err := c.backend.SaveSettings(ctx, s); err != nil {
		c.logger.Error("failed to push settings", "error", err)
		return s, err
	}
	return s, nil
}

// === Mutations (each re-fetches on success) ===

func (c *Commands) Add(ctx context.Context, in domain.ItemInput, term string) ([]domain.Item, error) {
	in, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, "add", term, func() error {
		return c.backend.AddItem(ctx, in)
	})
}

func (c *Commands) Update(ctx context.Context, id int64, in domain.ItemInput, term string) ([]domain.Item, error) {
	in, err := validateInput(in)
	if err != nil {
		return nil, err
	}
	return c.mutate(ctx, "update", term, func() error {
		return c.backend.UpdateItem(ctx, id, in)
	})
}

func (c *Commands) Delete(ctx context.Context, id int64, term string) ([]domain.Item, error) {
	return c.mutate(ctx, "delete", term, func() error {
		return c.backend.DeleteItem(ctx, id)
	})
}

func (c *Commands) Lend(ctx context.Context, id int64, borrower string, date domain.Date, term string) ([]domain.Item, error) {
	borrower = strings.TrimSpace(borrower)
	if borrower == "" {
		return nil, domain.Invalid("borrower name is required")
	}
	if date.IsZero() {
		return nil, domain.Invalid("lend date is required")
	}
	return c.mutate(ctx, "lend", term, func() error {
		return c.backend.LendItem(ctx, id, borrower, date)
	})
}

func (c *Commands) Return(ctx context.Context, id int64, term string) ([]domain.Item, error) {
	return c.mutate(ctx, "return", term, func() error {
		return c.backend.ReturnItem(ctx, id)
	})
}

func (c *Commands) ApplyMatch(ctx context.Context, item domain.Item, match domain.MetadataMatch, term string) ([]domain.Item, error) {
	return c.mutate(ctx, "apply metadata", term, func() error {
		return c.backend.ApplyMatch(ctx, item.ID, match)
	})
}

func (c *Commands) RefreshPrices(ctx context.Context, title, term string) ([]domain.Item, error) {
	return c.mutate(ctx, "price refresh", term, func() error {
		return c.backend.RefreshPrices(ctx, strings.TrimSpace(title))
	})
}

func (c *Commands) Import(ctx context.Context, format domain.ExportFormat, name string, r io.Reader, term string) ([]domain.Item, error) {
	return c.mutate(ctx, "import", term, func() error {
		return c.backend.Import(ctx, format, name, r)
	})
}

// Scan validates a barcode, lets the backend resolve and add it, then reloads
func (c *Commands) Scan(ctx context.Context, code, term string) (domain.ScanResult, []domain.Item, error) {
	normalized, err := barcode.Normalize(code)
	if err != nil {
		return domain.ScanResult{}, nil, err
	}

	var result domain.ScanResult
	items, err := c.mutate(ctx, "scan", term, func() error {
		var scanErr error
		result, scanErr = c.backend.ScanBarcode(ctx, normalized)
		return scanErr
	})
	return result, items, err
}

// mutate runs call and, if it succeeds, re-fetches the collection and loans.
// A failed call leaves every cache untouched.
func (c *Commands) mutate(ctx context.Context, op, term string, call func() error) ([]domain.Item, error) {
	if err := call(); err != nil {
		c.logger.Error("failed to "+op, "error", err)
		return nil, err
	}
	c.logger.Info(op+" succeeded")

	c.store.InvalidateItems()
	items, err := c.Reload(ctx, term)
	if err != nil {
		return nil, &domain.ReloadError{Op: op, Err: err}
	}
	if _, err := c.Loans(ctx); err != nil {
		c.logger.Warn("failed to refresh loans after "+op, "error", err)
	}
	return items, nil
}

func validateInput(in domain.ItemInput) (domain.ItemInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, domain.Invalid("title is required")
	}
	if !in.MediaType.Valid() {
		return in, domain.Invalid("unknown media type %q", in.MediaType)
	}
	return in, nil
}
