package catalog

import "github.com/mmcdole/shelf/internal/domain"

// Queries provides synchronous, cache-only reads.
// Implements domain.CatalogQueries.
type Queries struct {
	store domain.Store
}

// NewQueries creates a new Queries instance.
func NewQueries(store domain.Store) *Queries {
	return &Queries{store: store}
}

func (q *Queries) CachedItems(term string) ([]domain.Item, bool) {
	return q.store.GetItems(term)
}

func (q *Queries) CachedLoans() ([]domain.Loan, bool) {
	return q.store.GetLoans()
}

// Settings returns the stored settings, or the defaults when nothing is saved
func (q *Queries) Settings() domain.Settings {
	s, _ := q.store.GetSettings()
	return s
}

var _ domain.CatalogQueries = (*Queries)(nil)
