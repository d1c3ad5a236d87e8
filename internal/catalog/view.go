package catalog

import (
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/sahilm/fuzzy"
)

// View is the client-side presentation state: which items are visible and in what order.
type View struct {
	Filter Filter
	Sort   SortKey
	Query  string // local quick-find, never sent to the backend
	Locale string
}

// NewView returns the default view: everything, sorted by title
func NewView(locale string) View {
	return View{Filter: ParseFilter("all"), Sort: SortTitle, Locale: locale}
}

// Apply filters, sorts and narrows items. The input is never modified.
// Quick-find results keep the sort order rather than match rank.
func (v View) Apply(items []domain.Item) []domain.Item {
	filtered := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if v.Filter.Match(item) {
			filtered = append(filtered, item)
		}
	}

	sorted := Sort(filtered, v.Sort, v.Locale)

	query := strings.TrimSpace(v.Query)
	if query == "" {
		return sorted
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), titleSource(sorted))
	keep := make([]bool, len(sorted))
	for _, m := range matches {
		keep[m.Index] = true
	}
	narrowed := make([]domain.Item, 0, len(matches))
	for i, item := range sorted {
		if keep[i] {
			narrowed = append(narrowed, item)
		}
	}
	return narrowed
}

// titleSource implements fuzzy.Source over item titles
type titleSource []domain.Item

func (s titleSource) String(i int) string { return strings.ToLower(s[i].Title) }
func (s titleSource) Len() int            { return len(s) }
