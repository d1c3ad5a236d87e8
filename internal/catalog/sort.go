package catalog

import (
	"cmp"
	"slices"

	"github.com/mmcdole/shelf/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names a sort order
type SortKey string

const (
	SortTitle        SortKey = "title"
	SortTitleDesc    SortKey = "titleDesc"
	SortGenre        SortKey = "genre"
	SortRating       SortKey = "rating"     // highest first
	SortRatingDesc   SortKey = "ratingDesc" // lowest first
	SortMediaType    SortKey = "mediaType"
	SortReleaseDate  SortKey = "releaseDate"
	SortRuntime      SortKey = "runtime"
	SortStatus       SortKey = "status"
	SortAveragePrice SortKey = "averagePrice"
	SortAddedDate    SortKey = "addedDate"
)

// SortOptions lists the sort orders the picker offers
func SortOptions() []Option {
	return []Option{
		{Key: string(SortTitle), Label: "Title (A-Z)"},
		{Key: string(SortTitleDesc), Label: "Title (Z-A)"},
		{Key: string(SortGenre), Label: "Genre"},
		{Key: string(SortRating), Label: "Rating (High-Low)"},
		{Key: string(SortRatingDesc), Label: "Rating (Low-High)"},
		{Key: string(SortMediaType), Label: "Media Type"},
		{Key: string(SortReleaseDate), Label: "Release Date"},
		{Key: string(SortRuntime), Label: "Runtime"},
		{Key: string(SortStatus), Label: "Status"},
		{Key: string(SortAveragePrice), Label: "Average Price"},
		{Key: string(SortAddedDate), Label: "Date Added"},
	}
}

// Label returns the picker label for the key
func (k SortKey) Label() string {
	for _, opt := range SortOptions() {
		if opt.Key == string(k) {
			return opt.Label
		}
	}
	return string(k)
}

// Known reports whether k is a recognised sort key
func (k SortKey) Known() bool {
	for _, opt := range SortOptions() {
		if opt.Key == string(k) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy of items. Unknown keys return the input order.
// locale is a BCP 47 tag used for text comparison ("" means English).
func Sort(items []domain.Item, key SortKey, locale string) []domain.Item {
	out := slices.Clone(items)
	less := comparator(key, locale)
	if less == nil {
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

func comparator(key SortKey, locale string) func(a, b domain.Item) int {
	// A Collator is not safe for concurrent use; one per sort call.
	col := newCollator(locale)
	text := func(a, b string) int { return col.CompareString(a, b) }

	switch key {
	case SortTitle:
		return func(a, b domain.Item) int { return text(a.Title, b.Title) }
	case SortTitleDesc:
		return func(a, b domain.Item) int { return text(b.Title, a.Title) }
	case SortGenre:
		return func(a, b domain.Item) int { return text(a.Genre.String(), b.Genre.String()) }
	case SortRating:
		return func(a, b domain.Item) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortRatingDesc:
		return func(a, b domain.Item) int { return cmp.Compare(a.Rating, b.Rating) }
	case SortMediaType:
		return func(a, b domain.Item) int { return text(string(a.MediaType), string(b.MediaType)) }
	case SortReleaseDate:
		return func(a, b domain.Item) int { return newestFirst(a.ReleaseDate, b.ReleaseDate) }
	case SortRuntime:
		return func(a, b domain.Item) int { return cmp.Compare(b.Runtime, a.Runtime) }
	case SortStatus:
		return func(a, b domain.Item) int {
			return text(string(a.EffectiveStatus()), string(b.EffectiveStatus()))
		}
	case SortAveragePrice:
		return func(a, b domain.Item) int { return cmp.Compare(b.AveragePrice, a.AveragePrice) }
	case SortAddedDate:
		return func(a, b domain.Item) int { return newestFirst(a.AddedDate, b.AddedDate) }
	default:
		return nil
	}
}

// newestFirst orders dates descending with unknown dates last
func newestFirst(a, b domain.Date) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	case a.Before(b):
		return 1
	case b.Before(a):
		return -1
	}
	return 0
}

func newCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}
