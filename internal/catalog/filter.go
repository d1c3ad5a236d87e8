package catalog

import (
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
)

// FilterKind groups filters in the picker
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterStatus
	FilterGenre
	FilterMedia
	FilterYear
)

// Filter is a parsed filter key. The zero value passes everything.
type Filter struct {
	Key    string
	Kind   FilterKind
	target string // status, genre slug or media format
	from   int    // year bucket [from, to); to == 0 means open-ended
	to     int
}

// Genres offered in the picker. The slug after "genre_" is matched against
// each genre entry with punctuation and case removed.
var filterGenres = []struct {
	slug, label string
}{
	{"comedy", "Comedy"},
	{"drama", "Drama"},
	{"action", "Action"},
	{"horror", "Horror"},
	{"scifi", "Sci-Fi"},
	{"thriller", "Thriller"},
	{"animation", "Animation"},
	{"documentary", "Documentary"},
}

// genreAliases lets a slug match other spellings of the same genre
var genreAliases = map[string][]string{
	"scifi": {"sciencefiction"},
}

var yearBuckets = []struct {
	key      string
	label    string
	from, to int
}{
	{"year_2020s", "2020s", 2020, 0},
	{"year_2010s", "2010s", 2010, 2020},
	{"year_2000s", "2000s", 2000, 2010},
}

// ParseFilter resolves a filter key. Empty, "all" and unknown keys are the identity.
func ParseFilter(key string) Filter {
	key = strings.TrimSpace(key)
	switch {
	case key == "available":
		return Filter{Key: key, Kind: FilterStatus, target: string(domain.StatusAvailable)}
	case key == "lent":
		return Filter{Key: key, Kind: FilterStatus, target: string(domain.StatusLent)}
	case strings.HasPrefix(key, "genre_"):
		if slug := slugify(strings.TrimPrefix(key, "genre_")); slug != "" {
			return Filter{Key: key, Kind: FilterGenre, target: slug}
		}
	case strings.HasPrefix(key, "media_"):
		if f, ok := domain.ParseMediaFormat(strings.TrimPrefix(key, "media_")); ok {
			return Filter{Key: key, Kind: FilterMedia, target: string(f)}
		}
	case strings.HasPrefix(key, "year_"):
		for _, b := range yearBuckets {
			if b.key == key {
				return Filter{Key: key, Kind: FilterYear, from: b.from, to: b.to}
			}
		}
	}
	return Filter{Key: "all", Kind: FilterAll}
}

// IsIdentity reports whether the filter passes every item
func (f Filter) IsIdentity() bool {
	return f.Kind == FilterAll
}

// Match reports whether item passes the filter
func (f Filter) Match(item domain.Item) bool {
	switch f.Kind {
	case FilterStatus:
		return string(item.EffectiveStatus()) == f.target
	case FilterGenre:
		return genreMatches(item.Genre, f.target)
	case FilterMedia:
		return string(item.MediaType) == f.target
	case FilterYear:
		year := item.Year()
		if year == 0 {
			return false
		}
		return year >= f.from && (f.to == 0 || year < f.to)
	default:
		return true
	}
}

// Label returns the picker label for the filter
func (f Filter) Label() string {
	for _, opt := range FilterOptions() {
		if opt.Key == f.Key {
			return opt.Label
		}
	}
	return f.Key
}

func genreMatches(genres domain.Genres, slug string) bool {
	targets := append([]string{slug}, genreAliases[slug]...)
	for _, g := range genres {
		gs := slugify(g)
		for _, t := range targets {
			if strings.Contains(gs, t) {
				return true
			}
		}
	}
	return false
}

// Option is one entry in a picker
type Option struct {
	Key   string
	Label string
	Group string
}

// FilterOptions lists the filters the picker offers, in display order
func FilterOptions() []Option {
	opts := []Option{
		{Key: "all", Label: "All", Group: "Status"},
		{Key: "available", Label: "Available", Group: "Status"},
		{Key: "lent", Label: "Lent", Group: "Status"},
	}
	for _, g := range filterGenres {
		opts = append(opts, Option{Key: "genre_" + g.slug, Label: g.label, Group: "Genre"})
	}
	for _, f := range domain.MediaFormats() {
		opts = append(opts, Option{Key: "media_" + f.Slug(), Label: f.Label(), Group: "Media type"})
	}
	for _, b := range yearBuckets {
		opts = append(opts, Option{Key: b.key, Label: b.label, Group: "Decade"})
	}
	return opts
}

// slugify lowercases s and drops everything but letters and digits
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
