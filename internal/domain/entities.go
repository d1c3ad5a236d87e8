package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MediaFormat is the physical or digital format of a catalog item
type MediaFormat string

const (
	FormatDVD       MediaFormat = "DVD"
	FormatBluRay    MediaFormat = "Blu-ray"
	FormatDigital   MediaFormat = "Digital"
	FormatVHS       MediaFormat = "VHS"
	Format4KUHD     MediaFormat = "4K UHD"
	FormatStreaming MediaFormat = "Streaming"
	FormatCD        MediaFormat = "CD"
	FormatCassette  MediaFormat = "Cassette"
	FormatVinyl     MediaFormat = "Vinyl"
	FormatMagazine  MediaFormat = "Magazine"
	FormatAudioBook MediaFormat = "AudioBook"
	FormatPodcast   MediaFormat = "Podcast"
	FormatComic     MediaFormat = "Comic"
)

// MediaFormats returns every known format in menu order
func MediaFormats() []MediaFormat {
	return []MediaFormat{
		FormatDVD, FormatBluRay, FormatDigital, FormatVHS, Format4KUHD,
		FormatStreaming, FormatCD, FormatCassette, FormatVinyl,
		FormatMagazine, FormatAudioBook, FormatPodcast, FormatComic,
	}
}

// Valid reports whether f is one of the known formats
func (f MediaFormat) Valid() bool {
	for _, known := range MediaFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// Label returns the display name for the format
func (f MediaFormat) Label() string {
	if f == FormatAudioBook {
		return "Audiobook"
	}
	if f == "" {
		return "Unknown"
	}
	return string(f)
}

// Slug returns the lowercase key used in filter identifiers ("Blu-ray" -> "bluray")
func (f MediaFormat) Slug() string {
	var b strings.Builder
	for _, r := range strings.ToLower(string(f)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseMediaFormat resolves a format from its name or slug, case-insensitively
func ParseMediaFormat(s string) (MediaFormat, bool) {
	s = strings.TrimSpace(s)
	for _, f := range MediaFormats() {
		if strings.EqualFold(string(f), s) || f.Slug() == strings.ToLower(s) {
			return f, true
		}
	}
	return "", false
}

// Status is the lifecycle state of an item
type Status string

const (
	StatusAvailable Status = "Available"
	StatusLent      Status = "Lent"
)

// Item is one tracked physical or digital media record.
// The backend owns it; the client only holds a cached copy.
type Item struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Genre        Genres      `json:"genre"`
	MediaType    MediaFormat `json:"media_type"`
	ReleaseDate  Date        `json:"release_date"`
	Runtime      Number      `json:"runtime"` // minutes
	Rating       Number      `json:"rating"`  // 0-10
	AveragePrice Number      `json:"average_price"`
	Currency     string      `json:"currency"`
	CoverURL     string      `json:"cover_url"`
	Description  string      `json:"description"`
	Status       Status      `json:"status"`
	BorrowerName string      `json:"borrower_name"`
	LendDate     Date        `json:"lend_date"`
	AddedDate    Date        `json:"added_date"`
	TMDBID       Number      `json:"tmdb_id"`
}

// EffectiveStatus treats a missing status as Available
func (i Item) EffectiveStatus() Status {
	if i.Status == "" {
		return StatusAvailable
	}
	return i.Status
}

// IsLent reports whether the item is currently on loan
func (i Item) IsLent() bool {
	return i.EffectiveStatus() == StatusLent
}

// Year returns the release year, or 0 if unknown
func (i Item) Year() int {
	if i.ReleaseDate.IsZero() {
		return 0
	}
	return i.ReleaseDate.Time().Year()
}

// FormattedRuntime returns the runtime in a human-readable format
func (i Item) FormattedRuntime() string {
	mins := int(i.Runtime)
	if mins <= 0 {
		return ""
	}
	h := mins / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormattedPrice returns the average price with its currency, or "" if unpriced
func (i Item) FormattedPrice() string {
	if i.AveragePrice <= 0 {
		return ""
	}
	cur := i.Currency
	if cur == "" {
		cur = "USD"
	}
	if cur == "USD" {
		return fmt.Sprintf("$%.2f", float64(i.AveragePrice))
	}
	return fmt.Sprintf("%.2f %s", float64(i.AveragePrice), cur)
}

// Loan is an entry from the lent list
type Loan struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	BorrowerName string `json:"borrower_name"`
	LendDate     Date   `json:"lend_date"`
}

// MetadataMatch is a candidate external-database record offered to enrich an item
type MetadataMatch struct {
	TMDBID      Number `json:"tmdb_id"`
	Title       string `json:"title"`
	Genre       Genres `json:"genre"`
	ReleaseDate Date   `json:"release_date"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	Rating      Number `json:"rating"`

	// Distance is the edit distance to the item title, set when ranking
	Distance int `json:"-"`

	// Raw is the match exactly as the backend sent it; it is echoed back on apply
	Raw json.RawMessage `json:"-"`
}

// ScanResult is what the backend reports after resolving a barcode
type ScanResult struct {
	Message   string      `json:"message"`
	Title     string      `json:"title"`
	MediaType MediaFormat `json:"media_type"`
	ID        int64       `json:"movie_id"`
}

// Summary returns the status line text for a completed scan
func (r ScanResult) Summary() string {
	if r.Title == "" {
		return "Added item"
	}
	if r.MediaType != "" {
		return fmt.Sprintf("Added %s (%s)", r.Title, r.MediaType.Label())
	}
	return "Added " + r.Title
}

// GenreReport is one row of the per-genre collection report
type GenreReport struct {
	Genre     string `json:"genre"`
	Count     int    `json:"count"`
	AvgRating Number `json:"avg_rating"`
}

// CollectionValue summarises the estimated resale value of the collection
type CollectionValue struct {
	Total     float64
	Count     int
	UpdatedAt time.Time
}

// Average returns the mean value per title (0 for an empty collection)
func (v CollectionValue) Average() float64 {
	if v.Count == 0 {
		return 0
	}
	return v.Total / float64(v.Count)
}

// AdvancedQuery holds the optional criteria of a multi-field search
type AdvancedQuery struct {
	Title       string  `json:"title,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	MinRating   float64 `json:"rating,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
}

// IsEmpty reports whether no criteria are set
func (q AdvancedQuery) IsEmpty() bool {
	return q.Title == "" && q.Genre == "" && q.MinRating == 0 && q.ReleaseDate == ""
}

// ItemInput is the writable subset of an item sent on add/update
type ItemInput struct {
	Title     string      `json:"title"`
	MediaType MediaFormat `json:"media_type"`
}
