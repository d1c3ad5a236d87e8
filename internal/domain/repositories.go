package domain

import (
	"context"
	"io"
)

// ExportFormat is a file format supported by export and import
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
	ExportXML  ExportFormat = "xml"
)

// CatalogRepository provides item reads and writes (implemented by the backend client)
type CatalogRepository interface {
	// ListItems returns one page of the collection (pages start at 1)
	ListItems(ctx context.Context, page, limit int) ([]Item, error)

	// SearchItems returns items whose title matches term, most relevant first
	SearchItems(ctx context.Context, term string) ([]Item, error)

	// AdvancedSearch filters on several fields at once
	AdvancedSearch(ctx context.Context, q AdvancedQuery) ([]Item, error)

	AddItem(ctx context.Context, in ItemInput) error
	UpdateItem(ctx context.Context, id int64, in ItemInput) error
	DeleteItem(ctx context.Context, id int64) error
}

// LoanRepository tracks items lent to borrowers
type LoanRepository interface {
	LendItem(ctx context.Context, id int64, borrower string, date Date) error
	ReturnItem(ctx context.Context, id int64) error
	LentItems(ctx context.Context) ([]Loan, error)
}

// PricingRepository exposes resale-price operations
type PricingRepository interface {
	// RefreshPrices updates average prices; an empty title refreshes every item
	RefreshPrices(ctx context.Context, title string) error
	TotalValue(ctx context.Context) (float64, error)
}

// MetadataRepository resolves external metadata for items
type MetadataRepository interface {
	MetadataMatches(ctx context.Context, id int64) ([]MetadataMatch, error)
	ApplyMatch(ctx context.Context, id int64, match MetadataMatch) error
	ScanBarcode(ctx context.Context, barcode string) (ScanResult, error)
}

// ExchangeRepository moves the whole catalog in and out of the backend
type ExchangeRepository interface {
	Export(ctx context.Context, format ExportFormat) ([]byte, error)
	Import(ctx context.Context, format ExportFormat, name string, r io.Reader) error
	Report(ctx context.Context) ([]GenreReport, error)
}

// SettingsRepository persists settings on the backend
type SettingsRepository interface {
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

// Backend is everything the catalog service needs from the server
type Backend interface {
	CatalogRepository
	LoanRepository
	PricingRepository
	MetadataRepository
	ExchangeRepository
	SettingsRepository
}
