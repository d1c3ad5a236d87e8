package domain

// Store is the local cache: the last catalog snapshot plus user settings.
// Reads never touch the network.
type Store interface {
	// === Catalog snapshot ===
	GetItems(term string) ([]Item, bool)
	SaveItems(term string, items []Item) error
	GetLoans() ([]Loan, bool)
	SaveLoans(loans []Loan) error
	InvalidateItems()

	// === Settings (fixed keys) ===
	GetSettings() (Settings, bool)
	SaveSettings(s Settings) error

	Close() error
}
