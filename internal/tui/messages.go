package tui

import (
	"github.com/mmcdole/shelf/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error. The model keeps whatever it was showing.
// Background errors are logged without touching the status line.
type ErrMsg struct {
	Err        error
	Context    string
	Background bool
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ItemsLoadedMsg carries a fresh snapshot for a search term ("" = everything)
type ItemsLoadedMsg struct {
	Items []domain.Item
	Term  string
}

// ReloadFailedMsg reports a failed fetch for a search term
type ReloadFailedMsg struct {
	Err  error
	Term string
}

// MutationDoneMsg carries the re-fetched collection after a successful write.
// SelectID, when set, moves the cursor onto that item.
type MutationDoneMsg struct {
	Items    []domain.Item
	Term     string
	Status   string
	SelectID int64
}

// LoansLoadedMsg carries the lent list; Show opens the loans modal
type LoansLoadedMsg struct {
	Loans []domain.Loan
	Show  bool
}

// MatchesLoadedMsg carries metadata candidates for an item
type MatchesLoadedMsg struct {
	Item    domain.Item
	Matches []domain.MetadataMatch
}

// ValueLoadedMsg carries the collection value
type ValueLoadedMsg struct {
	Value domain.CollectionValue
}

// ReportLoadedMsg carries the per-genre report
type ReportLoadedMsg struct {
	Rows []domain.GenreReport
}

// SettingsLoadedMsg carries settings read at startup
type SettingsLoadedMsg struct {
	Settings domain.Settings
}

// SettingsSavedMsg reports a settings save. Err is set when the backend
// push failed; the local copy is saved either way.
type SettingsSavedMsg struct {
	Settings domain.Settings
	Err      error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message it was scheduled for
type ClearStatusMsg struct {
	Seq int
}
