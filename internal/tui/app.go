package tui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/components"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// ViewMode selects how the collection is laid out
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

// ParseViewMode maps the config value onto a mode; anything but "list" is grid
func ParseViewMode(s string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(s), "list") {
		return ViewList
	}
	return ViewGrid
}

// inputPurpose records what the single-line input modal was opened for
type inputPurpose int

const (
	inputNone inputPurpose = iota
	inputSearch
	inputQuickFind
	inputScan
	inputPrices
)

// formPurpose records what the form modal was opened for
type formPurpose int

const (
	formNone formPurpose = iota
	formAdd
	formEdit
	formLend
	formSettings
)

// pickerPurpose records what the picker was opened for
type pickerPurpose int

const (
	pickerNone pickerPurpose = iota
	pickerFilter
	pickerSort
)

// Empty-state texts
const (
	emptyCollectionText = "No items in your collection"
	emptyMatchText      = "No items match"
	loadingText         = "Loading collection…"
	loadFailedText      = "Could not load collection (r to retry)"
)

const statusTimeout = 3 * time.Second

// Options configures the model
type Options struct {
	Timeout     time.Duration
	Locale      string
	DefaultView string
	Logger      *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Commands domain.CatalogCommands
	Queries  domain.CatalogQueries

	timeout time.Duration
	logger  *slog.Logger

	// Data
	items    []domain.Item // last snapshot for term, as the backend returned it
	visible  []domain.Item // items after filter, sort and quick-find
	loans    []domain.Loan
	term     string
	loaded   bool // a snapshot for term has been shown
	searched bool // the user ran a search, so settings no longer pick the term
	view     catalog.View
	settings domain.Settings

	// UI Components
	Grid      components.Grid
	List      components.List
	Inspector components.Inspector
	Picker    components.Picker
	Input     components.InputModal
	Form      components.Form
	Confirm   components.ConfirmModal
	Matches   components.MatchModal
	Info      components.InfoModal
	Spinner   spinner.Model
	Help      help.Model

	Mode          ViewMode
	ShowInspector bool

	// Modal bookkeeping
	inputFor  inputPurpose
	formFor   formPurpose
	pickerFor pickerPurpose
	target    domain.Item // item a form or confirm acts on

	// UI State
	Loading     bool
	StatusMsg   string
	StatusIsErr bool
	pending     int  // foreground commands in flight
	loadFailed  bool // last fetch for term failed with nothing to show
	statusSeq   int

	// Dimensions
	Width  int
	Height int
}

// NewModel creates a new application model. Cached data is shown
// immediately; Init fetches fresh data.
func NewModel(cmds domain.CatalogCommands, queries domain.CatalogQueries, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	settings := queries.Settings()
	styles.Use(settings.DarkMode)

	m := Model{
		Commands:      cmds,
		Queries:       queries,
		timeout:       opts.Timeout,
		logger:        logger,
		term:          strings.TrimSpace(settings.DefaultSearchTerm),
		view:          catalog.NewView(opts.Locale),
		settings:      settings,
		Grid:          components.NewGrid(),
		List:          components.NewList(),
		Inspector:     components.NewInspector(),
		Picker:        components.NewPicker(),
		Input:         components.NewInputModal(),
		Form:          components.NewForm(),
		Matches:       components.NewMatchModal(),
		Info:          components.NewInfoModal(),
		Spinner:       sp,
		Help:          help.New(),
		Mode:          ParseViewMode(opts.DefaultView),
		ShowInspector: true,
		Loading:       true,
		pending:       1, // initial reload
	}
	m.Grid.SetDensity(settings.GridDensity)

	if items, ok := queries.CachedItems(m.term); ok {
		m.items = items
		m.loaded = true
	}
	if loans, ok := queries.CachedLoans(); ok {
		m.loans = loans
	}
	m.refreshView()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Spinner.Tick,
		LoadSettingsCmd(m.Commands, m.timeout),
		ReloadCmd(m.Commands, m.timeout, m.term),
		LoansCmd(m.Commands, m.timeout, false),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ItemsLoadedMsg:
		m.endLoad()
		if msg.Term != m.term {
			// A newer search superseded this one
			return m, nil
		}
		m.setItems(msg.Items)
		return m, nil

	case ReloadFailedMsg:
		m.endLoad()
		m.logger.Error("failed to load collection", "term", msg.Term, "error", msg.Err)
		if msg.Term != m.term {
			return m, nil
		}
		if !m.loaded {
			m.loadFailed = true
			m.refreshView()
		}
		return m, m.setStatus("loading collection: "+msg.Err.Error(), true)

	case MutationDoneMsg:
		m.endLoad()
		if msg.Term == m.term {
			m.setItems(msg.Items)
			if msg.SelectID != 0 {
				m.selectID(msg.SelectID)
			}
		}
		if loans, ok := m.Queries.CachedLoans(); ok {
			m.loans = loans
		}
		return m, m.setStatus(msg.Status, false)

	case LoansLoadedMsg:
		m.loans = msg.Loans
		if msg.Show {
			m.endLoad()
			m.Info.Show("Lent items", renderLoans(m.loans))
		}
		return m, nil

	case MatchesLoadedMsg:
		m.endLoad()
		if len(msg.Matches) == 0 {
			return m, m.setStatus("No metadata matches for "+msg.Item.Title, false)
		}
		m.Matches.Show(msg.Item, msg.Matches)
		return m, nil

	case ValueLoadedMsg:
		m.endLoad()
		m.Info.Show("Collection value", renderValue(msg.Value))
		return m, nil

	case ReportLoadedMsg:
		m.endLoad()
		m.Info.Show("Genre report", renderReport(msg.Rows))
		return m, nil

	case SettingsLoadedMsg:
		m.applySettings(msg.Settings)
		term := strings.TrimSpace(msg.Settings.DefaultSearchTerm)
		if !m.searched && term != m.term {
			m.term = term
			m.loaded = false
			m.loadFailed = false
			m.items = nil
			if items, ok := m.Queries.CachedItems(term); ok {
				m.items = items
				m.loaded = true
			}
			m.refreshView()
			m.beginLoad()
			return m, ReloadCmd(m.Commands, m.timeout, m.term)
		}
		return m, nil

	case SettingsSavedMsg:
		m.applySettings(msg.Settings)
		if msg.Err != nil {
			m.logger.Error("failed to sync settings", "error", msg.Err)
			return m, m.setStatus("Settings saved locally; sync failed: "+msg.Err.Error(), true)
		}
		return m, m.setStatus("Settings saved", false)

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		if msg.Background {
			return m, nil
		}
		m.endLoad()
		// Leave whatever is on screen untouched
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		if msg.Seq != m.statusSeq {
			// A newer message replaced the one this was scheduled for
			return m, nil
		}
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// setStatus shows a message and schedules its removal
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	if msg == "" {
		return nil
	}
	delay := statusTimeout
	if isErr {
		delay *= 2
	}
	return ClearStatusCmd(delay, m.statusSeq)
}

// beginLoad marks a foreground command as started
func (m *Model) beginLoad() {
	m.pending++
	m.Loading = true
}

// endLoad marks a foreground command as finished; the spinner stops with the last one
func (m *Model) endLoad() {
	if m.pending > 0 {
		m.pending--
	}
	m.Loading = m.pending > 0
}

// setItems replaces the snapshot and recomputes the visible set
func (m *Model) setItems(items []domain.Item) {
	if items == nil {
		items = []domain.Item{}
	}
	m.items = items
	m.loaded = true
	m.loadFailed = false
	m.refreshView()
}

// refreshView reapplies filter, sort and quick-find, keeping the selection
// on the same item when it is still visible
func (m *Model) refreshView() {
	prev, hadPrev := m.selected()

	m.visible = m.view.Apply(m.items)

	empty := emptyMatchText
	switch {
	case !m.loaded && m.loadFailed:
		empty = loadFailedText
	case !m.loaded:
		empty = loadingText
	case len(m.items) == 0 && m.term == "":
		empty = emptyCollectionText
	}
	m.Grid.SetEmptyText(empty)
	m.List.SetEmptyText(empty)
	m.Grid.SetItems(m.visible)
	m.List.SetItems(m.visible)

	if hadPrev {
		for i, item := range m.visible {
			if item.ID == prev.ID {
				m.setCursor(i)
				break
			}
		}
	}
	m.syncInspector()
}

// selected returns the item under the cursor of the active view
func (m Model) selected() (domain.Item, bool) {
	if m.Mode == ViewList {
		return m.List.Selected()
	}
	return m.Grid.Selected()
}

// selectID moves the cursor onto the item with id when it is visible
func (m *Model) selectID(id int64) {
	for i, item := range m.visible {
		if item.ID == id {
			m.setCursor(i)
			m.syncInspector()
			return
		}
	}
}

func (m *Model) setCursor(i int) {
	m.Grid.SetCursor(i)
	m.List.SetCursor(i)
}

func (m *Model) syncInspector() {
	if item, ok := m.selected(); ok {
		m.Inspector.SetItem(&item)
		return
	}
	m.Inspector.SetItem(nil)
}

// applySettings adopts settings without re-saving them
func (m *Model) applySettings(s domain.Settings) {
	s = s.Normalized()
	m.settings = s
	styles.Use(s.DarkMode)
	m.Grid.SetDensity(s.GridDensity)
}

// applyFilter switches the active filter
func (m *Model) applyFilter(key string) {
	m.view.Filter = catalog.ParseFilter(key)
	m.refreshView()
}

// applySort switches the active sort order
func (m *Model) applySort(key catalog.SortKey) {
	m.view.Sort = key
	m.refreshView()
}

// applyQuickFind narrows the visible items locally
func (m *Model) applyQuickFind(query string) {
	m.view.Query = strings.TrimSpace(query)
	m.refreshView()
}
