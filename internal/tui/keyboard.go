package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/catalog"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Help.ShowAll = true
		m.Info.Show("Keys", m.Help.View(Keys))
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.view.Query != "" {
			m.applyQuickFind("")
			return m, m.setStatus("Find cleared", false)
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.inputFor = inputSearch
		m.Input.Show("Search collection", "title", "empty shows everything", m.term)
		return m, nil

	case key.Matches(msg, Keys.QuickFind):
		m.inputFor = inputQuickFind
		m.Input.Show("Find in view", "title", "matches the items on screen", m.view.Query)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.pickerFor = pickerFilter
		m.Picker.Show("Filter", pickerOptions(catalog.FilterOptions()), m.view.Filter.Key)
		return m, nil

	case key.Matches(msg, Keys.Sort):
		m.pickerFor = pickerSort
		m.Picker.Show("Sort by", pickerOptions(catalog.SortOptions()), string(m.view.Sort))
		return m, nil

	case key.Matches(msg, Keys.ToggleView):
		if m.Mode == ViewGrid {
			m.Mode = ViewList
		} else {
			m.Mode = ViewGrid
		}
		// Carry the cursor across views
		if m.Mode == ViewList {
			m.List.SetCursor(m.Grid.Cursor())
		} else {
			m.Grid.SetCursor(m.List.Cursor())
		}
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Denser), key.Matches(msg, Keys.Sparser):
		density := m.settings.GridDensity + 1
		if key.Matches(msg, Keys.Sparser) {
			density = m.settings.GridDensity - 1
		}
		next := m.settings
		next.GridDensity = density
		next = next.Normalized()
		if next.GridDensity == m.settings.GridDensity {
			return m, nil
		}
		m.applySettings(next)
		return m, SaveSettingsCmd(m.Commands, m.timeout, next)

	case key.Matches(msg, Keys.Inspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Reload):
		m.beginLoad()
		if m.loadFailed {
			m.loadFailed = false
			m.refreshView()
		}
		return m, tea.Batch(
			ReloadCmd(m.Commands, m.timeout, m.term),
			LoansCmd(m.Commands, m.timeout, false),
		)

	case key.Matches(msg, Keys.Add):
		m.formFor = formAdd
		m.Form.Show("Add item", itemFields("", domain.FormatDVD))
		return m, nil

	case key.Matches(msg, Keys.Scan):
		m.inputFor = inputScan
		m.Input.Show("Scan barcode", "UPC or EAN", "scan or type the digits", "")
		return m, nil

	case key.Matches(msg, Keys.Prices):
		m.inputFor = inputPrices
		title := ""
		if item, ok := m.selected(); ok {
			title = item.Title
		}
		m.Input.Show("Refresh prices", "title", "clear to re-price the whole collection", title)
		return m, nil

	case key.Matches(msg, Keys.Value):
		m.beginLoad()
		return m, ValueCmd(m.Commands, m.timeout, len(m.items))

	case key.Matches(msg, Keys.Loans):
		m.beginLoad()
		return m, LoansCmd(m.Commands, m.timeout, true)

	case key.Matches(msg, Keys.Report):
		m.beginLoad()
		return m, ReportCmd(m.Commands, m.timeout)

	case key.Matches(msg, Keys.Settings):
		m.formFor = formSettings
		m.Form.Show("Settings", settingsFields(m.settings))
		return m, nil
	}

	// Item actions need a selection
	if key.Matches(msg, Keys.Edit, Keys.Delete, Keys.Lend, Keys.Return, Keys.Matches) {
		item, ok := m.selected()
		if !ok {
			return m, m.setStatus("Nothing selected", false)
		}
		return m.handleItemKey(msg, item)
	}

	// Navigation goes to the active view
	var cmd tea.Cmd
	if m.Mode == ViewList {
		m.List, cmd = m.List.Update(msg)
		m.Grid.SetCursor(m.List.Cursor())
	} else {
		m.Grid, cmd = m.Grid.Update(msg)
		m.List.SetCursor(m.Grid.Cursor())
	}
	m.syncInspector()
	return m, cmd
}

// handleItemKey runs an action on the selected item
func (m Model) handleItemKey(msg tea.KeyMsg, item domain.Item) (tea.Model, tea.Cmd) {
	m.target = item

	switch {
	case key.Matches(msg, Keys.Edit):
		m.formFor = formEdit
		m.Form.Show("Edit item", itemFields(item.Title, item.MediaType))

	case key.Matches(msg, Keys.Delete):
		m.Confirm.Show(fmt.Sprintf("Delete %q?", item.Title))

	case key.Matches(msg, Keys.Lend):
		if item.IsLent() {
			return m, m.setStatus(fmt.Sprintf("%s is already lent to %s", item.Title, item.BorrowerName), false)
		}
		m.formFor = formLend
		m.Form.Show("Lend "+item.Title, []components.FormField{
			{Label: "Borrower", Placeholder: "name"},
			{Label: "Date", Value: domain.NewDate(time.Now()).String(), Placeholder: "YYYY-MM-DD"},
		})

	case key.Matches(msg, Keys.Return):
		if !item.IsLent() {
			return m, m.setStatus(item.Title+" is not lent", false)
		}
		m.beginLoad()
		return m, ReturnCmd(m.Commands, m.timeout, item, m.term)

	case key.Matches(msg, Keys.Matches):
		m.beginLoad()
		return m, MatchesCmd(m.Commands, m.timeout, item)
	}
	return m, nil
}

// routeToModal sends the key to the open modal, if any
func (m Model) routeToModal(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case m.Confirm.IsVisible():
		var answered, confirmed bool
		m.Confirm, answered, confirmed = m.Confirm.Update(msg)
		if answered && confirmed {
			m.beginLoad()
			return true, m, DeleteCmd(m.Commands, m.timeout, m.target, m.term)
		}
		return true, m, nil

	case m.Form.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.Form, cmd, submitted = m.Form.Update(msg)
		if submitted {
			return true, m, m.submitForm()
		}
		return true, m, cmd

	case m.Input.IsVisible():
		var cmd tea.Cmd
		var submitted bool
		m.Input, cmd, submitted = m.Input.Update(msg)
		if submitted {
			return true, m, m.submitInput(m.Input.Value())
		}
		return true, m, cmd

	case m.Picker.IsVisible():
		var chosen *components.PickerOption
		m.Picker, chosen = m.Picker.Update(msg)
		if chosen != nil {
			switch m.pickerFor {
			case pickerFilter:
				m.applyFilter(chosen.Key)
			case pickerSort:
				m.applySort(catalog.SortKey(chosen.Key))
			}
		}
		return true, m, nil

	case m.Matches.IsVisible():
		var chosen *domain.MetadataMatch
		m.Matches, chosen = m.Matches.Update(msg)
		if chosen != nil {
			m.beginLoad()
			return true, m, ApplyMatchCmd(m.Commands, m.timeout, m.Matches.Item(), *chosen, m.term)
		}
		return true, m, nil

	case m.Info.IsVisible():
		m.Info = m.Info.Update(msg)
		return true, m, nil
	}
	return false, m, nil
}

// submitInput acts on a confirmed single-line input
func (m *Model) submitInput(value string) tea.Cmd {
	value = strings.TrimSpace(value)
	purpose := m.inputFor
	m.inputFor = inputNone

	switch purpose {
	case inputSearch:
		m.searched = true
		m.term = value
		m.loaded = false
		m.loadFailed = false
		m.items = nil
		m.beginLoad()
		if items, ok := m.Queries.CachedItems(value); ok {
			m.items = items
			m.loaded = true
		}
		m.refreshView()
		return ReloadCmd(m.Commands, m.timeout, m.term)

	case inputQuickFind:
		m.applyQuickFind(value)

	case inputScan:
		if value == "" {
			return nil
		}
		m.beginLoad()
		return ScanCmd(m.Commands, m.timeout, value, m.term)

	case inputPrices:
		m.beginLoad()
		return RefreshPricesCmd(m.Commands, m.timeout, value, m.term)
	}
	return nil
}

// submitForm validates the form and fires its command. On a validation
// error the form stays open with the message.
func (m *Model) submitForm() tea.Cmd {
	values := m.Form.Values()
	purpose := m.formFor

	reject := func(reason string) tea.Cmd {
		m.Form.SetError(reason)
		return nil
	}
	accept := func() {
		m.Form.Hide()
		m.formFor = formNone
	}

	switch purpose {
	case formAdd, formEdit:
		title := strings.TrimSpace(values[0])
		if title == "" {
			return reject("title is required")
		}
		format, ok := domain.ParseMediaFormat(values[1])
		if !ok {
			return reject("unknown media type")
		}
		in := domain.ItemInput{Title: title, MediaType: format}
		accept()
		m.beginLoad()
		if purpose == formAdd {
			return AddCmd(m.Commands, m.timeout, in, m.term)
		}
		return UpdateCmd(m.Commands, m.timeout, m.target.ID, in, m.term)

	case formLend:
		borrower := strings.TrimSpace(values[0])
		if borrower == "" {
			return reject("borrower is required")
		}
		date, ok := domain.ParseDate(strings.TrimSpace(values[1]))
		if !ok {
			return reject("date must be YYYY-MM-DD")
		}
		accept()
		m.beginLoad()
		return LendCmd(m.Commands, m.timeout, m.target, borrower, date, m.term)

	case formSettings:
		density, err := strconv.Atoi(values[0])
		if err != nil {
			return reject("grid density must be a number")
		}
		s := domain.Settings{
			GridDensity:       density,
			DarkMode:          values[1] == "on",
			DefaultSearchTerm: strings.TrimSpace(values[2]),
		}.Normalized()
		accept()
		m.applySettings(s)
		return SaveSettingsCmd(m.Commands, m.timeout, s)
	}
	return nil
}

func itemFields(title string, format domain.MediaFormat) []components.FormField {
	choices := make([]string, 0, len(domain.MediaFormats()))
	for _, f := range domain.MediaFormats() {
		choices = append(choices, string(f))
	}
	if !format.Valid() {
		format = domain.FormatDVD
	}
	return []components.FormField{
		{Label: "Title", Value: title, Placeholder: "title"},
		{Label: "Media type", Value: string(format), Choices: choices},
	}
}

func settingsFields(s domain.Settings) []components.FormField {
	densities := make([]string, 0, domain.MaxGridDensity-domain.MinGridDensity+1)
	for d := domain.MinGridDensity; d <= domain.MaxGridDensity; d++ {
		densities = append(densities, strconv.Itoa(d))
	}
	dark := "off"
	if s.DarkMode {
		dark = "on"
	}
	return []components.FormField{
		{Label: "Grid density", Value: strconv.Itoa(s.GridDensity), Choices: densities},
		{Label: "Dark mode", Value: dark, Choices: []string{"off", "on"}},
		{Label: "Default search", Value: s.DefaultSearchTerm, Placeholder: "empty lists everything"},
	}
}

func pickerOptions(opts []catalog.Option) []components.PickerOption {
	out := make([]components.PickerOption, len(opts))
	for i, o := range opts {
		out[i] = components.PickerOption{Key: o.Key, Label: o.Label, Group: o.Group}
	}
	return out
}
