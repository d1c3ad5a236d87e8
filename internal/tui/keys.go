package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Browsing
	Search     key.Binding
	QuickFind  key.Binding
	Filter     key.Binding
	Sort       key.Binding
	ToggleView key.Binding
	Denser     key.Binding
	Sparser    key.Binding
	Inspector  key.Binding
	Reload     key.Binding
	Escape     key.Binding

	// Item actions
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Lend    key.Binding
	Return  key.Binding
	Matches key.Binding

	// Collection actions
	Scan     key.Binding
	Prices   key.Binding
	Value    key.Binding
	Loans    key.Binding
	Report   key.Binding
	Settings key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		QuickFind: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "find in view"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "grid/list"),
		),
		Denser: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more columns"),
		),
		Sparser: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer columns"),
		),
		Inspector: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inspector"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear find"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Lend: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lend"),
		),
		Return: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "return"),
		),
		Matches: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "fix metadata"),
		),

		Scan: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "scan barcode"),
		),
		Prices: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "refresh prices"),
		),
		Value: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "collection value"),
		),
		Loans: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "loans"),
		),
		Report: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "genre report"),
		),
		Settings: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "settings"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Sort, k.Add, k.Lend, k.ToggleView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.QuickFind, k.Filter, k.Sort, k.ToggleView, k.Denser, k.Sparser, k.Inspector, k.Reload},
		{k.Add, k.Edit, k.Delete, k.Lend, k.Return, k.Matches},
		{k.Scan, k.Prices, k.Value, k.Loans, k.Report, k.Settings, k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
