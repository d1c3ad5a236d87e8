package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// Table chrome: top border, header, header separator, bottom border
const listChromeLines = 4

var listHeaders = []string{"Title", "Year", "Genre", "Media", "Rating", "Runtime", "Price", "Status"}

// List renders items as a table, one row per item
type List struct {
	items  []domain.Item
	cursor int
	offset int

	width  int
	height int

	emptyText string
}

// NewList creates an empty list
func NewList() List {
	return List{}
}

// SetItems replaces the items, keeping the cursor in range
func (l *List) SetItems(items []domain.Item) {
	l.items = items
	l.SetCursor(l.cursor)
}

// SetEmptyText sets the message shown when there are no items
func (l *List) SetEmptyText(text string) {
	l.emptyText = text
}

// SetSize updates the component dimensions
func (l *List) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// Cursor returns the selected index
func (l List) Cursor() int {
	return l.cursor
}

// SetCursor moves the selection, clamped to the items
func (l *List) SetCursor(pos int) {
	l.cursor = max(0, min(pos, len(l.items)-1))
	l.ensureVisible()
}

// Selected returns the selected item
func (l List) Selected() (domain.Item, bool) {
	if len(l.items) == 0 {
		return domain.Item{}, false
	}
	return l.items[l.cursor], true
}

func (l List) visibleRows() int {
	return max(1, l.height-listChromeLines)
}

func (l *List) ensureVisible() {
	rows := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+rows {
		l.offset = l.cursor - rows + 1
	}
}

// Update handles cursor movement keys
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	switch {
	case key.Matches(keyMsg, NavKeys.Up, NavKeys.Left):
		l.SetCursor(l.cursor - 1)
	case key.Matches(keyMsg, NavKeys.Down, NavKeys.Right):
		l.SetCursor(l.cursor + 1)
	case key.Matches(keyMsg, NavKeys.PageUp):
		l.SetCursor(l.cursor - l.visibleRows())
	case key.Matches(keyMsg, NavKeys.PageDown):
		l.SetCursor(l.cursor + l.visibleRows())
	case key.Matches(keyMsg, NavKeys.Home):
		l.SetCursor(0)
	case key.Matches(keyMsg, NavKeys.End):
		l.SetCursor(len(l.items) - 1)
	}
	return l, nil
}

// View renders the visible window of the table
func (l List) View() string {
	if len(l.items) == 0 {
		return lipgloss.Place(l.width, l.height, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render(l.emptyText))
	}

	end := min(len(l.items), l.offset+l.visibleRows())
	window := l.items[l.offset:end]
	selectedRow := l.cursor - l.offset

	titleWidth := max(12, l.width-70)
	rows := make([][]string, len(window))
	for i, item := range window {
		rows[i] = listRow(item, titleWidth)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		Headers(listHeaders...).
		Rows(rows...).
		Width(l.width).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Foreground(styles.Accent).Bold(true)
			case row == selectedRow:
				return base.Foreground(styles.Text).Background(styles.Raised)
			case col == 7 && window[row].IsLent():
				return base.Foreground(styles.Red)
			default:
				return base.Foreground(styles.Muted)
			}
		})

	return t.Render()
}

func listRow(item domain.Item, titleWidth int) []string {
	year, rating := "", ""
	if y := item.Year(); y > 0 {
		year = fmt.Sprint(y)
	}
	if item.Rating > 0 {
		rating = fmt.Sprintf("%.1f", float64(item.Rating))
	}
	return []string{
		styles.Truncate(item.Title, titleWidth),
		year,
		styles.Truncate(item.Genre.String(), 18),
		item.MediaType.Label(),
		rating,
		item.FormattedRuntime(),
		item.FormattedPrice(),
		string(item.EffectiveStatus()),
	}
}
