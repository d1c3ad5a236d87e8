package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// Layout constants for grid cells
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Title, detail and badge lines
	CellContentLines = 3

	CellHeight = CellContentLines + BorderHeight
)

// Grid renders items as cards, density cards per row
type Grid struct {
	items   []domain.Item
	cursor  int
	offset  int // first visible row
	density int

	width  int
	height int

	emptyText string
}

// NewGrid creates a grid with the default density
func NewGrid() Grid {
	return Grid{density: domain.DefaultGridDensity}
}

// SetItems replaces the items, keeping the cursor in range
func (g *Grid) SetItems(items []domain.Item) {
	g.items = items
	g.SetCursor(g.cursor)
}

// SetEmptyText sets the message shown when there are no items
func (g *Grid) SetEmptyText(text string) {
	g.emptyText = text
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetDensity sets the number of cards per row
func (g *Grid) SetDensity(density int) {
	g.density = max(domain.MinGridDensity, min(domain.MaxGridDensity, density))
	g.ensureVisible()
}

// Density returns the number of cards per row
func (g Grid) Density() int {
	return g.density
}

// Cursor returns the selected index
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor moves the selection, clamped to the items
func (g *Grid) SetCursor(pos int) {
	g.cursor = max(0, min(pos, len(g.items)-1))
	g.ensureVisible()
}

// Selected returns the selected item
func (g Grid) Selected() (domain.Item, bool) {
	if len(g.items) == 0 {
		return domain.Item{}, false
	}
	return g.items[g.cursor], true
}

func (g Grid) visibleRows() int {
	return max(1, g.height/CellHeight)
}

func (g *Grid) ensureVisible() {
	row := g.cursor / g.density
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

// Update handles cursor movement keys
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil
	}
	page := g.visibleRows() * g.density

	switch {
	case key.Matches(keyMsg, NavKeys.Up):
		if g.cursor-g.density >= 0 {
			g.SetCursor(g.cursor - g.density)
		}
	case key.Matches(keyMsg, NavKeys.Down):
		if g.cursor+g.density < len(g.items) {
			g.SetCursor(g.cursor + g.density)
		} else if g.cursor/g.density < (len(g.items)-1)/g.density {
			// Partial last row
			g.SetCursor(len(g.items) - 1)
		}
	case key.Matches(keyMsg, NavKeys.Left):
		g.SetCursor(g.cursor - 1)
	case key.Matches(keyMsg, NavKeys.Right):
		g.SetCursor(g.cursor + 1)
	case key.Matches(keyMsg, NavKeys.PageUp):
		g.SetCursor(g.cursor - page)
	case key.Matches(keyMsg, NavKeys.PageDown):
		g.SetCursor(g.cursor + page)
	case key.Matches(keyMsg, NavKeys.Home):
		g.SetCursor(0)
	case key.Matches(keyMsg, NavKeys.End):
		g.SetCursor(len(g.items) - 1)
	}
	return g, nil
}

// View renders the visible rows of cards
func (g Grid) View() string {
	if len(g.items) == 0 {
		return lipgloss.Place(g.width, g.height, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render(g.emptyText))
	}

	cellWidth := max(12, g.width/g.density)
	innerWidth := cellWidth - BorderWidth - HorizontalPadding

	var rows []string
	first := g.offset * g.density
	last := min(len(g.items), first+g.visibleRows()*g.density)
	for start := first; start < last; start += g.density {
		var cells []string
		for i := start; i < min(start+g.density, last); i++ {
			cells = append(cells, g.renderCell(g.items[i], i == g.cursor, cellWidth, innerWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (g Grid) renderCell(item domain.Item, selected bool, cellWidth, innerWidth int) string {
	title := styles.Truncate(item.Title, innerWidth)
	if selected {
		title = styles.AccentStyle.Bold(true).Render(title)
	} else {
		title = styles.TitleStyle.Render(title)
	}

	var details []string
	if y := item.Year(); y > 0 {
		details = append(details, fmt.Sprint(y))
	}
	details = append(details, item.MediaType.Label())
	if item.Rating > 0 {
		details = append(details, fmt.Sprintf("★ %.1f", float64(item.Rating)))
	}
	detail := styles.SubtitleStyle.Render(styles.Truncate(strings.Join(details, " · "), innerWidth))

	badge := styles.RenderStatus(item)
	if price := item.FormattedPrice(); price != "" {
		badge += " " + styles.DimStyle.Render(price)
	}

	style := styles.GridCellStyle
	if selected {
		style = styles.GridCellSelectedStyle
	}
	return style.Width(cellWidth - BorderWidth).Render(strings.Join([]string{title, detail, badge}, "\n"))
}
