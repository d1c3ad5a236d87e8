package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// Inspector displays the full record for the selected item
type Inspector struct {
	item   *domain.Item
	width  int
	height int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the item to display; nil clears it
func (i *Inspector) SetItem(item *domain.Item) {
	i.item = item
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// View renders the component
func (i Inspector) View() string {
	contentWidth := max(10, i.width-4)
	style := styles.InactiveBorder.Width(i.width - 2).Height(max(1, i.height-2))

	if i.item == nil {
		return style.Render(styles.DimStyle.Render("Nothing selected"))
	}
	item := i.item

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(lipgloss.NewStyle().Width(contentWidth).Render(item.Title)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%-9s", label)))
		b.WriteString(styles.Truncate(value, contentWidth-9))
		b.WriteString("\n")
	}

	field("Format", item.MediaType.Label())
	field("Genre", item.Genre.String())
	if !item.ReleaseDate.IsZero() {
		field("Released", item.ReleaseDate.String())
	}
	if item.Rating > 0 {
		field("Rating", fmt.Sprintf("%.1f / 10", float64(item.Rating)))
	}
	field("Runtime", item.FormattedRuntime())
	field("Price", item.FormattedPrice())
	field("Status", string(item.EffectiveStatus()))
	if item.IsLent() {
		field("Borrower", item.BorrowerName)
		if !item.LendDate.IsZero() {
			field("Since", humanize.Time(item.LendDate.Time()))
		}
	}
	if !item.AddedDate.IsZero() {
		field("Added", item.AddedDate.String())
	}
	if item.TMDBID > 0 {
		field("TMDB", fmt.Sprintf("%d", int64(item.TMDBID)))
	}

	if item.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Width(contentWidth).Render(item.Description))
	}

	// Keep within the panel; long descriptions are cut
	lines := strings.Split(b.String(), "\n")
	if maxLines := max(1, i.height-2); len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return style.Render(strings.Join(lines, "\n"))
}
