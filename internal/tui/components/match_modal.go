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

// MatchModal lists metadata candidates for an item
type MatchModal struct {
	visible bool
	item    domain.Item
	matches []domain.MetadataMatch
	cursor  int
	width   int
}

// NewMatchModal creates a hidden match modal
func NewMatchModal() MatchModal {
	return MatchModal{width: 60}
}

// Show displays matches for item
func (m *MatchModal) Show(item domain.Item, matches []domain.MetadataMatch) {
	m.visible = true
	m.item = item
	m.matches = matches
	m.cursor = 0
}

// SetWidth bounds the modal width
func (m *MatchModal) SetWidth(w int) {
	m.width = max(30, min(80, w))
}

// IsVisible returns whether the modal is shown
func (m MatchModal) IsVisible() bool {
	return m.visible
}

// Item returns the item the matches belong to
func (m MatchModal) Item() domain.Item {
	return m.item
}

// Update processes a key press; chosen is non-nil when a match was picked
func (m MatchModal) Update(msg tea.Msg) (MatchModal, *domain.MetadataMatch) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, PickerKeys.Down):
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, PickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, PickerKeys.Select):
		if len(m.matches) == 0 {
			m.visible = false
			return m, nil
		}
		chosen := m.matches[m.cursor]
		m.visible = false
		return m, &chosen
	case key.Matches(keyMsg, PickerKeys.Cancel):
		m.visible = false
	}
	return m, nil
}

// View renders the modal
func (m MatchModal) View() string {
	if !m.visible {
		return ""
	}
	inner := m.width - 6

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render("Metadata for "+styles.Truncate(m.item.Title, inner-13)))
	if len(m.matches) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matches found"))
	}
	for i, match := range m.matches {
		year := "----"
		if !match.ReleaseDate.IsZero() {
			year = fmt.Sprint(match.ReleaseDate.Time().Year())
		}
		line := fmt.Sprintf("%s  %s", year, match.Title)
		if match.Rating > 0 {
			line += fmt.Sprintf("  ★ %.1f", float64(match.Rating))
		}
		line = styles.Pad(line, inner)
		if i == m.cursor {
			lines = append(lines, styles.SelectedStyle.Render(line))
			if match.Description != "" {
				desc := lipgloss.NewStyle().Width(inner).Render(match.Description)
				descLines := strings.Split(desc, "\n")
				if len(descLines) > 3 {
					descLines = descLines[:3]
				}
				lines = append(lines, styles.DimStyle.Render(strings.Join(descLines, "\n")))
			}
		} else {
			lines = append(lines, styles.NormalStyle.Render(line))
		}
	}
	lines = append(lines, "", styles.DimStyle.Render("enter apply · esc cancel"))

	return styles.ModalStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}
