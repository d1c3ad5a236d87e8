package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// InfoModal shows a scrollable block of prepared text (value, loans, report, help)
type InfoModal struct {
	visible bool
	title   string
	lines   []string
	offset  int
	height  int
}

// NewInfoModal creates a hidden info modal
func NewInfoModal() InfoModal {
	return InfoModal{height: 20}
}

// Show displays body under title
func (m *InfoModal) Show(title, body string) {
	m.visible = true
	m.title = title
	m.lines = strings.Split(body, "\n")
	m.offset = 0
}

// SetMaxHeight bounds the number of visible body lines
func (m *InfoModal) SetMaxHeight(h int) {
	m.height = max(3, h)
}

// Hide dismisses the modal
func (m *InfoModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m InfoModal) IsVisible() bool {
	return m.visible
}

// Update scrolls or closes the modal
func (m InfoModal) Update(msg tea.Msg) InfoModal {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m
	}
	maxOffset := max(0, len(m.lines)-m.height)
	switch keyMsg.String() {
	case "j", "down":
		m.offset = min(maxOffset, m.offset+1)
	case "k", "up":
		m.offset = max(0, m.offset-1)
	default:
		m.visible = false
	}
	return m
}

// View renders the modal
func (m InfoModal) View() string {
	if !m.visible {
		return ""
	}
	end := min(len(m.lines), m.offset+m.height)
	body := strings.Join(m.lines[m.offset:end], "\n")
	footer := "any key to close"
	if len(m.lines) > m.height {
		footer = "j/k scroll · any other key to close"
	}
	return styles.ModalStyle.Render(
		styles.ModalTitleStyle.Render(m.title) + "\n" + body + "\n\n" + styles.DimStyle.Render(footer),
	)
}
