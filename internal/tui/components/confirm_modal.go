package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// ConfirmModal asks a yes/no question
type ConfirmModal struct {
	visible bool
	prompt  string
}

// Show displays the question
func (m *ConfirmModal) Show(prompt string) {
	m.visible = true
	m.prompt = prompt
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Update returns (modal, answered, confirmed)
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, bool, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m, false, false
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.visible = false
		return m, true, true
	case "n", "N", "esc", "q":
		m.visible = false
		return m, true, false
	}
	return m, false, false
}

// View renders the modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Width(40).Render(m.prompt),
		"",
		styles.HelpKeyStyle.Render("y")+styles.HelpDescStyle.Render(" confirm  ")+
			styles.HelpKeyStyle.Render("n")+styles.HelpDescStyle.Render(" cancel"),
	)
	return styles.ModalStyle.BorderForeground(styles.Red).Render(body)
}
