package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// InputModal is a single-line prompt (search, quick-find, barcode, price title)
type InputModal struct {
	visible bool
	title   string
	hint    string
	input   textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal() InputModal {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = "› "

	return InputModal{input: ti}
}

// Show displays the modal with a title, a hint line and a starting value
func (m *InputModal) Show(title, placeholder, hint, value string) {
	m.visible = true
	m.title = title
	m.hint = hint
	m.input.Placeholder = placeholder
	m.input.PromptStyle = styles.AccentStyle
	m.input.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	m.input.PlaceholderStyle = styles.DimStyle
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.Hide()
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 44

	parts := []string{
		styles.TitleStyle.Width(modalWidth).Render(m.title),
		"",
		lipgloss.NewStyle().Width(modalWidth).Render(m.input.View()),
	}
	if m.hint != "" {
		parts = append(parts, "", styles.DimStyle.Width(modalWidth).Render(m.hint))
	}

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
