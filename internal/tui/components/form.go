package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// FormField describes one field. A field with Choices is cycled with
// left/right; otherwise it is free text.
type FormField struct {
	Label       string
	Value       string
	Placeholder string
	Choices     []string
}

// Form is a multi-field modal (add, edit, lend, settings)
type Form struct {
	visible bool
	title   string
	fields  []FormField
	inputs  []textinput.Model
	choice  []int
	focus   int
	err     string
}

// NewForm creates a hidden form
func NewForm() Form {
	return Form{}
}

// Show opens the form with the given fields
func (f *Form) Show(title string, fields []FormField) {
	f.visible = true
	f.title = title
	f.fields = fields
	f.inputs = make([]textinput.Model, len(fields))
	f.choice = make([]int, len(fields))
	f.focus = 0
	f.err = ""

	for i, field := range fields {
		if len(field.Choices) > 0 {
			for j, c := range field.Choices {
				if c == field.Value {
					f.choice[i] = j
				}
			}
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 30
		ti.CharLimit = 200
		ti.Placeholder = field.Placeholder
		ti.PlaceholderStyle = styles.DimStyle
		ti.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
		ti.SetValue(field.Value)
		f.inputs[i] = ti
	}
	f.focusField(0)
}

// Hide dismisses the form
func (f *Form) Hide() {
	f.visible = false
}

// IsVisible returns whether the form is shown
func (f Form) IsVisible() bool {
	return f.visible
}

// SetError shows a validation message under the fields
func (f *Form) SetError(msg string) {
	f.err = msg
}

// Values returns the field values in order
func (f Form) Values() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		if len(field.Choices) > 0 {
			out[i] = field.Choices[f.choice[i]]
		} else {
			out[i] = strings.TrimSpace(f.inputs[i].Value())
		}
	}
	return out
}

func (f *Form) focusField(i int) {
	f.focus = i
	for j := range f.inputs {
		if len(f.fields[j].Choices) > 0 {
			continue
		}
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// Update handles input events, returns (form, cmd, submitted)
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd, bool) {
	if !f.visible {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		isChoice := len(f.fields[f.focus].Choices) > 0
		switch keyMsg.String() {
		case "esc":
			f.Hide()
			return f, nil, false
		case "enter":
			if f.focus < len(f.fields)-1 {
				f.focusField(f.focus + 1)
				return f, nil, false
			}
			return f, nil, true
		case "ctrl+s":
			return f, nil, true
		case "tab", "down":
			f.focusField((f.focus + 1) % len(f.fields))
			return f, nil, false
		case "shift+tab", "up":
			f.focusField((f.focus - 1 + len(f.fields)) % len(f.fields))
			return f, nil, false
		case "left", "h":
			if isChoice {
				n := len(f.fields[f.focus].Choices)
				f.choice[f.focus] = (f.choice[f.focus] - 1 + n) % n
				return f, nil, false
			}
		case "right", "l", " ":
			if isChoice {
				f.choice[f.focus] = (f.choice[f.focus] + 1) % len(f.fields[f.focus].Choices)
				return f, nil, false
			}
		}
		if isChoice {
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	if len(f.fields[f.focus].Choices) == 0 {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return f, cmd, false
}

// View renders the form
func (f Form) View() string {
	if !f.visible {
		return ""
	}

	labelWidth := 0
	for _, field := range f.fields {
		labelWidth = max(labelWidth, lipgloss.Width(field.Label))
	}

	var lines []string
	lines = append(lines, styles.ModalTitleStyle.Render(f.title))
	for i, field := range f.fields {
		label := styles.Pad(field.Label, labelWidth+2)
		if i == f.focus {
			label = styles.AccentStyle.Render(label)
		} else {
			label = styles.DimStyle.Render(label)
		}

		var value string
		if len(field.Choices) > 0 {
			value = "‹ " + field.Choices[f.choice[i]] + " ›"
			if i == f.focus {
				value = styles.SelectedStyle.Render(value)
			}
		} else {
			value = f.inputs[i].View()
		}
		lines = append(lines, label+value)
	}
	if f.err != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(f.err))
	}
	lines = append(lines, "", styles.DimStyle.Render("tab next · ←/→ change · enter save · esc cancel"))

	return styles.ModalStyle.Render(strings.Join(lines, "\n"))
}
