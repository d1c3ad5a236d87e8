package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// PickerOption is one entry in a picker
type PickerOption struct {
	Key   string
	Label string
	Group string // options with a new group get a heading
}

// Picker is a small popup for choosing one option (sort order, filter)
type Picker struct {
	visible bool
	title   string
	options []PickerOption
	cursor  int
	offset  int
	active  string
	height  int
}

// NewPicker creates a new picker
func NewPicker() Picker {
	return Picker{height: 16}
}

// Show displays the picker with the cursor on the active key
func (p *Picker) Show(title string, options []PickerOption, active string) {
	p.visible = true
	p.title = title
	p.options = options
	p.active = active
	p.cursor = 0
	p.offset = 0
	for i, opt := range options {
		if opt.Key == active {
			p.cursor = i
			break
		}
	}
	p.ensureVisible()
}

// SetMaxHeight bounds the number of visible options
func (p *Picker) SetMaxHeight(h int) {
	p.height = max(3, h)
	p.ensureVisible()
}

// Hide dismisses the picker
func (p *Picker) Hide() {
	p.visible = false
}

// IsVisible returns whether the picker is shown
func (p Picker) IsVisible() bool {
	return p.visible
}

func (p *Picker) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+p.height {
		p.offset = p.cursor - p.height + 1
	}
}

// Update processes a key press. chosen is non-nil when the user confirmed.
func (p Picker) Update(msg tea.Msg) (Picker, *PickerOption) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !p.visible || !ok {
		return p, nil
	}

	switch {
	case key.Matches(keyMsg, PickerKeys.Down):
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case key.Matches(keyMsg, PickerKeys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, PickerKeys.Select):
		if len(p.options) == 0 {
			return p, nil
		}
		chosen := p.options[p.cursor]
		p.visible = false
		return p, &chosen
	case key.Matches(keyMsg, PickerKeys.Cancel):
		p.visible = false
	}
	p.ensureVisible()
	return p, nil
}

// View renders the picker
func (p Picker) View() string {
	if !p.visible {
		return ""
	}

	const width = 24
	var lines []string
	end := min(len(p.options), p.offset+p.height)
	lastGroup := ""
	if p.offset > 0 {
		lastGroup = p.options[p.offset-1].Group
	}
	for i := p.offset; i < end; i++ {
		opt := p.options[i]
		if opt.Group != "" && opt.Group != lastGroup {
			lines = append(lines, styles.DimStyle.Render(opt.Group))
			lastGroup = opt.Group
		}

		prefix := "  "
		if opt.Key == p.active {
			prefix = "✓ "
		}
		text := styles.Pad(prefix+opt.Label, width)

		switch {
		case i == p.cursor:
			lines = append(lines, styles.SelectedStyle.Render(text))
		case opt.Key == p.active:
			lines = append(lines, styles.AccentStyle.Render(text))
		default:
			lines = append(lines, styles.NormalStyle.Render(text))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render(p.title) + "\n" + strings.Join(lines, "\n"))
}
