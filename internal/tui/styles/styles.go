package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/shelf/internal/domain"
)

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Light palette swaps used when dark mode is off
var (
	lightSurface = lipgloss.Color("#F3F4F6")
	lightRaised  = lipgloss.Color("#E5E7EB")
	lightText    = lipgloss.Color("#111827")
	lightMuted   = lipgloss.Color("#4B5563")
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style
)

// Panel and modal styles
var (
	ActiveBorder    lipgloss.Style
	InactiveBorder  lipgloss.Style
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	SelectedStyle   lipgloss.Style
	NormalStyle     lipgloss.Style
	StatusBarStyle  lipgloss.Style
	SpinnerStyle    lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	HelpDescStyle   lipgloss.Style
)

// Grid cell styles
var (
	GridCellStyle         lipgloss.Style
	GridCellSelectedStyle lipgloss.Style
)

// Badge styles
var (
	AvailableBadge lipgloss.Style
	LentBadge      lipgloss.Style
	FormatBadge    lipgloss.Style
)

// Surface colors for the current mode
var (
	Surface lipgloss.Color
	Raised  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
)

func init() {
	Use(true)
}

// Use rebuilds every style for dark or light mode
func Use(dark bool) {
	if dark {
		Surface, Raised, Text, Muted = SlateDark, SlateLight, White, LightGray
	} else {
		Surface, Raised, Text, Muted = lightSurface, lightRaised, lightText, lightMuted
	}

	TitleStyle = lipgloss.NewStyle().Foreground(Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Muted)
	DimStyle = lipgloss.NewStyle().Foreground(DimGray)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	HighlightStyle = lipgloss.NewStyle().Foreground(White).Background(Accent).Padding(0, 1)

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)

	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(Surface)

	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true).
		MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().Foreground(Text).Background(Raised)
	NormalStyle = lipgloss.NewStyle().Foreground(Muted)
	StatusBarStyle = lipgloss.NewStyle().Foreground(Muted)
	SpinnerStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(DimGray)

	GridCellStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(DimGray).
		Padding(0, 1)

	GridCellSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)

	AvailableBadge = lipgloss.NewStyle().Foreground(Green)
	LentBadge = lipgloss.NewStyle().Foreground(Red)
	FormatBadge = lipgloss.NewStyle().Foreground(Blue)
}

// RenderStatus renders an item's status badge
func RenderStatus(item domain.Item) string {
	if item.IsLent() {
		return LentBadge.Render("● Lent")
	}
	return AvailableBadge.Render("● Available")
}

// Truncate truncates a string to the given display width with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 {
		return string(runes[:1])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Pad pads or cuts a string to exactly width cells
func Pad(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
