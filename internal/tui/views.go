package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/mmcdole/shelf/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	contentHeight := max(1, m.Height-ChromeHeight)
	header := m.renderHeader()
	footer := m.renderFooter()

	var content string
	if modal := m.renderModal(); modal != "" {
		content = lipgloss.Place(m.Width, contentHeight, lipgloss.Center, lipgloss.Center, modal)
	} else {
		content = m.renderBrowser()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderBrowser renders the grid or list with the optional inspector
func (m Model) renderBrowser() string {
	layout := m.calculateLayout(m.Width)

	browser := m.Grid.View()
	if m.Mode == ViewList {
		browser = m.List.View()
	}
	browser = lipgloss.NewStyle().Width(layout.browserWidth).Render(browser)

	if layout.inspectorWidth == 0 {
		return browser
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, browser, m.Inspector.View())
}

// renderModal returns the open modal, or ""
func (m Model) renderModal() string {
	switch {
	case m.Confirm.IsVisible():
		return m.Confirm.View()
	case m.Form.IsVisible():
		return m.Form.View()
	case m.Input.IsVisible():
		return m.Input.View()
	case m.Picker.IsVisible():
		return m.Picker.View()
	case m.Matches.IsVisible():
		return m.Matches.View()
	case m.Info.IsVisible():
		return m.Info.View()
	}
	return ""
}

// renderHeader renders the title bar with the view state
func (m Model) renderHeader() string {
	parts := []string{styles.AccentStyle.Bold(true).Render("shelf")}

	count := fmt.Sprintf("%d items", len(m.items))
	if len(m.visible) != len(m.items) {
		count = fmt.Sprintf("%d of %d items", len(m.visible), len(m.items))
	}
	parts = append(parts, styles.SubtitleStyle.Render(count))

	if !m.view.Filter.IsIdentity() {
		parts = append(parts, styles.DimStyle.Render("filter: ")+m.view.Filter.Label())
	}
	parts = append(parts, styles.DimStyle.Render("sort: ")+m.view.Sort.Label())
	if m.term != "" {
		parts = append(parts, styles.DimStyle.Render("search: ")+fmt.Sprintf("%q", m.term))
	}
	if m.view.Query != "" {
		parts = append(parts, styles.DimStyle.Render("find: ")+fmt.Sprintf("%q", m.view.Query))
	}
	if len(m.loans) > 0 {
		parts = append(parts, styles.DimStyle.Render(fmt.Sprintf("%d lent", len(m.loans))))
	}

	sep := styles.DimStyle.Render(" · ")
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(strings.Join(parts, sep))
}

// renderFooter renders the status line: spinner, message or key hints
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render("✗ " + m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	default:
		left = m.Help.ShortHelpView(Keys.ShortHelp())
	}
	if m.Loading {
		left = m.Spinner.View() + " " + left
	}
	return styles.StatusBarStyle.MaxWidth(m.Width).Render(left)
}

// renderLoans renders the lent list for the info modal
func renderLoans(loans []domain.Loan) string {
	if len(loans) == 0 {
		return styles.DimStyle.Render("Nothing is lent out")
	}
	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		since := ""
		if !l.LendDate.IsZero() {
			since = l.LendDate.String() + " (" + humanize.Time(l.LendDate.Time()) + ")"
		}
		rows = append(rows, []string{l.Title, l.BorrowerName, since})
	}
	return infoTable([]string{"Title", "Borrower", "Since"}, rows)
}

// renderReport renders the genre report for the info modal
func renderReport(report []domain.GenreReport) string {
	if len(report) == 0 {
		return styles.DimStyle.Render("No genres to report")
	}
	rows := make([][]string, 0, len(report))
	for _, r := range report {
		rows = append(rows, []string{r.Genre, humanize.Comma(int64(r.Count)), fmt.Sprintf("%.1f", float64(r.AvgRating))})
	}
	return infoTable([]string{"Genre", "Items", "Avg rating"}, rows)
}

// renderValue renders the collection value for the info modal
func renderValue(v domain.CollectionValue) string {
	line := func(label, value string) string {
		return styles.DimStyle.Render(fmt.Sprintf("%-14s", label)) + value
	}
	lines := []string{
		line("Total", styles.AccentStyle.Render("$"+humanize.CommafWithDigits(v.Total, 2))),
		line("Items", humanize.Comma(int64(v.Count))),
		line("Average", "$"+humanize.CommafWithDigits(v.Average(), 2)),
	}
	if !v.UpdatedAt.IsZero() {
		lines = append(lines, line("Calculated", humanize.Time(v.UpdatedAt)))
	}
	return strings.Join(lines, "\n")
}

func infoTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TitleStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().Foreground(styles.Text).PaddingRight(2)
		}).
		String()
}
