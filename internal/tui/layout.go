package tui

// Layout proportions
const (
	// Browser and inspector split when the inspector is visible
	BrowserPercent   = 68
	InspectorPercent = 32

	MinBrowserWidth   = 30
	MinInspectorWidth = 24

	// Below this width the inspector is dropped regardless of the toggle
	InspectorCutoff = MinBrowserWidth + MinInspectorWidth

	// Vertical layout: header line and footer line
	ChromeHeight = 2
)

// paneLayout holds calculated pane widths for the View
type paneLayout struct {
	browserWidth   int
	inspectorWidth int // 0 if not shown
}

// calculateLayout computes pane widths based on inspector visibility
func (m Model) calculateLayout(availableWidth int) paneLayout {
	if !m.ShowInspector || availableWidth < InspectorCutoff {
		return paneLayout{browserWidth: availableWidth}
	}
	inspector := max(MinInspectorWidth, availableWidth*InspectorPercent/100)
	return paneLayout{
		browserWidth:   availableWidth - inspector,
		inspectorWidth: inspector,
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(1, m.Height-ChromeHeight)
	layout := m.calculateLayout(m.Width)

	m.Grid.SetSize(layout.browserWidth, contentHeight)
	m.List.SetSize(layout.browserWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}

	// Modals get most of the screen
	m.Picker.SetMaxHeight(contentHeight - 8)
	m.Info.SetMaxHeight(contentHeight - 6)
	m.Matches.SetWidth(min(90, m.Width-6))
}
