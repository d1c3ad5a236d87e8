package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/shelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []domain.Item {
	out := make([]domain.Item, n)
	for i := range out {
		out[i] = domain.Item{ID: int64(i + 1), Title: fmt.Sprintf("Item %d", i+1), MediaType: domain.FormatDVD}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGridMovesByRow(t *testing.T) {
	g := NewGrid()
	g.SetDensity(3)
	g.SetSize(90, 40)
	g.SetItems(items(7))

	g, _ = g.Update(runes("j"))
	assert.Equal(t, 3, g.Cursor())

	g, _ = g.Update(runes("j"))
	assert.Equal(t, 6, g.Cursor())

	// Already on the last row
	g, _ = g.Update(runes("j"))
	assert.Equal(t, 6, g.Cursor())

	g, _ = g.Update(runes("k"))
	assert.Equal(t, 3, g.Cursor())

	g, _ = g.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 4, g.Cursor())
}

func TestGridDownIntoPartialRow(t *testing.T) {
	g := NewGrid()
	g.SetDensity(3)
	g.SetSize(90, 40)
	g.SetItems(items(5))
	g.SetCursor(2)

	g, _ = g.Update(runes("j"))
	assert.Equal(t, 4, g.Cursor())
}

func TestGridDensityClamped(t *testing.T) {
	g := NewGrid()
	g.SetDensity(1)
	assert.Equal(t, domain.MinGridDensity, g.Density())
	g.SetDensity(12)
	assert.Equal(t, domain.MaxGridDensity, g.Density())
}

func TestGridCursorClampedWhenItemsShrink(t *testing.T) {
	g := NewGrid()
	g.SetItems(items(10))
	g.SetCursor(9)

	g.SetItems(items(4))
	item, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "Item 4", item.Title)

	g.SetItems(nil)
	_, ok = g.Selected()
	assert.False(t, ok)
}

func TestEmptyViewsShowText(t *testing.T) {
	g := NewGrid()
	g.SetSize(60, 10)
	g.SetEmptyText("No items match")
	assert.Contains(t, g.View(), "No items match")

	l := NewList()
	l.SetSize(60, 10)
	l.SetEmptyText("No items in your collection")
	assert.Contains(t, l.View(), "No items in your collection")
}

func TestListRendersRows(t *testing.T) {
	l := NewList()
	l.SetSize(120, 20)
	l.SetItems(items(3))

	view := l.View()
	assert.Contains(t, view, "Title")
	assert.Contains(t, view, "Item 3")

	l, _ = l.Update(runes("j"))
	item, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "Item 2", item.Title)
}

func TestPickerSelectsAndCancels(t *testing.T) {
	p := NewPicker()
	p.Show("Sort by", []PickerOption{
		{Key: "title", Label: "Title"},
		{Key: "rating", Label: "Rating"},
	}, "rating")

	p, chosen := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, chosen)
	assert.Equal(t, "rating", chosen.Key, "cursor starts on the active option")
	assert.False(t, p.IsVisible())

	p.Show("Sort by", []PickerOption{{Key: "title", Label: "Title"}}, "")
	p, chosen = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, chosen)
	assert.False(t, p.IsVisible())
}

func TestFormCyclesChoices(t *testing.T) {
	f := NewForm()
	f.Show("Add item", []FormField{
		{Label: "Title", Value: "Heat"},
		{Label: "Media type", Value: "DVD", Choices: []string{"DVD", "Blu-ray", "VHS"}},
	})

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f, _, submitted := f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, submitted)
	assert.Equal(t, []string{"Heat", "Blu-ray"}, f.Values())

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "VHS", f.Values()[1], "wraps around")
}

func TestConfirmModal(t *testing.T) {
	var m ConfirmModal
	m.Show("Delete?")

	m, answered, confirmed := m.Update(runes("x"))
	assert.False(t, answered)
	assert.True(t, m.IsVisible())

	m, answered, confirmed = m.Update(runes("y"))
	assert.True(t, answered)
	assert.True(t, confirmed)
	assert.False(t, m.IsVisible())
}

func TestMatchModalReturnsChoice(t *testing.T) {
	m := NewMatchModal()
	m.Show(domain.Item{ID: 1, Title: "Heat"}, []domain.MetadataMatch{
		{Title: "Heat"},
		{Title: "Heat Wave"},
	})

	m, _ = m.Update(runes("j"))
	m, chosen := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, chosen)
	assert.Equal(t, "Heat Wave", chosen.Title)
	assert.Equal(t, int64(1), m.Item().ID)
}

func TestInfoModalScrollsThenCloses(t *testing.T) {
	m := NewInfoModal()
	m.SetMaxHeight(3)
	m.Show("Loans", "a\nb\nc\nd\ne")

	m = m.Update(runes("j"))
	assert.True(t, m.IsVisible())
	assert.Contains(t, m.View(), "d")

	m = m.Update(runes("x"))
	assert.False(t, m.IsVisible())
}
