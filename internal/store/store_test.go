package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/shelf/internal/domain"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s, err := NewCatalogStore(dir, "http://127.0.0.1:5500")
	require.NoError(t, err)

	_, ok := s.GetSettings()
	assert.False(t, ok, "fresh store has no settings")

	want := domain.Settings{GridDensity: 5, DarkMode: true, DefaultSearchTerm: "alien"}
	require.NoError(t, s.SaveSettings(want))
	require.NoError(t, s.Close())

	reopened, err := NewCatalogStore(dir, "http://127.0.0.1:5500/")
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.GetSettings()
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestSettingsDefaultsAndClamp(t *testing.T) {
	s, err := NewCatalogStore("", "")
	require.NoError(t, err)

	got, ok := s.GetSettings()
	assert.False(t, ok)
	assert.Equal(t, domain.DefaultGridDensity, got.GridDensity)

	require.NoError(t, s.SaveSettings(domain.Settings{GridDensity: 40}))
	got, _ = s.GetSettings()
	assert.Equal(t, domain.MaxGridDensity, got.GridDensity)
}

func TestItemsKeyedByTerm(t *testing.T) {
	s, err := NewCatalogStore(t.TempDir(), "")
	require.NoError(t, err)
	defer s.Close()

	all := []domain.Item{{ID: 1, Title: "Alien"}, {ID: 2, Title: "Heat"}}
	require.NoError(t, s.SaveItems("", all))
	require.NoError(t, s.SaveItems(" Heat ", all[1:]))

	got, ok := s.GetItems("")
	require.True(t, ok)
	assert.Len(t, got, 2)

	got, ok = s.GetItems("heat")
	require.True(t, ok)
	assert.Equal(t, "Heat", got[0].Title)

	_, ok = s.GetItems("missing")
	assert.False(t, ok)
}

func TestEmptySnapshotIsCached(t *testing.T) {
	s, err := NewCatalogStore("", "")
	require.NoError(t, err)

	require.NoError(t, s.SaveItems("", nil))
	got, ok := s.GetItems("")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestInvalidateItemsKeepsSettings(t *testing.T) {
	s, err := NewCatalogStore(t.TempDir(), "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveItems("", []domain.Item{{ID: 1}}))
	require.NoError(t, s.SaveLoans([]domain.Loan{{ID: 1, BorrowerName: "Sam"}}))
	require.NoError(t, s.SaveSettings(domain.Settings{GridDensity: 4}))

	s.InvalidateItems()

	_, ok := s.GetItems("")
	assert.False(t, ok)
	_, ok = s.GetLoans()
	assert.False(t, ok)
	settings, ok := s.GetSettings()
	assert.True(t, ok)
	assert.Equal(t, 4, settings.GridDensity)
}

func TestSeparateDirectoryPerServer(t *testing.T) {
	assert.Equal(t, hashServerURL("http://Host:5500/"), hashServerURL("http://host:5500"))
	assert.NotEqual(t, hashServerURL("http://a:5500"), hashServerURL("http://b:5500"))
}
