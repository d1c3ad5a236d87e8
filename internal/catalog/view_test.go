package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/shelf/internal/domain"
)

func TestViewFiltersThenSorts(t *testing.T) {
	v := NewView("en")
	v.Filter = ParseFilter("available")

	got := v.Apply(sampleItems())
	assert.Equal(t, []string{"Dune", "Heat", "Superbad", "Untitled Bootleg"}, titles(got))
}

func TestViewFilterWithNoMatchesIsEmpty(t *testing.T) {
	v := NewView("en")
	v.Filter = ParseFilter("genre_horror")

	got := v.Apply(sampleItems())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestViewQuickFind(t *testing.T) {
	v := NewView("en")
	v.Sort = SortReleaseDate
	v.Query = "DN"

	got := v.Apply(sampleItems())
	assert.Equal(t, []string{"Dune"}, titles(got))

	v.Query = "a"
	got = v.Apply(sampleItems())
	// Sort order is kept, not match rank
	assert.Equal(t, []string{"Arrival", "Superbad", "Heat"}, titles(got))
}

func TestViewDoesNotModifyInput(t *testing.T) {
	items := sampleItems()
	before := ids(items)

	v := View{Filter: ParseFilter("lent"), Sort: SortTitleDesc}
	_ = v.Apply(items)
	assert.Equal(t, before, ids(items))
}

func TestEmptyCollection(t *testing.T) {
	assert.Empty(t, NewView("en").Apply(nil))
	assert.Empty(t, NewView("en").Apply([]domain.Item{}))
}
