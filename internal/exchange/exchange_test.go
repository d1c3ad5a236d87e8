package exchange

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/shelf/internal/domain"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    domain.ExportFormat
		wantErr bool
	}{
		{"movies.json", domain.ExportJSON, false},
		{"/tmp/Backup.CSV", domain.ExportCSV, false},
		{"export.xml", domain.ExportXML, false},
		{"movies.txt", "", true},
		{"movies", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeJSONShapes(t *testing.T) {
	for _, doc := range []string{
		`[{"title": "Heat", "tmdb_id": 949, "genre": ["Crime", "Drama"]}]`,
		`{"movies": [{"title": "Heat", "tmdb_id": 949, "genre": ["Crime", "Drama"]}]}`,
	} {
		records, err := Decode(domain.ExportJSON, strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Heat", records[0].Title())
		assert.Equal(t, "949", records[0]["tmdb_id"])
		assert.Equal(t, "Crime, Drama", records[0]["genre"])
	}

	_, err := Decode(domain.ExportJSON, strings.NewReader(`{"items": []}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecodeCSV(t *testing.T) {
	doc := "\ufefftitle,tmdb_id,rating\nHeat,949,8.3\n\"Alien, Director's Cut\",,7.9\n"
	records, err := Decode(domain.ExportCSV, strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Heat", records[0]["title"])
	assert.Equal(t, "Alien, Director's Cut", records[1].Title())

	s := Validate(records)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Valid)
	require.Len(t, s.Skipped, 1)
	assert.Equal(t, "Alien, Director's Cut", s.Skipped[0].Title())
}

func TestDecodeXML(t *testing.T) {
	doc := `<Movies><Movie><title>Heat</title><tmdb_id>949</tmdb_id></Movie><Movie><title></title><tmdb_id>None</tmdb_id></Movie></Movies>`
	records, err := Decode(domain.ExportXML, strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Importable())
	assert.False(t, records[1].Importable())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "movies.csv", FileName(domain.ExportCSV))
}
