package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemDecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 7,
		"title": "Shrek 2",
		"genre": "Animation, Comedy",
		"media_type": "Blu-ray",
		"release_date": "Wed, 19 May 2004 00:00:00 GMT",
		"runtime": 93,
		"rating": "7.3",
		"average_price": null,
		"status": null,
		"borrower_name": null,
		"lend_date": null
	}`

	var item Item
	require.NoError(t, json.Unmarshal([]byte(payload), &item))

	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, Genres{"Animation", "Comedy"}, item.Genre)
	assert.Equal(t, FormatBluRay, item.MediaType)
	assert.Equal(t, 2004, item.Year())
	assert.Equal(t, Number(7.3), item.Rating)
	assert.Zero(t, item.AveragePrice)
	assert.Equal(t, StatusAvailable, item.EffectiveStatus())
	assert.True(t, item.LendDate.IsZero())
}

func TestDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"2010-07-16"`, "2010-07-16"},
		{`"Fri, 16 Jul 2010 00:00:00 GMT"`, "2010-07-16"},
		{`"2010-07-16T12:00:00Z"`, "2010-07-16"},
		{`"Unknown"`, ""},
		{`""`, ""},
		{`null`, ""},
		{`"not a date"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateMarshalsAsDay(t *testing.T) {
	d := NewDate(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-09"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestGenresFromList(t *testing.T) {
	var g Genres
	require.NoError(t, json.Unmarshal([]byte(`["Sci-Fi", 28, ""]`), &g))
	assert.Equal(t, Genres{"Sci-Fi", "28"}, g)
}

func TestNumberFromGarbage(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &n))
	assert.Zero(t, n)
}

func TestMediaFormatParse(t *testing.T) {
	f, ok := ParseMediaFormat("bluray")
	require.True(t, ok)
	assert.Equal(t, FormatBluRay, f)

	f, ok = ParseMediaFormat("4k uhd")
	require.True(t, ok)
	assert.Equal(t, Format4KUHD, f)
	assert.Equal(t, "4kuhd", f.Slug())

	_, ok = ParseMediaFormat("laserdisc")
	assert.False(t, ok)
	assert.Equal(t, "Audiobook", FormatAudioBook.Label())
}

func TestStatusErrorMatchesSentinels(t *testing.T) {
	err := error(&StatusError{Code: 404, Message: "Movie not found"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))

	err = &StatusError{Code: 400}
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSettingsNormalized(t *testing.T) {
	assert.Equal(t, DefaultGridDensity, Settings{}.Normalized().GridDensity)
	assert.Equal(t, MinGridDensity, Settings{GridDensity: 1}.Normalized().GridDensity)
	assert.Equal(t, MaxGridDensity, Settings{GridDensity: 9}.Normalized().GridDensity)
}

func TestCollectionValueAverage(t *testing.T) {
	assert.Zero(t, CollectionValue{Total: 10}.Average())
	assert.InDelta(t, 2.5, CollectionValue{Total: 10, Count: 4}.Average(), 1e-9)
}
