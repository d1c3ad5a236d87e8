package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/shelf/internal/domain"
	shelflog "github.com/mmcdole/shelf/internal/log"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, shelflog.NullLogger())
}

func TestListItemsSendsPaging(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/movies", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `[{"id": 7, "title": "Heat", "genre": "Crime, Drama", "rating": "8.3", "status": "available"}]`)
	})

	items, err := c.ListItems(context.Background(), 2, 100)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, domain.Genres{"Crime", "Drama"}, items[0].Genre)
	assert.InDelta(t, 8.3, float64(items[0].Rating), 0.001)
}

func TestSearchItemsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search_movies", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "blade runner", q.Get("title"))
		assert.Equal(t, "relevance", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("order"))
		_, _ = io.WriteString(w, `[]`)
	})

	items, err := c.SearchItems(context.Background(), "blade runner")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMutationsUseDocumentedRoutes(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			if len(data) > 0 {
				assert.NoError(t, json.Unmarshal(data, &body))
			}
		}
		calls = append(calls, call{r.Method, r.URL.Path, body})
		_, _ = io.WriteString(w, `{"message": "ok"}`)
	})

	ctx := context.Background()
	date, _ := domain.ParseDate("2024-03-01")
	require.NoError(t, c.AddItem(ctx, domain.ItemInput{Title: "Alien", MediaType: domain.FormatBluRay}))
	require.NoError(t, c.UpdateItem(ctx, 3, domain.ItemInput{Title: "Aliens", MediaType: domain.FormatDVD}))
	require.NoError(t, c.DeleteItem(ctx, 3))
	require.NoError(t, c.LendItem(ctx, 4, "Sam", date))
	require.NoError(t, c.ReturnItem(ctx, 4))

	require.Len(t, calls, 5)
	assert.Equal(t, call{http.MethodPost, "/add_movie", map[string]any{"title": "Alien", "media_type": "Blu-ray"}}, calls[0])
	assert.Equal(t, call{http.MethodPut, "/update_movie/3", map[string]any{"title": "Aliens", "media_type": "DVD"}}, calls[1])
	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, "/delete_movie/3", calls[2].path)
	assert.Equal(t, call{http.MethodPost, "/lend_movie/4", map[string]any{"borrower_name": "Sam", "lend_date": "2024-03-01"}}, calls[3])
	assert.Equal(t, "/return_movie/4", calls[4].path)
}

func TestRefreshPricesSendsNullTitleForAll(t *testing.T) {
	var bodies []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search_ebay", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		_, _ = io.WriteString(w, `{}`)
	})

	require.NoError(t, c.RefreshPrices(context.Background(), ""))
	require.NoError(t, c.RefreshPrices(context.Background(), "Heat"))
	assert.JSONEq(t, `{"title": null}`, bodies[0])
	assert.JSONEq(t, `{"title": "Heat"}`, bodies[1])
}

func TestTotalValueAcceptsStringOrNumber(t *testing.T) {
	for _, payload := range []string{`{"total_collection_price": 41.5}`, `{"total_collection_price": "41.50"}`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			_, _ = io.WriteString(w, payload)
		})
		total, err := c.TotalValue(context.Background())
		require.NoError(t, err)
		assert.InDelta(t, 41.5, total, 0.001)
	}
}

func TestApplyMatchEchoesRawMatch(t *testing.T) {
	raw := `{"tmdb_id": 603, "title": "The Matrix", "popularity": 81.2, "genre_ids": [28, 878]}`
	var applied string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fix_metadata/9":
			_, _ = io.WriteString(w, `{"matches": [`+raw+`]}`)
		case "/update_metadata/9":
			data, _ := io.ReadAll(r.Body)
			applied = string(data)
			_, _ = io.WriteString(w, `{"message": "updated"}`)
		default:
			http.NotFound(w, r)
		}
	})

	ctx := context.Background()
	matches, err := c.MetadataMatches(ctx, 9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "The Matrix", matches[0].Title)

	require.NoError(t, c.ApplyMatch(ctx, 9, matches[0]))
	assert.JSONEq(t, `{"selectedMatch": `+raw+`}`, applied)
}

func TestScanBarcode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"barcode": "012345678905"}`, string(data))
		_, _ = io.WriteString(w, `{"message": "Movie added successfully", "title": "Heat", "media_type": null, "movie_id": 12}`)
	})

	res, err := c.ScanBarcode(context.Background(), "012345678905")
	require.NoError(t, err)
	assert.Equal(t, "Heat", res.Title)
	assert.Equal(t, int64(12), res.ID)
	assert.Empty(t, res.MediaType)
	assert.Equal(t, "Added Heat", res.Summary())
}

func TestImportJSONWrapsArray(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		got = string(data)
		_, _ = io.WriteString(w, `{"message": "imported"}`)
	})

	err := c.Import(context.Background(), domain.ExportJSON, "movies.json", strings.NewReader(`[{"title": "Heat"}]`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"movies": [{"title": "Heat"}]}`, got)
}

func TestImportCSVUploadsFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "movies.csv", header.Filename)
		assert.Equal(t, "title\nHeat\n", string(data))
		_, _ = io.WriteString(w, `{"message": "imported"}`)
	})

	err := c.Import(context.Background(), domain.ExportCSV, "/tmp/movies.csv", strings.NewReader("title\nHeat\n"))
	require.NoError(t, err)
}

func TestImportRejectsUnknownJSONShape(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", shelflog.NullLogger())
	err := c.Import(context.Background(), domain.ExportJSON, "x.json", strings.NewReader(`"nope"`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{"json error", http.StatusNotFound, `{"error": "Movie not found"}`, domain.ErrNotFound, "Movie not found"},
		{"bad request", http.StatusBadRequest, `{"message": "Title is required"}`, domain.ErrInvalidInput, "Title is required"},
		{"html page", http.StatusNotFound, `<html><h1>Not Found</h1><p>No movies to export</p></html>`, domain.ErrNotFound, "No movies to export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Export(context.Background(), domain.ExportCSV)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var statusErr *domain.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.message, statusErr.Message)
		})
	}
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, shelflog.NullLogger(), WithTimeout(time.Second))
	_, err := c.ListItems(context.Background(), 1, 100)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestCanceledContextIsNotOffline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.LentItems(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, domain.ErrServerOffline)
}

func TestPing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = io.WriteString(w, `{"status": "Backend is running"}`)
	})

	status, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Backend is running", status)
}
