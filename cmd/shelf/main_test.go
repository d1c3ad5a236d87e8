package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mmcdole/shelf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `[
	{"id": 1, "title": "Heat", "genre": "Crime, Drama", "media_type": "DVD", "release_date": "1995-12-15", "rating": 8.3, "average_price": "7.50", "status": "Available"},
	{"id": 2, "title": "Arrival", "genre": "Science Fiction", "media_type": "Blu-ray", "release_date": "2016-11-11", "rating": 7.9, "status": "Available"},
	{"id": 3, "title": "Superbad", "genre": "Comedy", "media_type": "Digital", "release_date": "2007-08-17", "rating": 7.6, "status": "Lent", "borrower_name": "Sam"}
]`

// fakeBackend serves the REST routes the CLI touches and records requests
type fakeBackend struct {
	mu         sync.Mutex
	collection string
	requests   []string
	importBody string

	advancedBody string
}

func (f *fakeBackend) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := r.Method + " " + r.URL.Path
	if r.URL.RawQuery != "" {
		entry += "?" + r.URL.RawQuery
	}
	f.requests = append(f.requests, entry)
}

func (f *fakeBackend) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.record(r)
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/":
		_, _ = io.WriteString(w, `{"status": "CollectFlix API Running"}`)
	case "/movies":
		if r.URL.Query().Get("page") != "1" {
			_, _ = io.WriteString(w, `[]`)
			return
		}
		_, _ = io.WriteString(w, f.collection)
	case "/search_movies":
		_, _ = io.WriteString(w, `[{"id": 1, "title": "Heat", "media_type": "DVD"}]`)
	case "/search_advanced":
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.advancedBody = string(body)
		f.mu.Unlock()
		_, _ = io.WriteString(w, `[{"id": 1, "title": "Heat", "genre": "Crime, Drama", "media_type": "DVD", "rating": 8.3}]`)
	case "/lent_movies":
		_, _ = io.WriteString(w, `[{"id": 3, "title": "Superbad", "borrower_name": "Sam", "lend_date": "2024-01-05"}]`)
	case "/export_movies":
		if f.collection == "[]" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error": "No movies found"}`)
			return
		}
		_, _ = io.WriteString(w, f.collection)
	case "/import_movies":
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.importBody = string(body)
		f.mu.Unlock()
		_, _ = io.WriteString(w, `{"message": "Imported 1 movies"}`)
	case "/calculate_total_collection_price":
		_, _ = io.WriteString(w, `{"total_collection_price": "1234.50"}`)
	case "/generate_report":
		_, _ = io.WriteString(w, `[{"genre": "Drama", "count": 12, "avg_rating": "7.50"}]`)
	case "/scan_barcode":
		_, _ = io.WriteString(w, `{"message": "ok", "title": "Heat", "media_type": "DVD", "id": 4}`)
	case "/search_ebay":
		_, _ = io.WriteString(w, `{"message": "updated"}`)
	default:
		http.NotFound(w, r)
	}
}

type cliTestEnv struct {
	backend   *fakeBackend
	serverURL string
	configDir string
	baseDir   string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("SHELF_LOGGING_FILE", filepath.Join(base, "shelf.log"))
	t.Setenv("SHELF_CACHE_DIR", filepath.Join(base, "cache"))

	fb := &fakeBackend{collection: sampleCollection}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	return &cliTestEnv{
		backend:   fb,
		serverURL: srv.URL,
		configDir: filepath.Join(base, "config"),
		baseDir:   base,
	}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--server", e.serverURL, "--config", e.configDir}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestListPrintsTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list")
	require.NoError(t, err)

	for _, title := range []string{"Heat", "Arrival", "Superbad"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Lent (Sam)")
	assert.Contains(t, out, "$7.50")
	assert.Contains(t, out, "3 items")
	assert.Less(t, strings.Index(out, "Arrival"), strings.Index(out, "Heat"), "sorted by title")
}

func TestListFilterAndSort(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list", "--filter", "lent")
	require.NoError(t, err)
	assert.Contains(t, out, "Superbad")
	assert.NotContains(t, out, "Heat")
	assert.Contains(t, out, "1 of 3 items")

	out, _, err = env.run(t, "list", "--filter", "genre_horror")
	require.NoError(t, err)
	assert.Contains(t, out, "No items match")
}

func TestListRejectsUnknownKeys(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "list", "--sort", "popularity")
	assert.ErrorContains(t, err, "unknown sort key")

	_, _, err = env.run(t, "list", "--filter", "genre")
	assert.ErrorContains(t, err, "unknown filter")
	assert.Empty(t, env.backend.paths(), "flags are checked before any request")
}

func TestListEmptyCollection(t *testing.T) {
	env := setupCLITestEnv(t)
	env.backend.collection = "[]"

	out, _, err := env.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No items in your collection")
}

func TestListJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "list", "--json", "--sort", "rating")
	require.NoError(t, err)

	var items []domain.Item
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "Heat", items[0].Title)
}

func TestSearchSendsTitle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "search", "heat")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.Contains(t, env.backend.paths(), "GET /search_movies?order=desc&sort=relevance&title=heat")
}

func TestSearchByCriteria(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "search", "--genre", "Drama", "--min-rating", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.Contains(t, env.backend.paths(), "POST /search_advanced")
	assert.JSONEq(t, `{"genre": "Drama", "rating": 8}`, env.backend.advancedBody)
}

func TestSearchNeedsCriteria(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "search")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestExportEmptyCollection(t *testing.T) {
	env := setupCLITestEnv(t)
	env.backend.collection = "[]"

	out, errOut, err := env.run(t, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "nothing to export")
}

func TestExportToFile(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "movies.json")

	_, _, err := env.run(t, "export", "-o", target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Superbad")
	assert.Contains(t, env.backend.paths(), "GET /export_movies?format=json")
}

func TestExportIntoDirectoryUsesDefaultName(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "backups")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	_, errOut, err := env.run(t, "export", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, errOut, filepath.Join(dir, "movies.json"))

	data, err := os.ReadFile(filepath.Join(dir, "movies.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Superbad")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "export", "--format", "xlsx")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestImportDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "movies.csv")
	csv := "title,tmdb_id,media_type\nHeat,949,DVD\nMystery Tape,,VHS\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, _, err := env.run(t, "import", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 records, 1 importable, 1 skipped")
	assert.Contains(t, out, "skip: Mystery Tape")
	assert.Empty(t, env.backend.paths())
}

func TestImportUploadsAndReloads(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "Heat", "tmdb_id": 949}]`), 0o644))

	out, _, err := env.run(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "the collection now has 3 items")

	paths := env.backend.paths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "POST /import_movies?format=json", paths[0])
	assert.Contains(t, env.backend.importBody, `"movies"`)
}

func TestImportNothingImportable(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"movies": [{"title": "No id"}]}`), 0o644))

	_, _, err := env.run(t, "import", path)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, env.backend.paths())
}

func TestValue(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "value")
	require.NoError(t, err)
	assert.Contains(t, out, "$1,234.5")
	assert.Contains(t, out, "$411.5")
}

func TestScanRejectsBadBarcode(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := env.run(t, "scan", "036000291453")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, env.backend.paths())
}

func TestScanAddsItem(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "scan", "0 36000 29145 2")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Heat (DVD)")
}

func TestReportAndLoans(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Drama")
	assert.Contains(t, out, "7.5")

	out, _, err = env.run(t, "loans")
	require.NoError(t, err)
	assert.Contains(t, out, "Sam")
	assert.Contains(t, out, "2024-01-05")
}

func TestPing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "ping")
	require.NoError(t, err)
	assert.Contains(t, out, "CollectFlix API Running")
}

func TestPingReportsNormalizedURL(t *testing.T) {
	env := setupCLITestEnv(t)
	base := env.serverURL
	env.serverURL = base + "/"

	out, _, err := env.run(t, "ping")
	require.NoError(t, err)
	assert.Contains(t, out, base+": CollectFlix API Running")
}

func TestPingOffline(t *testing.T) {
	env := setupCLITestEnv(t)
	env.serverURL = "http://127.0.0.1:1"

	_, _, err := env.run(t, "ping")
	assert.True(t, errors.Is(err, domain.ErrServerOffline))
}

func TestConfigInitWritesFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config.yaml")

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), env.serverURL)
}
