package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/mmcdole/shelf/internal/domain"
)

// Export downloads the whole catalog in the given format.
// An empty collection comes back as domain.ErrNotFound.
func (c *Client) Export(ctx context.Context, format domain.ExportFormat) ([]byte, error) {
	query := url.Values{}
	query.Set("format", string(format))
	return c.do(ctx, request{method: http.MethodGet, path: "/export_movies", query: query})
}

// Import uploads a catalog document. JSON is sent as {"movies": [...]};
// CSV and XML go as a multipart file upload.
func (c *Client) Import(ctx context.Context, format domain.ExportFormat, name string, r io.Reader) error {
	query := url.Values{}
	query.Set("format", string(format))

	req := request{method: http.MethodPost, path: "/import_movies", query: query}

	switch format {
	case domain.ExportJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read import: %w", err)
		}
		movies, err := importRecords(data)
		if err != nil {
			return err
		}
		body, err := json.Marshal(importRequest{Movies: movies})
		if err != nil {
			return fmt.Errorf("failed to encode import: %w", err)
		}
		req.body = bytes.NewReader(body)
		req.contentType = "application/json"

	case domain.ExportCSV, domain.ExportXML:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", filepath.Base(name))
		if err != nil {
			return fmt.Errorf("failed to build upload: %w", err)
		}
		if _, err := io.Copy(part, r); err != nil {
			return fmt.Errorf("failed to read import: %w", err)
		}
		if err := mw.Close(); err != nil {
			return fmt.Errorf("failed to build upload: %w", err)
		}
		req.body = &buf
		req.contentType = mw.FormDataContentType()

	default:
		return domain.Invalid("unsupported import format %q", format)
	}

	return c.doJSON(ctx, req, nil)
}

// importRecords accepts either a bare array or an export envelope {"movies": [...]}
func importRecords(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var envelope importRequest
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, domain.Invalid("import is not a JSON array or {\"movies\": [...]} document")
	}
	if envelope.Movies == nil {
		return nil, domain.Invalid("import document has no movies")
	}
	return envelope.Movies, nil
}

// Report returns item counts and average ratings per genre
func (c *Client) Report(ctx context.Context) ([]domain.GenreReport, error) {
	var rows []domain.GenreReport
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/generate_report"}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
