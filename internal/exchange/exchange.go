// Package exchange reads catalog import/export documents locally, so an
// import can be checked before it is uploaded.
package exchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mmcdole/shelf/internal/domain"
)

// Record is one catalog row with every value as text, as the backend sees it
type Record map[string]string

// Title returns the record's title, trimmed
func (r Record) Title() string { return strings.TrimSpace(r["title"]) }

// Importable reports whether the backend would accept the record.
// The backend skips rows without a title or a tmdb_id.
func (r Record) Importable() bool {
	id := strings.TrimSpace(r["tmdb_id"])
	return r.Title() != "" && id != "" && id != "0" && !strings.EqualFold(id, "none")
}

// ParseFormat resolves a format name
func ParseFormat(s string) (domain.ExportFormat, error) {
	switch f := domain.ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case domain.ExportJSON, domain.ExportCSV, domain.ExportXML:
		return f, nil
	}
	return "", domain.Invalid("unsupported format %q (use json, csv or xml)", s)
}

// DetectFormat picks the format from a file extension
func DetectFormat(path string) (domain.ExportFormat, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", domain.Invalid("cannot tell the format of %q; pass --format", filepath.Base(path))
	}
	return ParseFormat(ext)
}

// FileName is the default export file name for a format
func FileName(format domain.ExportFormat) string {
	return "movies." + string(format)
}

// Decode parses an export-shaped document into records
func Decode(format domain.ExportFormat, r io.Reader) ([]Record, error) {
	switch format {
	case domain.ExportJSON:
		return decodeJSON(r)
	case domain.ExportCSV:
		return decodeCSV(r)
	case domain.ExportXML:
		return decodeXML(r)
	}
	return nil, domain.Invalid("unsupported format %q", format)
}

// decodeJSON accepts a bare array or {"movies": [...]}
func decodeJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := unmarshalNumbers(data, &rows); err != nil {
		var envelope struct {
			Movies []map[string]any `json:"movies"`
		}
		if err := unmarshalNumbers(data, &envelope); err != nil || envelope.Movies == nil {
			return nil, domain.Invalid("JSON import must be an array or {\"movies\": [...]}")
		}
		rows = envelope.Movies
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(row))
		for k, v := range row {
			rec[k] = textValue(v)
		}
		records = append(records, rec)
	}
	return records, nil
}

func unmarshalNumbers(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(dest)
}

func textValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = textValue(p)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func decodeCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.Invalid("CSV import is empty")
	}
	if err != nil {
		return nil, domain.Invalid("bad CSV header: %v", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.Invalid("bad CSV row: %v", err)
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// xmlMovies is <Movies><Movie><title>…</title>…</Movie></Movies>
type xmlMovies struct {
	XMLName xml.Name   `xml:"Movies"`
	Movies  []xmlMovie `xml:"Movie"`
}

type xmlMovie struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func decodeXML(r io.Reader) ([]Record, error) {
	var doc xmlMovies
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, domain.Invalid("bad XML import: %v", err)
	}
	records := make([]Record, 0, len(doc.Movies))
	for _, m := range doc.Movies {
		rec := make(Record, len(m.Fields))
		for _, f := range m.Fields {
			rec[f.XMLName.Local] = f.Value
		}
		records = append(records, rec)
	}
	return records, nil
}

// Summary counts what an import would do
type Summary struct {
	Total   int
	Valid   int
	Skipped []Record
}

// Validate counts the records the backend would import or skip
func Validate(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, rec := range records {
		if rec.Importable() {
			s.Valid++
		} else {
			s.Skipped = append(s.Skipped, rec)
		}
	}
	return s
}
