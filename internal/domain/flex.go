package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The backend is loose with types: dates come back in several layouts,
// numbers may be strings, and genres may be a string or a list.
// These types decode whatever it sends and fall back to zero values.

var dateLayouts = []string{
	"2006-01-02",
	"Mon, 02 Jan 2006 15:04:05 GMT",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006",
}

// Date is a calendar date decoded from any layout the backend emits
type Date struct {
	t time.Time
}

// NewDate wraps a time value
func NewDate(t time.Time) Date {
	return Date{t: t}
}

// ParseDate parses s using every known layout. Unknown input yields a zero Date and false.
func ParseDate(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "unknown") || strings.EqualFold(s, "none") {
		return Date{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}, true
		}
	}
	return Date{}, false
}

// Time returns the underlying time value
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unknown
func (d Date) IsZero() bool { return d.t.IsZero() }

// Before reports whether d is earlier than other
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// String returns the date as YYYY-MM-DD, or "" if unknown
func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Unix seconds
		var n float64
		if err := json.Unmarshal(data, &n); err == nil && n > 0 {
			*d = Date{t: time.Unix(int64(n), 0).UTC()}
			return nil
		}
		*d = Date{}
		return nil
	}
	*d, _ = ParseDate(s)
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// Number is a float that also decodes from numeric strings and null
type Number float64

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// Genres is the list of genres on an item
type Genres []string

// ParseGenres splits a comma-separated genre string
func ParseGenres(s string) Genres {
	var out Genres
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String joins the genres for display and sorting
func (g Genres) String() string {
	return strings.Join(g, ", ")
}

// UnmarshalJSON accepts a comma-separated string or a list of strings/numbers
func (g *Genres) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*g = nil
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*g = ParseGenres(s)
		return nil
	case '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make(Genres, 0, len(raw))
		for _, v := range raw {
			switch x := v.(type) {
			case string:
				if x = strings.TrimSpace(x); x != "" {
					out = append(out, x)
				}
			case float64:
				out = append(out, strconv.FormatFloat(x, 'f', -1, 64))
			}
		}
		*g = out
		return nil
	}
	*g = nil
	return nil
}

// MarshalJSON encodes genres the way the backend stores them: one string
func (g Genres) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}
