package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mmcdole/shelf/internal/domain"
)

// MetadataMatches returns candidate metadata records for an item
func (c *Client) MetadataMatches(ctx context.Context, id int64) ([]domain.MetadataMatch, error) {
	req, err := jsonRequest(http.MethodPost, fmt.Sprintf("/fix_metadata/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var resp matchesResponse
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return nil, err
	}

	matches := make([]domain.MetadataMatch, 0, len(resp.Matches))
	for _, raw := range resp.Matches {
		var m domain.MetadataMatch
		if err := json.Unmarshal(raw, &m); err != nil {
			c.logger.Warn("skipping undecodable metadata match", "itemID", id, "error", err)
			continue
		}
		m.Raw = raw
		matches = append(matches, m)
	}
	return matches, nil
}

// ApplyMatch overwrites an item's metadata with the chosen match
func (c *Client) ApplyMatch(ctx context.Context, id int64, match domain.MetadataMatch) error {
	raw := match.Raw
	if len(raw) == 0 {
		var err error
		if raw, err = json.Marshal(match); err != nil {
			return fmt.Errorf("failed to encode match: %w", err)
		}
	}
	req, err := jsonRequest(http.MethodPost, fmt.Sprintf("/update_metadata/%d", id), applyMatchRequest{SelectedMatch: raw})
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// ScanBarcode resolves a barcode to a title and adds it to the collection
func (c *Client) ScanBarcode(ctx context.Context, barcode string) (domain.ScanResult, error) {
	req, err := jsonRequest(http.MethodPost, "/scan_barcode", scanRequest{Barcode: barcode})
	if err != nil {
		return domain.ScanResult{}, err
	}
	var result domain.ScanResult
	if err := c.doJSON(ctx, req, &result); err != nil {
		return domain.ScanResult{}, err
	}
	return result, nil
}
