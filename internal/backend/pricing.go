package backend

import (
	"context"
	"net/http"

	"github.com/mmcdole/shelf/internal/domain"
)

var _ domain.PricingRepository = (*Client)(nil)

// RefreshPrices asks the backend to re-price items from eBay listings.
// An empty title re-prices the whole collection.
func (c *Client) RefreshPrices(ctx context.Context, title string) error {
	payload := priceRequest{}
	if title != "" {
		payload.Title = &title
	}
	req, err := jsonRequest(http.MethodPost, "/search_ebay", payload)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// TotalValue returns the summed average price of the collection
func (c *Client) TotalValue(ctx context.Context) (float64, error) {
	req, err := jsonRequest(http.MethodPost, "/calculate_total_collection_price", nil)
	if err != nil {
		return 0, err
	}
	var resp totalValueResponse
	if err := c.doJSON(ctx, req, &resp); err != nil {
		return 0, err
	}
	return float64(resp.Total), nil
}
