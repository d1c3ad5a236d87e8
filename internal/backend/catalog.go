package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmcdole/shelf/internal/domain"
)

// ListItems returns one page of the collection ordered by id
func (c *Client) ListItems(ctx context.Context, page, limit int) ([]domain.Item, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var items []domain.Item
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/movies", query: query}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SearchItems runs the backend title search, most relevant first
func (c *Client) SearchItems(ctx context.Context, term string) ([]domain.Item, error) {
	query := url.Values{}
	query.Set("title", term)
	query.Set("sort", "relevance")
	query.Set("order", "desc")

	var items []domain.Item
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/search_movies", query: query}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AdvancedSearch filters on title, genre, minimum rating and release date
func (c *Client) AdvancedSearch(ctx context.Context, q domain.AdvancedQuery) ([]domain.Item, error) {
	req, err := jsonRequest(http.MethodPost, "/search_advanced", q)
	if err != nil {
		return nil, err
	}
	var items []domain.Item
	if err := c.doJSON(ctx, req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem creates an item; the backend fills metadata from the title
func (c *Client) AddItem(ctx context.Context, in domain.ItemInput) error {
	req, err := jsonRequest(http.MethodPost, "/add_movie", in)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// UpdateItem changes an item's title and media type
func (c *Client) UpdateItem(ctx context.Context, id int64, in domain.ItemInput) error {
	req, err := jsonRequest(http.MethodPut, fmt.Sprintf("/update_movie/%d", id), in)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// DeleteItem removes an item
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.doJSON(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/delete_movie/%d", id)}, nil)
}
