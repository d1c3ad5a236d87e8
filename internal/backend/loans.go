package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/shelf/internal/domain"
)

// LendItem marks an item as lent to borrower on date
func (c *Client) LendItem(ctx context.Context, id int64, borrower string, date domain.Date) error {
	payload := lendRequest{BorrowerName: borrower, LendDate: date.String()}
	req, err := jsonRequest(http.MethodPost, fmt.Sprintf("/lend_movie/%d", id), payload)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// ReturnItem clears the loan on an item
func (c *Client) ReturnItem(ctx context.Context, id int64) error {
	req, err := jsonRequest(http.MethodPost, fmt.Sprintf("/return_movie/%d", id), nil)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}

// LentItems returns every item currently on loan
func (c *Client) LentItems(ctx context.Context) ([]domain.Loan, error) {
	var loans []domain.Loan
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/lent_movies"}, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}
