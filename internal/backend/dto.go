package backend

import (
	"encoding/json"

	"github.com/mmcdole/shelf/internal/domain"
)

// Request and response bodies for endpoints whose shapes are not domain types

type lendRequest struct {
	BorrowerName string `json:"borrower_name"`
	LendDate     string `json:"lend_date"`
}

// priceRequest sends {"title": null} to re-price everything
type priceRequest struct {
	Title *string `json:"title"`
}

type totalValueResponse struct {
	Total domain.Number `json:"total_collection_price"`
}

type matchesResponse struct {
	Matches []json.RawMessage `json:"matches"`
}

type applyMatchRequest struct {
	SelectedMatch json.RawMessage `json:"selectedMatch"`
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

type importRequest struct {
	Movies []json.RawMessage `json:"movies"`
}
