package backend

import (
	"context"
	"net/http"

	"github.com/mmcdole/shelf/internal/domain"
)

// LoadSettings fetches the settings saved on the backend
func (c *Client) LoadSettings(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/load_settings"}, &s); err != nil {
		return domain.Settings{}, err
	}
	return s.Normalized(), nil
}

// SaveSettings stores settings on the backend
func (c *Client) SaveSettings(ctx context.Context, s domain.Settings) error {
	req, err := jsonRequest(http.MethodPost, "/save_settings", s)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, req, nil)
}
