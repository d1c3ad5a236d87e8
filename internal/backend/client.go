package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/shelf/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Client talks to the collection backend over REST.
// It performs no retries: a failed request is reported and the caller decides.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.Backend = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new backend client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root URL
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one backend call
type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// jsonRequest builds a request with a JSON-encoded body
func jsonRequest(method, path string, payload any) (request, error) {
	req := request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to encode request: %w", err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do performs a request and returns the response body for 2xx responses
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	c.logger.Debug("backend request", "method", r.method, "path", r.path, "requestID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("backend request failed", "method", r.method, "path", r.path, "requestID", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &domain.StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
		c.logger.Error("backend request error",
			"method", r.method,
			"path", r.path,
			"status", resp.StatusCode,
			"requestID", requestID,
			"message", statusErr.Message,
		)
		return nil, statusErr
	}

	c.logger.Debug("backend response", "path", r.path, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

// doJSON performs a request and decodes the JSON response into dest (when non-nil)
func (c *Client) doJSON(ctx context.Context, r request, dest any) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if dest == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", r.path, err)
	}
	return nil
}

// errorMessage extracts the human-readable message from an error body.
// The backend answers with {"error": ...}, {"message": ...}, {"description": ...}
// or an HTML page from its framework.
func errorMessage(body []byte) string {
	var payload struct {
		Error       string `json:"error"`
		Message     string `json:"message"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, s := range []string{payload.Error, payload.Description, payload.Message} {
			if s != "" {
				return s
			}
		}
	}
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<") {
		return htmlMessage(text)
	}
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "…"
	}
	return text
}

// htmlMessage pulls the <p> text out of a framework error page
func htmlMessage(page string) string {
	start := strings.LastIndex(page, "<p>")
	end := strings.LastIndex(page, "</p>")
	if start >= 0 && end > start {
		return strings.TrimSpace(page[start+3 : end])
	}
	return ""
}

// Ping checks the backend health endpoint and returns its status line
func (c *Client) Ping(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/"}, &resp); err != nil {
		return "", err
	}
	if resp.Status == "" {
		return "", errors.New("backend did not report a status")
	}
	return resp.Status, nil
}
