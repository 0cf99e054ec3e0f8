package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/CrestNiraj12/terminalreels/domain"
	"github.com/CrestNiraj12/terminalreels/infra/auth"
)

// maxBody caps how much of a response is read into memory.
const maxBody = 8 << 20

// Client is a thin HTTP wrapper for a JSON API.
// It handles base URL construction and optional API key injection.
type Client struct {
	baseURL string
	keys    auth.KeyProvider // nil for unauthenticated APIs
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates an API client. keys may be nil.
func NewClient(baseURL string, keys auth.KeyProvider, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL: baseURL,
		keys:    keys,
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return domain.ErrUnexpectedStatus }

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// Get performs a GET request and returns the response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	_, data, err := c.Do(ctx, http.MethodGet, path, nil)
	return data, err
}

// Put performs a PUT request and returns the status code and body.
func (c *Client) Put(ctx context.Context, path string, body io.Reader) (int, []byte, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Do performs a request. Non-2xx responses yield a *StatusError together
// with the status code.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (int, []byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.keys != nil {
		key, err := c.keys.APIKey()
		if err != nil {
			return 0, nil, fmt.Errorf("auth: %w", err)
		}
		req.Header.Set("Authorization", key)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("api request failed", "method", method, "path", path, "err", err)
		return 0, nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	c.log.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, nil, &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}

	return resp.StatusCode, data, nil
}
