// Package transport posts assembled provider requests and translates
// failures into typed provider errors.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"clippy/internal/providers"
)

// DefaultTimeout bounds a single request
const DefaultTimeout = 60 * time.Second

const (
	errorDetailLimit = 500
	invalidBodyLimit = 1000
)

// Client sends provider requests. It never retries.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a functional option for configuring a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New creates a Client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the configured per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Send posts req and returns the raw JSON response body
func (c *Client) Send(ctx context.Context, req *providers.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, providers.NewError(providers.KindConnection, fmt.Sprintf("Network or request setup error: %v", err), err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.translate(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.translate(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := providers.NewError(providers.KindConnection,
			fmt.Sprintf("HTTP Error: %d %s - %s", resp.StatusCode, reason(resp.StatusCode), errorDetail(body)), nil)
		e.StatusCode = resp.StatusCode
		return nil, e
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, providers.NewError(providers.KindResponse, "API returned an empty response.", nil)
	}
	if !gjson.ValidBytes(body) {
		e := providers.NewError(providers.KindResponse,
			fmt.Sprintf("Failed to decode JSON response. Status: %d, Body: %s", resp.StatusCode, limit(string(body), invalidBodyLimit)), nil)
		e.StatusCode = resp.StatusCode
		return nil, e
	}
	return body, nil
}

func (c *Client) translate(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return providers.NewError(providers.KindTimeout,
			fmt.Sprintf("Request timed out after %g seconds.", c.timeout.Seconds()), err)
	}
	return providers.NewError(providers.KindConnection, fmt.Sprintf("Network or request setup error: %v", err), err)
}

// errorDetail picks the most specific message from an error body
func errorDetail(body []byte) string {
	if !gjson.ValidBytes(body) || len(bytes.TrimSpace(body)) == 0 {
		return limit(string(body), errorDetailLimit)
	}
	res := gjson.ParseBytes(body)
	if msg := res.Get("error.message"); msg.Type == gjson.String && msg.String() != "" {
		return msg.String()
	}
	if e := res.Get("error"); e.Type == gjson.String && e.String() != "" {
		return e.String()
	}
	if detail := res.Get("detail"); detail.Exists() && detail.Type != gjson.Null {
		return detail.String()
	}
	return strings.TrimSpace(res.Raw)
}

func reason(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown"
}

func limit(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
