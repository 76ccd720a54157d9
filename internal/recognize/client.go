// Package recognize talks to the remote service that interprets a drawing
// as a mathematical expression.
package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "http://localhost:8900/calculate"

var (
	// ErrNetwork reports a transport failure reaching the endpoint.
	ErrNetwork = errors.New("recognition endpoint unreachable")
	// ErrMalformedResponse reports a non-2xx status or a body without a
	// non-empty data list.
	ErrMalformedResponse = errors.New("unexpected recognition response")
)

// maxBodyPreview bounds how much of an unexpected body ends up in errors.
const maxBodyPreview = 200

// Client submits drawings to the recognition endpoint.
type Client struct {
	endpoint  string
	http      *http.Client
	userAgent string

	timeout    time.Duration
	hasTimeout bool
}

// Option modifies a Client during creation.
type Option func(*Client)

// WithEndpoint sets the URL requests are posted to.
func WithEndpoint(url string) Option { return func(c *Client) { c.endpoint = url } }

// WithHTTPClient replaces the transport used for requests. A nil client
// selects a default one.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTimeout bounds each request. Zero means no timeout. It applies to
// whichever HTTP client is in effect once all options have run; the
// caller's client is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// NewClient creates a Client for the default endpoint unless overridden.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:  DefaultEndpoint,
		http:      &http.Client{},
		userAgent: "sketchcalc",
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.hasTimeout {
		h := *c.http
		h.Timeout = c.timeout
		c.http = &h
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Submit posts image, a PNG data URL, with the variable table and returns the
// recognized results in service order. The call blocks until the transport
// resolves or ctx is cancelled; there is no retry.
func (c *Client) Submit(ctx context.Context, image string, vars map[string]any) ([]Result, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	body, err := json.Marshal(Request{Image: image, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reqID := uuid.New().String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Printf("recognize %s: posting %d bytes to %s", reqID, len(body), c.endpoint)
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrMalformedResponse, res.StatusCode, preview(data))
	}

	results, err := parseResults(data)
	if err != nil {
		return nil, err
	}
	log.Printf("recognize %s: status %d, %d result(s)", reqID, res.StatusCode, len(results))
	return results, nil
}

func parseResults(data []byte) ([]Result, error) {
	var env Response
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	raw := bytes.TrimSpace(env.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: missing data list: %s", ErrMalformedResponse, preview(data))
	}
	var results []Result
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: empty data list", ErrMalformedResponse)
	}
	return results, nil
}

func preview(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > maxBodyPreview {
		s = s[:maxBodyPreview] + "..."
	}
	return s
}
