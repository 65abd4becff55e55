// Package fogapi is a typed client for the travel journal admin API. Each
// builder shapes one call; Client.Do sends it and unwraps the response
// envelope.
package fogapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Request is one admin API call before it is sent. Path is relative to the
// client's base path.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Client sends Requests to one backend.
type Client struct {
	baseURL    *url.URL
	basePath   string
	httpClient *http.Client
	headers    http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithBasePath prepends path to every request path, e.g. "/mock" to reach
// the mock server's "/mock/fog/..." routes.
func WithBasePath(path string) Option {
	return func(c *Client) {
		c.basePath = strings.TrimRight(path, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("fogapi: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("fogapi: base url %q needs a scheme and host", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers:    http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves req against the client's base URL and path.
func (c *Client) URL(req *Request) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + c.basePath + req.Path
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u.String()
}

// Do sends req and decodes the envelope payload into out. out may be nil
// when the payload is not needed.
func (c *Client) Do(ctx context.Context, req *Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("fogapi: encode %s %s: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req), body)
	if err != nil {
		return fmt.Errorf("fogapi: build %s %s: %w", req.Method, req.Path, err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(hreq)
	if err != nil {
		return fmt.Errorf("fogapi: %s %s: %w", req.Method, req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("fogapi: read %s %s: %w", req.Method, req.Path, err)
	}
	return decodeEnvelope(req, resp.StatusCode, raw, out)
}
