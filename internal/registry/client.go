// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// defaultBaseURL is the production Modrinth v2 API endpoint.
	defaultBaseURL = "https://api.modrinth.com/v2"

	// defaultTimeout bounds every registry request so a stuck connection
	// cannot hang an install.
	defaultTimeout = 30 * time.Second

	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	// Prevents unbounded memory consumption from malicious or malformed responses.
	maxJSONResponseBytes = 10 << 20
)

type (
	// Client queries the Modrinth v2 API for project and version metadata
	// and streams file downloads.
	Client struct {
		httpClient *http.Client
		baseURL    string // API base URL (default: Modrinth production, overridable for tests)
		token      string // Optional API token for authenticated requests
		userAgent  string // User-Agent header value
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)
)

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(r *Client) {
		r.httpClient = c
	}
}

// WithBaseURL overrides the registry API base URL, primarily for test servers.
func WithBaseURL(base string) ClientOption {
	return func(r *Client) {
		r.baseURL = strings.TrimRight(base, "/")
	}
}

// WithToken sets a Modrinth API token for authenticated requests.
// All read operations work without one.
func WithToken(token string) ClientOption {
	return func(r *Client) {
		r.token = token
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(r *Client) {
		r.userAgent = ua
	}
}

// WithTimeout replaces the HTTP client with one using the given per-request
// timeout. Use WithHTTPClient instead for full transport control.
func WithTimeout(d time.Duration) ClientOption {
	return func(r *Client) {
		r.httpClient = &http.Client{Timeout: d}
	}
}

// NewClient creates a Client with sensible defaults: the production
// Modrinth endpoint, a 30s per-request timeout, and no auth token.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		userAgent:  "modget/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Project fetches metadata for a single project. The identifier may be a
// slug or an internal project id; the API accepts both. Returns
// ErrProjectNotFound for a 404.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	reqURL := fmt.Sprintf("%s/project/%s", c.baseURL, url.PathEscape(id))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, &APIError{Op: "get project", URL: redactURL(reqURL), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("project %q: %w", id, ErrProjectNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Op: "get project", Status: resp.StatusCode, URL: redactURL(reqURL)}
	}

	var p Project
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&p); err != nil {
		return nil, &APIError{Op: "get project", URL: redactURL(reqURL), Cause: fmt.Errorf("decoding response: %w", err)}
	}
	return &p, nil
}

// Versions fetches all versions of a project, in the registry's order
// (newest first). Compatibility filtering happens client-side in the
// resolve package, matching the reference behavior.
func (c *Client) Versions(ctx context.Context, slug string) ([]Version, error) {
	reqURL := fmt.Sprintf("%s/project/%s/version", c.baseURL, url.PathEscape(slug))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, &APIError{Op: "list versions", URL: redactURL(reqURL), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("project %q: %w", slug, ErrProjectNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Op: "list versions", Status: resp.StatusCode, URL: redactURL(reqURL)}
	}

	var versions []Version
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&versions); err != nil {
		return nil, &APIError{Op: "list versions", URL: redactURL(reqURL), Cause: fmt.Errorf("decoding response: %w", err)}
	}
	return versions, nil
}

// Search queries the registry's project search endpoint. limit bounds the
// number of hits returned (the API caps it at 100).
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, &APIError{Op: "search", URL: redactURL(reqURL), Cause: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Op: "search", Status: resp.StatusCode, URL: redactURL(reqURL)}
	}

	var result SearchResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&result); err != nil {
		return nil, &APIError{Op: "search", URL: redactURL(reqURL), Cause: fmt.Errorf("decoding response: %w", err)}
	}
	return &result, nil
}

// Download fetches the file at the given URL and returns the response body
// as a streaming reader. The caller is responsible for closing the returned
// ReadCloser. File URLs typically point at the registry's CDN, not the API
// host, so the auth token is only attached when the host matches.
func (c *Client) Download(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	resp, err := c.doRequest(ctx, fileURL)
	if err != nil {
		return nil, &APIError{Op: "download file", URL: redactURL(fileURL), Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &APIError{Op: "download file", Status: resp.StatusCode, URL: redactURL(fileURL)}
	}

	return resp.Body, nil
}

// doRequest creates and executes a GET request with common registry headers.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	// Only attach the auth token when the request targets the registry's own
	// host. This prevents token leakage to third-party CDNs serving file
	// downloads.
	if c.token != "" && isRegistryHost(req.URL, c.baseURL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	return resp, nil
}

// isRegistryHost reports whether reqURL targets the configured registry host,
// so the auth token can be safely attached.
func isRegistryHost(reqURL *url.URL, baseURL string) bool {
	base, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(reqURL.Host, base.Host)
}
