package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the request rate for the Crossref polite pool.
	// Crossref advertises 50 req/s but a batch renamer has no reason to
	// get anywhere near it.
	RateLimit = 5.0

	// maxResponseBytes bounds how much of a works response we read.
	maxResponseBytes = 4 << 20
)

// Client is a rate-limited HTTP client for the Crossref works API.
// Responses may be served from and stored to an injected Cache; bibliographic
// metadata for a published article is effectively immutable, so cached
// records stay valid for a long time.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string // contact address for the Crossref polite pool
	cache      *Cache
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithMailto sets the contact email sent with each request. Crossref routes
// requests carrying a mailto into its polite pool with better service.
func WithMailto(addr string) ClientOption {
	return func(c *Client) {
		c.mailto = addr
	}
}

// WithCache sets the response cache.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a new Crossref works API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Works fetches the registry record for one DOI.
// A DOI unknown to Crossref returns ErrNotFound.
func (c *Client) Works(ctx context.Context, doi string) (*Work, error) {
	if cached, ok := c.fromCache(doi); ok {
		return cached, nil
	}

	body, err := c.get(ctx, doi)
	if err != nil {
		return nil, err
	}

	var work Work
	if err := json.Unmarshal(body, &work); err != nil {
		return nil, fmt.Errorf("%w: parsing works response: %v", ErrInvalidResponse, err)
	}
	if work.Message == nil {
		return nil, fmt.Errorf("%w: missing message envelope", ErrInvalidResponse)
	}

	if c.cache != nil {
		// Cache failures do not fail the lookup.
		_ = c.cache.Put(doi, body)
	}

	return &work, nil
}

// fromCache returns a cached, unexpired works response if one exists.
func (c *Client) fromCache(doi string) (*Work, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(doi)
	if err != nil || !ok {
		return nil, false
	}
	var work Work
	if err := json.Unmarshal(body, &work); err != nil || work.Message == nil {
		return nil, false
	}
	return &work, true
}

// get performs the rate-limited HTTP request for one DOI.
func (c *Client) get(ctx context.Context, doi string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s/works/%s", c.baseURL, url.PathEscape(doi))
	if c.mailto != "" {
		reqURL += "?mailto=" + url.QueryEscape(c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent(c.mailto))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, doi)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, doi)
	case resp.StatusCode >= 400:
		return nil, &APIError{StatusCode: resp.StatusCode, DOI: doi}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrNetworkError, err)
	}
	return body, nil
}

// userAgent builds the polite-pool User-Agent string.
func userAgent(mailto string) string {
	if mailto == "" {
		return "nameit/1.0"
	}
	return fmt.Sprintf("nameit/1.0 (mailto:%s)", mailto)
}

// CheckConnectivity performs a bounded request against the API root to
// verify network access before a batch run starts.
func (c *Client) CheckConnectivity(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/works", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	resp.Body.Close()
	return nil
}
