// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed queries the NCBI E-utilities API: keyword search for PMIDs
// followed by batched detail fetches of author and affiliation metadata.
package pubmed

import (
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	eSearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	eFetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

const (
	// batchSize is the number of PMIDs per efetch request.
	batchSize = 200

	// NCBI allows 3 requests/second without an API key, 10 with one.
	keylessPerSecond = 3
	keyedPerSecond   = 10
)

// Client is a rate-limited E-utilities client.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	email      string
	apiKey     string
	userAgent  string
	maxResults int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimiter sets a custom rate limiter. Tests use this to avoid
// real pacing delays.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// NewClient creates an E-utilities client from the fetch configuration.
// The rate limit is chosen by API key presence: burst 1, so the minimum
// inter-request spacing holds before every outbound call.
func NewClient(cfg types.FetchConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	perSecond := keylessPerSecond
	if cfg.APIKey != "" {
		perSecond = keyedPerSecond
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
		email:      cfg.Email,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		maxResults: maxResults,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// identify appends the courtesy email and API key parameters NCBI uses to
// attribute traffic and raise rate limits.
func (c *Client) identify(params url.Values) {
	if c.email != "" {
		params.Set("email", c.email)
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
}
