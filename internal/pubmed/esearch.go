// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/get-papers-list/internal/httputil"
)

// Search runs an esearch query and returns the matching PMIDs in the
// relevance order the service returns them. The list is truncated to the
// configured maximum; no reordering is applied.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}

	params := url.Values{
		"db":         {"pubmed"},
		"term":       {query},
		"retmax":     {fmt.Sprintf("%d", c.maxResults)},
		"retmode":    {"json"},
		"usehistory": {"y"},
	}
	c.identify(params)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, eSearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var sr eSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing esearch response: %w", err)
	}

	ids := sr.Result.IDList
	if len(ids) > c.maxResults {
		ids = ids[:c.maxResults]
	}
	return ids, nil
}

// esearch JSON structures.
type eSearchResponse struct {
	Result eSearchResult `json:"esearchresult"`
}

type eSearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
