// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/image-harvest/pkg/types"
)

// subscriptionKeyHeader carries the API credential on every search request.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// Client queries a Bing-style image search endpoint.
type Client struct {
	HTTP      *http.Client
	Endpoint  string
	APIKey    string
	UserAgent string
}

// NewClient returns a Client for cfg. The HTTP client has no timeout: a
// stalled search blocks until ctx is done.
func NewClient(cfg types.HarvestConfig) *Client {
	return &Client{
		HTTP:      &http.Client{},
		Endpoint:  cfg.Endpoint,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
	}
}

// Page fetches one page of results for term starting at offset. Any failure
// is returned to the caller; there is no retry.
func (c *Client) Page(ctx context.Context, term string, offset, count int) (*types.SearchPage, error) {
	params := url.Values{
		"q":      {term},
		"offset": {strconv.Itoa(offset)},
		"count":  {strconv.Itoa(count)},
	}
	reqURL := c.Endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(subscriptionKeyHeader, c.APIKey)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Term: term, Offset: offset}
	}

	var page types.SearchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing image search response: %w", err)
	}
	return &page, nil
}
