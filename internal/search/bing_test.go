// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/image-harvest/pkg/types"
)

const samplePageJSON = `{
  "_type": "Images",
  "totalEstimatedMatches": 120,
  "nextOffset": 52,
  "value": [
    {"name": "tabby", "contentUrl": "https://img.example/tabby.jpg", "width": 1024, "height": 768, "encodingFormat": "jpeg"},
    {"name": "kitten", "contentUrl": "https://img.example/kitten.png", "encodingFormat": "png"}
  ]
}`

func newTestClient(ts *httptest.Server) *Client {
	return &Client{HTTP: ts.Client(), Endpoint: ts.URL + "/images/search", APIKey: "key-123", UserAgent: "image-harvest/test"}
}

func TestPageRequestParams(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, samplePageJSON)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Page(context.Background(), "red pandas", 50, 25)
	require.NoError(t, err)

	assert.Equal(t, "/images/search", captured.URL.Path)
	q := captured.URL.Query()
	assert.Equal(t, "red pandas", q.Get("q"))
	assert.Equal(t, "50", q.Get("offset"))
	assert.Equal(t, "25", q.Get("count"))
	assert.Equal(t, "key-123", captured.Header.Get("Ocp-Apim-Subscription-Key"))
	assert.Equal(t, "image-harvest/test", captured.Header.Get("User-Agent"))
}

func TestPageDecodesResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, samplePageJSON)
	}))
	defer ts.Close()

	page, err := newTestClient(ts).Page(context.Background(), "cats", 0, 50)
	require.NoError(t, err)

	assert.Equal(t, 120, page.TotalEstimatedMatches)
	assert.Equal(t, 52, page.NextOffset)
	require.Len(t, page.Value, 2)
	assert.Equal(t, types.ImageResult{
		Name:           "tabby",
		ContentURL:     "https://img.example/tabby.jpg",
		Width:          1024,
		Height:         768,
		EncodingFormat: "jpeg",
	}, page.Value[0])
	assert.Equal(t, "https://img.example/kitten.png", page.Value[1].ContentURL)
}

func TestPageErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus bool
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":"401"}}`, true},
		{"server error", http.StatusInternalServerError, ``, true},
		{"malformed json", http.StatusOK, `{"value": [`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			page, err := newTestClient(ts).Page(context.Background(), "cats", 0, 50)
			require.Error(t, err)
			assert.Nil(t, page)
			assert.Equal(t, tt.wantStatus, IsStatus(err))
		})
	}
}

func TestNewClientUsesConfig(t *testing.T) {
	cfg := types.HarvestConfig{}.WithDefaults()
	cfg.APIKey = "abc"
	c := NewClient(cfg)
	assert.Equal(t, types.DefaultEndpoint, c.Endpoint)
	assert.Equal(t, "abc", c.APIKey)
	assert.Equal(t, types.DefaultUserAgent, c.UserAgent)
	assert.Zero(t, c.HTTP.Timeout)
}
