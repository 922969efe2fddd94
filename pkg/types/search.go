// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the image-harvest pipeline:
// search responses, harvest configuration and per-item outcomes.
package types

// ImageResult is one item of a search page. Only ContentURL drives the
// pipeline; the rest is decoded for progress output.
type ImageResult struct {
	// ContentURL is the direct URL of the full-size image.
	ContentURL string `json:"contentUrl" yaml:"content_url"`

	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	HostPageURL    string `json:"hostPageUrl,omitempty" yaml:"host_page_url,omitempty"`
	ThumbnailURL   string `json:"thumbnailUrl,omitempty" yaml:"thumbnail_url,omitempty"`
	EncodingFormat string `json:"encodingFormat,omitempty" yaml:"encoding_format,omitempty"`
	Width          int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height         int    `json:"height,omitempty" yaml:"height,omitempty"`
}

// SearchPage is one response from the image search endpoint.
type SearchPage struct {
	// TotalEstimatedMatches is the endpoint's estimate of available results.
	TotalEstimatedMatches int `json:"totalEstimatedMatches" yaml:"total_estimated_matches"`

	// NextOffset is the offset the endpoint suggests for the next request.
	NextOffset int `json:"nextOffset,omitempty" yaml:"next_offset,omitempty"`

	Value []ImageResult `json:"value" yaml:"value"`
}
