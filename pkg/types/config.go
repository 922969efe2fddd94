// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// FetchTimeout bounds a single image download. The search request has
	// no timeout of its own.
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout" mapstructure:"fetch_timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "image-harvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the paginated search.
type SearchConfig struct {
	// Endpoint is the image search URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// APIKey is sent in the Ocp-Apim-Subscription-Key header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxResults caps the endpoint's estimated total per term (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// PageSize is the count parameter sent with each request (default 50).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
}

// ValidationConfig describes what a downloaded file must look like to be kept.
type ValidationConfig struct {
	// Extension is the only URL extension downloaded, including the dot (".jpg").
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// Format is the decoder name the file must decode as ("jpeg").
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	MinWidth  int `json:"min_width" yaml:"min_width" mapstructure:"min_width"`
	MinHeight int `json:"min_height" yaml:"min_height" mapstructure:"min_height"`
}

// HarvestConfig groups everything the harvest loop needs.
type HarvestConfig struct {
	HTTPConfig       `yaml:",inline" mapstructure:",squash"`
	SearchConfig     `yaml:",inline" mapstructure:",squash"`
	ValidationConfig `yaml:",inline" mapstructure:",squash"`

	// OutputDir receives downloaded files. It is created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// DownloadRate limits image downloads per second. Zero disables pacing.
	DownloadRate float64 `json:"download_rate" yaml:"download_rate" mapstructure:"download_rate"`
}

// Defaults used when a HarvestConfig field is left zero.
const (
	DefaultEndpoint     = "https://api.cognitive.microsoft.com/bing/v7.0/images/search"
	DefaultMaxResults   = 100
	DefaultPageSize     = 50
	DefaultMinWidth     = 320
	DefaultMinHeight    = 240
	DefaultExtension    = ".jpg"
	DefaultFormat       = "jpeg"
	DefaultFetchTimeout = 30 * time.Second
	DefaultUserAgent    = "image-harvest/0.1"
)

// WithDefaults returns a copy of c with zero fields set to their defaults.
func (c HarvestConfig) WithDefaults() HarvestConfig {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.MinWidth <= 0 {
		c.MinWidth = DefaultMinWidth
	}
	if c.MinHeight <= 0 {
		c.MinHeight = DefaultMinHeight
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// Redacted returns a copy of c safe to print.
func (c HarvestConfig) Redacted() HarvestConfig {
	if c.APIKey != "" {
		c.APIKey = "********"
	}
	return c
}
