package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/image-harvest/internal/harvest"
	"github.com/pdiddy/image-harvest/internal/search"
	"github.com/pdiddy/image-harvest/internal/secrets"
	"github.com/pdiddy/image-harvest/internal/terms"
	"github.com/pdiddy/image-harvest/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Search for images and download those that pass validation",
	Long: `Download runs one search per term (--query, or one term per line of --file),
pages through up to --max-results results, fetches every result whose URL
ends in --extension, and deletes files that are not --format images of at
least --min-width x --min-height.

A failed search request stops the run. A failed image download is reported
and skipped.`,
	RunE: runDownload,
}

// harvestFlags maps download flags to config keys.
var harvestFlags = map[string]string{
	"apikey":        "api_key",
	"output":        "output_dir",
	"endpoint":      "endpoint",
	"max-results":   "max_results",
	"page-size":     "page_size",
	"min-width":     "min_width",
	"min-height":    "min_height",
	"extension":     "extension",
	"format":        "format",
	"fetch-timeout": "fetch_timeout",
	"user-agent":    "user_agent",
	"rate":          "download_rate",
}

func init() {
	f := downloadCmd.Flags()
	f.String("query", "", "search query; quote multi-word searches")
	f.String("file", "", "file with one search term per line")
	f.String("apikey", "", "image search subscription key")
	f.String("output", "", "output directory, created if absent")
	f.String("endpoint", types.DefaultEndpoint, "image search endpoint URL")
	f.Int("max-results", types.DefaultMaxResults, "maximum results considered per term")
	f.Int("page-size", types.DefaultPageSize, "results requested per page")
	f.Int("min-width", types.DefaultMinWidth, "minimum image width in pixels")
	f.Int("min-height", types.DefaultMinHeight, "minimum image height in pixels")
	f.String("extension", types.DefaultExtension, "only download URLs ending in this extension")
	f.String("format", types.DefaultFormat, "image format downloaded files must decode as")
	f.Duration("fetch-timeout", types.DefaultFetchTimeout, "timeout for each image download")
	f.String("user-agent", types.DefaultUserAgent, "User-Agent header for HTTP requests")
	f.Float64("rate", 0, "maximum image downloads per second (0 = unlimited)")

	downloadCmd.MarkFlagsMutuallyExclusive("query", "file")
	downloadCmd.MarkFlagsOneRequired("query", "file")

	for flag, key := range harvestFlags {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(downloadCmd)
}

// loadHarvestConfig reads the effective configuration from flags, config
// file and environment, filling the API key from .secrets/ if unset.
func loadHarvestConfig() (types.HarvestConfig, error) {
	var cfg types.HarvestConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.APIKey = secrets.Fallback(loadedSecrets, secrets.SearchAPIKey, cfg.APIKey)
	return cfg.WithDefaults(), nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	file, _ := cmd.Flags().GetString("file")

	cfg, err := loadHarvestConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return errors.New("an API key is required: --apikey, IMAGE_HARVEST_API_KEY, or .secrets/" + secrets.SearchAPIKey)
	}
	if cfg.OutputDir == "" {
		return errors.New("an output directory is required: --output or IMAGE_HARVEST_OUTPUT_DIR")
	}

	list, err := terms.Resolve(query, file)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	_, err = harvest.Run(cmd.Context(), search.NewClient(cfg), harvest.NewHTTPFetcher(cfg), list, cfg, cmd.OutOrStdout())
	return err
}
