// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the image-harvest CLI.
// image-harvest queries an image search API for one or more terms, downloads
// matching images into an output directory and deletes those that fail
// format or size checks.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/image-harvest/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the image-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "image-harvest",
	Short: "Build small image datasets from keyword lists",
	Long: `image-harvest queries an image search API for each search term, downloads
results whose URL has the configured extension, and keeps only files that
decode as the expected format at or above the minimum dimensions.

Settings come from flags, an image-harvest.yaml config file, or
IMAGE_HARVEST_* environment variables. The API key may also be stored in
.secrets/bing-api-key.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./image-harvest.yaml or ~/.config/image-harvest/image-harvest.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("image-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "image-harvest"))
		}
	}

	viper.SetEnvPrefix("IMAGE_HARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
