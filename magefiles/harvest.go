//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Harvest builds the CLI and downloads images for query into the default
// output directory. The API key is read from .secrets/ or the environment.
func Harvest(query string) error {
	mg.Deps(Build, Init)
	return sh.RunV("bin/"+binName, "download", "--query", query, "--output", defaultOutputDir)
}
