// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate decides whether a downloaded file is kept: it must
// decode as the expected image format and meet minimum dimensions.
package validate

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Rules are the acceptance criteria for a downloaded file.
type Rules struct {
	Format    string
	MinWidth  int
	MinHeight int
}

// Verdict is the result of checking one file.
type Verdict struct {
	Keep   bool
	Format string
	Width  int
	Height int
	Reason string
}

// Check reads the image header at path and compares it against rules.
// Any decode failure, including an unrecognized format or a truncated
// header, yields a delete verdict rather than an error. An error is
// returned only when the file cannot be opened.
func Check(path string, rules Rules) (Verdict, error) {
	f, err := os.Open(path)
	if err != nil {
		return Verdict{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return Verdict{Reason: fmt.Sprintf("not a decodable image: %v", err)}, nil
	}

	v := Verdict{Format: format, Width: cfg.Width, Height: cfg.Height}
	switch {
	case format != rules.Format:
		v.Reason = fmt.Sprintf("format %s, want %s", format, rules.Format)
	case cfg.Width < rules.MinWidth:
		v.Reason = fmt.Sprintf("width %d below %d", cfg.Width, rules.MinWidth)
	case cfg.Height < rules.MinHeight:
		v.Reason = fmt.Sprintf("height %d below %d", cfg.Height, rules.MinHeight)
	default:
		v.Keep = true
	}
	return v, nil
}

// Apply checks path and removes it when the verdict is not to keep it.
func Apply(path string, rules Rules) (Verdict, error) {
	v, err := Check(path, rules)
	if err != nil {
		return v, err
	}
	if v.Keep {
		return v, nil
	}
	if err := os.Remove(path); err != nil {
		return v, fmt.Errorf("removing %s: %w", path, err)
	}
	return v, nil
}
