// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search talks to the image search endpoint and computes the
// pagination plan for a term.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/image-harvest/pkg/types"
)

// Searcher fetches one page of image results. *Client implements it; tests
// substitute their own.
type Searcher interface {
	Page(ctx context.Context, term string, offset, count int) (*types.SearchPage, error)
}

// StatusError is a non-200 response from the search endpoint. It is fatal
// for the run.
type StatusError struct {
	StatusCode int
	Term       string
	Offset     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image search returned HTTP %d for %q at offset %d", e.StatusCode, e.Term, e.Offset)
}

// IsStatus reports whether err is a StatusError.
func IsStatus(err error) bool {
	var e *StatusError
	return errors.As(err, &e)
}

// Bound clamps the endpoint's estimate to max. Negative estimates count as zero.
func Bound(estimated, max int) int {
	if estimated < 0 {
		return 0
	}
	if max > 0 && estimated > max {
		return max
	}
	return estimated
}

// Offsets returns the request offsets covering [0, bound) in steps of pageSize.
func Offsets(bound, pageSize int) []int {
	if pageSize <= 0 || bound <= 0 {
		return nil
	}
	var out []int
	for off := 0; off < bound; off += pageSize {
		out = append(out, off)
	}
	return out
}
