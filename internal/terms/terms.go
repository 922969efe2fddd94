// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package terms resolves the ordered list of search terms for a run, either
// from a single literal query or from a line-delimited keyword file.
package terms

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNoSource is returned when neither a query nor a file is given.
	ErrNoSource = errors.New("provide either a query or a keyword file")

	// ErrSourceConflict is returned when both a query and a file are given.
	ErrSourceConflict = errors.New("query and keyword file are mutually exclusive")

	// ErrNoTerms is returned when a keyword file holds no non-blank lines.
	ErrNoTerms = errors.New("keyword file contains no search terms")
)

// FileAccessError reports a keyword file that could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("reading keyword file %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// IsFileAccess reports whether err is a FileAccessError.
func IsFileAccess(err error) bool {
	var e *FileAccessError
	return errors.As(err, &e)
}

// Resolve returns the search terms for a run. Exactly one of query and path
// must be non-empty. A literal query is returned as-is. A file yields one
// term per line after trimming whitespace; lines that trim to nothing are
// skipped. Duplicate terms are kept in file order.
func Resolve(query, path string) ([]string, error) {
	switch {
	case query != "" && path != "":
		return nil, ErrSourceConflict
	case query != "":
		return []string{query}, nil
	case path != "":
		return FromFile(path)
	default:
		return nil, ErrNoSource
	}
}

// FromFile reads terms from a line-delimited keyword file.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		term := strings.TrimSpace(sc.Text())
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	if err := sc.Err(); err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if len(out) == 0 {
		return nil, ErrNoTerms
	}
	return out, nil
}
