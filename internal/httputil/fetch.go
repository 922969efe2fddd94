// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages: a bounded
// single-attempt download and the error kinds a per-item failure can take.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Kind classifies a recoverable per-item failure.
type Kind int

const (
	// KindTransport covers connection failures and non-2xx responses.
	KindTransport Kind = iota
	// KindTimeout is a download that exceeded its deadline.
	KindTimeout
	// KindLocalIO is a failure writing or removing a file on disk.
	KindLocalIO
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindLocalIO:
		return "local-io"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FetchError is a per-item failure. Callers log it and move on.
type FetchError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError returns the FetchError in err's chain, if any.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// LocalIO wraps a filesystem error for url as a KindLocalIO FetchError.
func LocalIO(url string, err error) error {
	return &FetchError{Kind: KindLocalIO, URL: url, Err: err}
}

// Fetch downloads url in a single attempt bounded by timeout and returns
// the full body. A non-2xx status is reported as KindTransport so that no
// error page is ever written to disk.
func Fetch(ctx context.Context, client *http.Client, url string, timeout time.Duration, userAgent string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Kind: KindTransport, URL: url, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	return data, nil
}

func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindTransport
}
