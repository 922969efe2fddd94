// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest runs the search, download and validate loop for a list of
// search terms. Search failures end the run; per-image failures are logged
// and skipped.
package harvest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/image-harvest/internal/httputil"
	"github.com/pdiddy/image-harvest/internal/search"
	"github.com/pdiddy/image-harvest/internal/store"
	"github.com/pdiddy/image-harvest/internal/validate"
	"github.com/pdiddy/image-harvest/pkg/types"
)

// Fetcher downloads the bytes behind an image URL in a single attempt.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the network Fetcher. Each call is bounded by Timeout.
type HTTPFetcher struct {
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return httputil.Fetch(ctx, f.Client, url, f.Timeout, f.UserAgent)
}

// NewHTTPFetcher returns an HTTPFetcher configured from cfg.
func NewHTTPFetcher(cfg types.HarvestConfig) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{}, Timeout: cfg.FetchTimeout, UserAgent: cfg.UserAgent}
}

// Result counts item outcomes across a run.
type Result struct {
	Terms     int
	Pages     int
	Skipped   int
	Failed    int
	Kept      int
	Deleted   int
	KeptPaths []string
}

func (r *Result) record(o types.ItemOutcome, path string) {
	switch o {
	case types.OutcomeSkipped:
		r.Skipped++
	case types.OutcomeFetchFailed:
		r.Failed++
	case types.OutcomeKept:
		r.Kept++
		r.KeptPaths = append(r.KeptPaths, path)
	case types.OutcomeDeleted:
		r.Deleted++
	}
}

// Extension returns the part of rawURL from its final '.', or "" when
// there is none. No URL parsing is done: a query string stays attached.
func Extension(rawURL string) string {
	i := strings.LastIndex(rawURL, ".")
	if i < 0 {
		return ""
	}
	return rawURL[i:]
}

// Harvester holds the collaborators for one run.
type Harvester struct {
	Searcher search.Searcher
	Fetcher  Fetcher
	Config   types.HarvestConfig
	Out      io.Writer

	limiter *rate.Limiter
}

// New returns a Harvester. cfg is completed with defaults.
func New(s search.Searcher, f Fetcher, cfg types.HarvestConfig, w io.Writer) *Harvester {
	cfg = cfg.WithDefaults()
	h := &Harvester{Searcher: s, Fetcher: f, Config: cfg, Out: w}
	if cfg.DownloadRate > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.DownloadRate), 1)
	}
	return h
}

// Run processes terms in order. The first search error is returned and no
// further pages or terms are attempted.
func Run(ctx context.Context, s search.Searcher, f Fetcher, terms []string, cfg types.HarvestConfig, w io.Writer) (Result, error) {
	return New(s, f, cfg, w).Run(ctx, terms)
}

// Run processes terms in order.
func (h *Harvester) Run(ctx context.Context, terms []string) (Result, error) {
	var result Result
	fmt.Fprintf(h.Out, "performing %d search(es), up to %d files each\n", len(terms), h.Config.MaxResults)
	for _, term := range terms {
		if err := h.term(ctx, term, &result); err != nil {
			return result, err
		}
		result.Terms++
	}
	return result, nil
}

func (h *Harvester) term(ctx context.Context, term string, result *Result) error {
	cfg := h.Config

	// The offset-0 page supplies the estimate and doubles as the first page.
	first, err := h.Searcher.Page(ctx, term, 0, cfg.PageSize)
	if err != nil {
		return fmt.Errorf("searching %q: %w", term, err)
	}
	bound := search.Bound(first.TotalEstimatedMatches, cfg.MaxResults)
	fmt.Fprintf(h.Out, "search: %d results for %q\n", bound, term)

	seq := store.NewSequencer(cfg.OutputDir, term, cfg.Extension)
	for _, offset := range search.Offsets(bound, cfg.PageSize) {
		page := first
		if offset > 0 {
			page, err = h.Searcher.Page(ctx, term, offset, cfg.PageSize)
			if err != nil {
				return fmt.Errorf("searching %q at offset %d: %w", term, offset, err)
			}
		}
		result.Pages++
		fmt.Fprintf(h.Out, "page: %d-%d of %d\n", offset, offset+cfg.PageSize, bound)

		for _, item := range page.Value {
			outcome, path, err := h.item(ctx, seq, item)
			if err != nil {
				return err
			}
			result.record(outcome, path)
		}
	}
	return nil
}

// item handles one result. The returned error is non-nil only when ctx is
// done; per-item failures are reported as OutcomeFetchFailed.
func (h *Harvester) item(ctx context.Context, seq *store.Sequencer, item types.ImageResult) (types.ItemOutcome, string, error) {
	cfg := h.Config
	url := item.ContentURL
	if Extension(url) != cfg.Extension {
		return types.OutcomeSkipped, "", nil
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return "", "", err
		}
	}

	fmt.Fprintf(h.Out, "fetching: %s\n", url)
	data, err := h.Fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return "", "", ctx.Err()
		}
		h.failed(url, err)
		return types.OutcomeFetchFailed, "", nil
	}

	path, err := store.Place(seq, data)
	if err != nil {
		h.failed(url, httputil.LocalIO(url, err))
		return types.OutcomeFetchFailed, "", nil
	}

	v, err := validate.Apply(path, validate.Rules{
		Format:    cfg.Format,
		MinWidth:  cfg.MinWidth,
		MinHeight: cfg.MinHeight,
	})
	if err != nil {
		h.failed(url, httputil.LocalIO(url, err))
		return types.OutcomeFetchFailed, "", nil
	}
	if !v.Keep {
		fmt.Fprintf(h.Out, "deleted: %s (%s)\n", path, v.Reason)
		return types.OutcomeDeleted, path, nil
	}
	fmt.Fprintf(h.Out, "kept:    %s (%dx%d)\n", path, v.Width, v.Height)
	return types.OutcomeKept, path, nil
}

func (h *Harvester) failed(url string, err error) {
	fmt.Fprintf(h.Out, "failed:  %s (%v)\n", url, err)
}
