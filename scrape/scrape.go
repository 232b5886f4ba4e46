// Package scrape provides directory scraping orchestration.
// It coordinates page fetching, fragment parsing, provider extraction,
// and storage of provider records.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/provdir/provdir"
	"github.com/provdir/provdir/bloom"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for page content deduplication.
const (
	expectedPages     = 1000
	falsePositiveRate = 0.01
)

// Scraper orchestrates scraping of a paginated provider directory.
type Scraper struct {
	Fetcher     provdir.Fetcher
	Parser      provdir.FragmentParser
	Extractor   provdir.ProviderExtractor
	Providers   provdir.ProviderService
	Limiter     provdir.RateLimiter
	Pages       int
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a scrape operation.
type Result struct {
	PagesFetched int
	PagesSkipped int
	Extracted    int
	Saved        int
	Failed       int
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of fetching a single directory page.
type pageResult struct {
	position int
	url      string
	html     string
	err      error
}

// Run scrapes the directory starting at searchURL and saves the extracted
// providers. Pages are fetched concurrently but processed in page order, so
// the first occurrence of a duplicated name wins regardless of which fetch
// finished first. The progress callback, if provided, receives events as
// scraping proceeds.
func (s *Scraper) Run(ctx context.Context, searchURL string, progress ProgressFunc) (*Result, error) {
	pages := s.Pages
	if pages <= 0 {
		pages = 1
	}
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	urls := make([]string, pages)
	for i := range urls {
		u, err := PageURL(searchURL, i+1)
		if err != nil {
			return nil, err
		}
		urls[i] = u
	}

	resultCh := make(chan pageResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			i, pageURL := i, pageURL
			g.Go(func() error {
				result := s.fetchPage(gctx, i, pageURL)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in page order.
	results := make([]pageResult, len(urls))
	var result Result
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       r.url,
					Error:     r.err,
				})
			}
		} else {
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       r.url,
				})
			}
		}
	}

	// Parse pages in order, skipping repeats. A paginated directory that runs
	// out of results serves the last page again for every higher page number.
	seen := bloom.NewFilter(expectedPages, falsePositiveRate)
	var fragments []provdir.Fragment

	for _, r := range results {
		if r.err != nil {
			continue
		}
		result.PagesFetched++

		hash := pageHash(r.html)
		if seen.Test(hash) {
			result.PagesSkipped++
			continue
		}
		seen.Add(hash)

		pageFragments, err := s.Parser.ParseFragments(r.html)
		if err != nil {
			result.Failed++
			continue
		}
		fragments = append(fragments, pageFragments...)
	}

	// Extract over the full batch so name deduplication spans pages.
	providers := s.Extractor.ExtractProviders(fragments)
	result.Extracted = len(providers)

	for _, p := range providers {
		if err := s.Providers.SaveProvider(ctx, p); err != nil {
			result.Failed++
			continue
		}
		result.Saved++
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// fetchPage fetches a single directory page, honoring the rate limit.
func (s *Scraper) fetchPage(ctx context.Context, position int, pageURL string) pageResult {
	result := pageResult{
		position: position,
		url:      pageURL,
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			result.err = err
			return result
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	result.html = html
	return result
}

// PageURL returns the URL for the given 1-based page of a directory search.
// Page 1 is the search URL itself; later pages carry a page query parameter.
func PageURL(searchURL string, page int) (string, error) {
	if page <= 1 {
		return searchURL, nil
	}
	u, err := url.Parse(searchURL)
	if err != nil {
		return "", fmt.Errorf("invalid search URL: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// pageHash computes a hash of page content using xxhash.
func pageHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
