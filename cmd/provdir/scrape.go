package main

import (
	"fmt"

	"github.com/provdir/provdir/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	searchURL := c.URL
	if searchURL == "" {
		searchURL = deps.Config.SearchURL
	}

	if c.Pages > 0 {
		deps.Scraper.Pages = c.Pages
	}
	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Fetching %d pages from %s\n", event.Total, searchURL)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case scrape.ProgressFinished:
			// Summary printed after the scrape completes
		}
	}

	result, err := deps.Scraper.Run(deps.Ctx, searchURL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %d pages (%d repeated), extracted %d providers, saved %d\n",
		result.PagesFetched, result.PagesSkipped, result.Extracted, result.Saved)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d failures\n", result.Failed)
	}

	return nil
}
