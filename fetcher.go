package provdir

import "context"

// Fetcher retrieves the rendered markup of a directory page.
// Implementations may use browser automation to dereference the shadow DOM
// the directory widget renders into.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the directory widget to render,
	// and returns its markup. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RateLimiter paces outgoing page requests.
type RateLimiter interface {
	// Wait blocks until the rate limit allows the next request.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context) error
}
