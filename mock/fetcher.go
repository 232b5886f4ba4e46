package mock

import (
	"context"

	"github.com/provdir/provdir"
)

var _ provdir.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of provdir.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ provdir.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of provdir.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
