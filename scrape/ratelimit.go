package scrape

import (
	"context"

	"github.com/provdir/provdir"
	"golang.org/x/time/rate"
)

var _ provdir.RateLimiter = (*Limiter)(nil)

// Limiter paces page requests using a token bucket. The directory lives on a
// single host, so one bucket covers the whole scrape.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter creates a new Limiter with the specified requests per second
// limit and a burst of 1 (no bursting allowed).
func NewLimiter(rps float64) *Limiter {
	return &Limiter{
		l: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the rate limit allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}
