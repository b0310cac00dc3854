package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter caps identification throughput in batch mode. The engine itself
// imposes no rate limiting; very large batches on shared machines use this
// to keep CPU consumption predictable.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing perSecond identifications with the
// given burst. A non-positive rate means unlimited.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until the next identification is allowed or the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether an identification may proceed without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
