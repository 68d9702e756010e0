package fetcher

import (
	"context"
	"math/rand"
	"time"
)

// DelayStrategy pauses between operations. Implementations must honor
// context cancellation so a crawl can be interrupted mid-pause.
type DelayStrategy interface {
	Wait(ctx context.Context) error
}

// UniformDelay pauses for a duration sampled uniformly from [Min, Max].
type UniformDelay struct {
	Min time.Duration
	Max time.Duration
}

func (d UniformDelay) Wait(ctx context.Context) error {
	wait := d.Min
	if span := d.Max - d.Min; span > 0 {
		wait += time.Duration(rand.Int63n(int64(span) + 1))
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay skips the pause. Used by tests and dry runs.
type NoDelay struct{}

func (NoDelay) Wait(ctx context.Context) error {
	return ctx.Err()
}
