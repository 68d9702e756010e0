package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// RetryFetcher wraps a Fetcher with bounded retries. Failed attempts
// are separated by the backoff strategy; non-retryable errors and
// context cancellation stop the loop early.
type RetryFetcher struct {
	inner       Fetcher
	maxAttempts int
	backoff     DelayStrategy
	logger      *slog.Logger
}

func NewRetryFetcher(inner Fetcher, maxAttempts int, backoff DelayStrategy, logger *slog.Logger) *RetryFetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryFetcher{
		inner:       inner,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		logger:      logger.With("component", "fetcher", "type", "retry"),
	}
}

func (f *RetryFetcher) Type() string { return f.inner.Type() }

func (f *RetryFetcher) Close() error { return f.inner.Close() }

func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*types.Page, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		page, err := f.inner.Fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var fe *types.FetchError
		if errors.As(err, &fe) && !fe.IsRetryable() {
			f.logger.Warn("fetch failed, not retryable", "url", url, "attempt", attempt, "error", err)
			return nil, err
		}

		f.logger.Warn("fetch failed", "url", url, "attempt", attempt, "max_attempts", f.maxAttempts, "error", err)

		if attempt < f.maxAttempts {
			if err := f.backoff.Wait(ctx); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts for %s: %w", types.ErrAttemptsExhausted, f.maxAttempts, url, lastErr)
}
