// Package crawler orchestrates the paginated catalog walk and the
// per-product detail enrichment.
package crawler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omi5656/scraper-zozo/internal/extractor"
	"github.com/omi5656/scraper-zozo/internal/fetcher"
	"github.com/omi5656/scraper-zozo/internal/observability"
	"github.com/omi5656/scraper-zozo/internal/pipeline"
	"github.com/omi5656/scraper-zozo/internal/types"
)

// Crawler walks catalog pages in order, enriches each card from its
// detail page, and accumulates records until the target count is met
// or the catalog runs out. Failures cost at most the item or page they
// occur on; whatever was accumulated before is always returned.
type Crawler struct {
	fetcher fetcher.Fetcher
	listing *extractor.Listing
	detail  *extractor.Detail
	pipe    *pipeline.Pipeline
	delay   fetcher.DelayStrategy
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option adjusts crawler construction.
type Option func(*Crawler)

// WithDelay replaces the politeness pause between accumulated items.
func WithDelay(d fetcher.DelayStrategy) Option {
	return func(c *Crawler) { c.delay = d }
}

// WithMetrics attaches run counters.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Crawler) { c.metrics = m }
}

// WithPipeline replaces the post-processing chain.
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(c *Crawler) { c.pipe = p }
}

func New(f fetcher.Fetcher, listing *extractor.Listing, detail *extractor.Detail, logger *slog.Logger, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher: f,
		listing: listing,
		detail:  detail,
		pipe:    pipeline.Default(logger),
		delay:   fetcher.NoDelay{},
		metrics: observability.New(),
		logger:  logger.With("component", "crawler"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl walks categoryURL page by page until maxItems records are
// accumulated or the catalog is exhausted. The fetcher session is
// released exactly once before returning, whatever the exit path.
func (c *Crawler) Crawl(ctx context.Context, categoryURL string, maxItems int) []types.ProductRecord {
	defer func() {
		if err := c.fetcher.Close(); err != nil {
			c.logger.Warn("failed to close fetcher", "error", err)
		}
	}()

	records := make([]types.ProductRecord, 0, maxItems)

	for pageNum := 1; len(records) < maxItems; pageNum++ {
		if ctx.Err() != nil {
			c.logger.Info("crawl canceled", "accumulated", len(records))
			break
		}
		if done := c.crawlPage(ctx, categoryURL, pageNum, maxItems, &records); done {
			break
		}
	}

	c.logger.Info("crawl finished", "records", len(records), "target", maxItems)
	return records
}

// crawlPage processes one catalog page. It reports done=true when the
// crawl should stop: target met, catalog exhausted, listing fetch
// exhausted its retries, or the page blew up mid-parse. A failure
// never discards records accumulated so far.
func (c *Crawler) crawlPage(ctx context.Context, categoryURL string, pageNum, maxItems int, records *[]types.ProductRecord) (done bool) {
	pageURL := fmt.Sprintf("%s?page=%d", categoryURL, pageNum)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("catalog page processing panicked", "url", pageURL, "panic", r)
			done = true
		}
	}()

	page, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		c.logger.Error("listing fetch exhausted, stopping crawl", "url", pageURL, "error", err)
		return true
	}
	c.metrics.ListingPagesFetched.Add(1)

	partials, err := c.listing.Extract(page)
	if err != nil {
		c.logger.Error("listing parse failed, stopping crawl", "url", pageURL, "error", err)
		return true
	}
	if len(partials) == 0 {
		c.logger.Info("catalog exhausted", "url", pageURL)
		return true
	}

	c.logger.Info("catalog page scraped", "url", pageURL, "items", len(partials), "accumulated", len(*records))

	for _, rec := range partials {
		if len(*records) >= maxItems {
			return true
		}
		if ctx.Err() != nil {
			return true
		}

		c.enrich(ctx, rec)

		rec = c.pipe.Process(rec)
		if rec == nil {
			c.metrics.RecordsDropped.Add(1)
			continue
		}

		*records = append(*records, *rec)
		c.metrics.RecordsScraped.Add(1)

		if len(*records) >= maxItems {
			return true
		}
		if err := c.delay.Wait(ctx); err != nil {
			return true
		}
	}

	return false
}

// enrich fetches the product detail page and merges its fields into
// rec. On any failure the partial record is kept as-is, placeholders
// included, so one broken product page never costs the crawl an item.
func (c *Crawler) enrich(ctx context.Context, rec *types.ProductRecord) {
	page, err := c.fetcher.Fetch(ctx, rec.ProductURL)
	if err != nil {
		c.metrics.DetailFailures.Add(1)
		c.logger.Warn("detail fetch failed, keeping partial record", "url", rec.ProductURL, "error", err)
		return
	}
	c.metrics.DetailPagesFetched.Add(1)

	fields, err := c.detail.Extract(page)
	if err != nil {
		c.metrics.DetailFailures.Add(1)
		c.logger.Warn("detail parse failed, keeping partial record", "url", rec.ProductURL, "error", err)
		return
	}

	rec.Merge(fields)
}
