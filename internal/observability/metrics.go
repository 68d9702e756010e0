// Package observability carries the crawl's run counters.
package observability

import "sync/atomic"

// Metrics counts crawl activity. All counters are safe for concurrent
// use and cheap enough to bump on every record.
type Metrics struct {
	ListingPagesFetched atomic.Int64
	DetailPagesFetched  atomic.Int64
	RecordsScraped      atomic.Int64
	RecordsDropped      atomic.Int64
	DetailFailures      atomic.Int64
}

func New() *Metrics {
	return &Metrics{}
}

// Snapshot returns the current counter values for logging.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"listing_pages_fetched": m.ListingPagesFetched.Load(),
		"detail_pages_fetched":  m.DetailPagesFetched.Load(),
		"records_scraped":       m.RecordsScraped.Load(),
		"records_dropped":       m.RecordsDropped.Load(),
		"detail_failures":       m.DetailFailures.Load(),
	}
}
