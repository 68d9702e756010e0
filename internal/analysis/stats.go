// Package analysis builds the descriptive-statistics report for a
// completed crawl.
package analysis

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/montanaflynn/stats"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// Report summarizes one crawl. Price aggregates cover only records
// whose selling price was actually extracted; a partial record never
// drags an aggregate toward zero. Pointer fields are omitted entirely
// when no record carried the underlying value.
type Report struct {
	ItemCount       int      `json:"item_count"`
	PricedItemCount int      `json:"priced_item_count"`
	MeanPrice       *int     `json:"mean_price,omitempty"`
	MedianPrice     *int     `json:"median_price,omitempty"`
	MaxPrice        *int     `json:"max_price,omitempty"`
	MinPrice        *int     `json:"min_price,omitempty"`
	PriceStdDev     *int     `json:"price_stddev,omitempty"`
	MeanRating      *float64 `json:"mean_rating,omitempty"`
	BrandCount      int      `json:"brand_count"`
	DiscountedCount int      `json:"discounted_count"`
}

// Analyze computes the report over records. Safe on an empty slice.
func Analyze(records []types.ProductRecord) *Report {
	report := &Report{ItemCount: len(records)}

	var prices stats.Float64Data
	var ratings stats.Float64Data
	brands := make(map[string]struct{})

	for i := range records {
		rec := &records[i]
		if rec.CurrentPrice != nil {
			prices = append(prices, float64(*rec.CurrentPrice))
		}
		if rec.Rating != nil {
			ratings = append(ratings, *rec.Rating)
		}
		brands[rec.Brand] = struct{}{}
		if rec.Discounted() {
			report.DiscountedCount++
		}
	}

	report.PricedItemCount = len(prices)
	report.BrandCount = len(brands)

	if len(prices) > 0 {
		report.MeanPrice = truncate(stats.Mean(prices))
		report.MedianPrice = truncate(stats.Median(prices))
		report.MaxPrice = truncate(stats.Max(prices))
		report.MinPrice = truncate(stats.Min(prices))
	}
	// Sample stddev (n-1 divisor) is undefined for a single price.
	if len(prices) > 1 {
		report.PriceStdDev = truncate(stats.StandardDeviationSample(prices))
	}
	if len(ratings) > 0 {
		if mean, err := stats.Mean(ratings); err == nil {
			rounded := math.Round(mean*100) / 100
			report.MeanRating = &rounded
		}
	}

	return report
}

// truncate drops the fractional part of a stat, matching how prices
// are reported in yen.
func truncate(v float64, err error) *int {
	if err != nil {
		return nil
	}
	n := int(v)
	return &n
}

// WriteJSON writes the report to path, creating parent directories.
func WriteJSON(report *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}
