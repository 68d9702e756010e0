// Package storage exports crawl results to the configured backends.
package storage

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// Header is the export column order, shared by the CSV and SQLite
// backends so both artifacts line up.
var Header = []string{
	"brand",
	"product_url",
	"name",
	"current_price",
	"original_price",
	"rating",
	"review_count",
	"image_url",
}

// Storage persists a completed crawl. Store replaces any previous
// run's data; the export is a snapshot, not a log.
type Storage interface {
	Name() string
	Store(ctx context.Context, records []types.ProductRecord) error
	Close() error
}

// row renders a record in Header order. Absent numeric fields become
// empty cells, never zeroes.
func row(rec *types.ProductRecord) []string {
	return []string{
		rec.Brand,
		rec.ProductURL,
		rec.Name,
		formatIntPtr(rec.CurrentPrice),
		formatIntPtr(rec.OriginalPrice),
		formatFloatPtr(rec.Rating),
		strconv.Itoa(rec.ReviewCount),
		rec.ImageURL,
	}
}

func formatIntPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func formatFloatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// MultiStorage fans a Store call out to every backend. A failing
// backend does not stop the others; errors are joined and reported
// together.
type MultiStorage struct {
	backends []Storage
	logger   *slog.Logger
}

func NewMultiStorage(logger *slog.Logger, backends ...Storage) *MultiStorage {
	return &MultiStorage{
		backends: backends,
		logger:   logger.With("component", "storage", "backend", "multi"),
	}
}

func (m *MultiStorage) Name() string { return "multi" }

func (m *MultiStorage) Store(ctx context.Context, records []types.ProductRecord) error {
	var errs []error
	for _, b := range m.backends {
		if err := b.Store(ctx, records); err != nil {
			m.logger.Error("backend store failed", "backend", b.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		m.logger.Info("records stored", "backend", b.Name(), "count", len(records))
	}
	return errors.Join(errs...)
}

func (m *MultiStorage) Close() error {
	var errs []error
	for _, b := range m.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
