package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// CSVStorage writes the crawl to a single CSV file, header first,
// records in accumulation order. An existing file is overwritten.
type CSVStorage struct {
	path   string
	logger *slog.Logger
}

func NewCSVStorage(path string, logger *slog.Logger) *CSVStorage {
	return &CSVStorage{
		path:   path,
		logger: logger.With("component", "storage", "backend", "csv"),
	}
}

func (s *CSVStorage) Name() string { return "csv" }

func (s *CSVStorage) Store(ctx context.Context, records []types.ProductRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}
	for i := range records {
		if err := ctx.Err(); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
		if err := w.Write(row(&records[i])); err != nil {
			return &types.StorageError{Backend: "csv", Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &types.StorageError{Backend: "csv", Err: err}
	}

	s.logger.Debug("csv written", "path", s.path, "records", len(records))
	return nil
}

func (s *CSVStorage) Close() error { return nil }

// ReadCSV loads a previously exported file back into records. Used by
// the analyze command to rebuild statistics without re-crawling.
func ReadCSV(path string) ([]types.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &types.StorageError{Backend: "csv", Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &types.StorageError{Backend: "csv", Err: err}
	}
	if len(rows) == 0 {
		return nil, &types.StorageError{Backend: "csv", Err: fmt.Errorf("file %s has no header", path)}
	}
	if len(rows[0]) != len(Header) {
		return nil, &types.StorageError{Backend: "csv", Err: fmt.Errorf("unexpected column count %d", len(rows[0]))}
	}

	records := make([]types.ProductRecord, 0, len(rows)-1)
	for _, cols := range rows[1:] {
		reviewCount, _ := strconv.Atoi(cols[6])
		records = append(records, types.ProductRecord{
			Brand:         cols[0],
			ProductURL:    cols[1],
			Name:          cols[2],
			CurrentPrice:  parseIntCell(cols[3]),
			OriginalPrice: parseIntCell(cols[4]),
			Rating:        parseFloatCell(cols[5]),
			ReviewCount:   reviewCount,
			ImageURL:      cols[7],
			ScrapedAt:     time.Time{},
		})
	}
	return records, nil
}

func parseIntCell(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
