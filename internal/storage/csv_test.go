package storage

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/omi5656/scraper-zozo/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRecords() []types.ProductRecord {
	price := 5990
	original := 7990
	rating := 4.4
	return []types.ProductRecord{
		{
			Brand:         "nano・universe",
			ProductURL:    "https://zozo.jp/shop/nanouniverse/goods-sale/1/",
			Name:          "テーラードジャケット",
			CurrentPrice:  &price,
			OriginalPrice: &original,
			Rating:        &rating,
			ReviewCount:   12,
			ImageURL:      "https://c.imgz.jp/1/1_b.jpg",
			ScrapedAt:     time.Now(),
		},
		{
			Brand:       types.BrandUnknown,
			ProductURL:  "https://zozo.jp/shop/beams/goods-sale/2/",
			Name:        types.NameUnknown,
			ReviewCount: 0,
			ScrapedAt:   time.Now(),
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	s := NewCSVStorage(path, testLogger())

	if err := s.Store(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("store: %v", err)
	}

	records, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}

	full := records[0]
	if full.Brand != "nano・universe" || full.Name != "テーラードジャケット" {
		t.Errorf("text fields: %q / %q", full.Brand, full.Name)
	}
	if full.CurrentPrice == nil || *full.CurrentPrice != 5990 {
		t.Errorf("current price = %v", full.CurrentPrice)
	}
	if full.Rating == nil || *full.Rating != 4.4 {
		t.Errorf("rating = %v", full.Rating)
	}
	if full.ReviewCount != 12 {
		t.Errorf("review count = %d", full.ReviewCount)
	}

	partial := records[1]
	if partial.CurrentPrice != nil || partial.OriginalPrice != nil || partial.Rating != nil {
		t.Error("absent numerics must survive the round trip as nil, not zero")
	}
}

func TestCSVStoreOverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	s := NewCSVStorage(path, testLogger())

	if err := s.Store(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("first store: %v", err)
	}
	if err := s.Store(context.Background(), sampleRecords()[:1]); err != nil {
		t.Fatalf("second store: %v", err)
	}

	records, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 after overwrite", len(records))
	}
}

func TestCSVStoreEmptyWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	s := NewCSVStorage(path, testLogger())

	if err := s.Store(context.Background(), nil); err != nil {
		t.Fatalf("store: %v", err)
	}
	records, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}
