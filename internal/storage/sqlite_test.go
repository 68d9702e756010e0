package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreAndReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")
	s, err := NewSQLiteStorage(path, "products", testLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Store(ctx, sampleRecords()); err != nil {
		t.Fatalf("store: %v", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("rows = %d, want 2", count)
	}

	var name string
	var price *int
	err = s.db.QueryRowContext(ctx,
		"SELECT name, current_price FROM products WHERE product_url = ?",
		"https://zozo.jp/shop/beams/goods-sale/2/").Scan(&name, &price)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if name == "" {
		t.Error("name should carry the placeholder, not be empty")
	}
	if price != nil {
		t.Errorf("absent price must be NULL, got %v", *price)
	}

	// A second run replaces the table contents.
	if err := s.Store(ctx, sampleRecords()[:1]); err != nil {
		t.Fatalf("second store: %v", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1 after replace", count)
	}
}

func TestSQLiteRejectsBadTableName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")
	if _, err := NewSQLiteStorage(path, "products; DROP TABLE users", testLogger()); err == nil {
		t.Fatal("expected error for invalid table name")
	}
}

func TestMultiStorageFansOut(t *testing.T) {
	dir := t.TempDir()
	csvStore := NewCSVStorage(filepath.Join(dir, "products.csv"), testLogger())
	dbStore, err := NewSQLiteStorage(filepath.Join(dir, "products.db"), "products", testLogger())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	multi := NewMultiStorage(testLogger(), csvStore, dbStore)
	defer multi.Close()

	if err := multi.Store(context.Background(), sampleRecords()); err != nil {
		t.Fatalf("store: %v", err)
	}

	records, err := ReadCSV(filepath.Join(dir, "products.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("csv records = %d, want 2", len(records))
	}

	var count int
	if err := dbStore.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("sqlite rows = %d, want 2", count)
	}
}
