package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// identPattern guards the table name interpolated into DDL. The name
// comes from config, which validates it too, but the guard stays local
// so this file is safe on its own.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStorage writes the crawl into one table of a SQLite file.
// Each run replaces the table's previous contents.
type SQLiteStorage struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

func NewSQLiteStorage(path, table string, logger *slog.Logger) (*SQLiteStorage, error) {
	if !identPattern.MatchString(table) {
		return nil, &types.StorageError{Backend: "sqlite", Err: fmt.Errorf("invalid table name %q", table)}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &types.StorageError{Backend: "sqlite", Err: err}
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, &types.StorageError{Backend: "sqlite", Err: err}
	}
	// modernc.org/sqlite serializes writes; one connection avoids
	// SQLITE_BUSY under concurrent use.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{
		db:     db,
		table:  table,
		logger: logger.With("component", "storage", "backend", "sqlite"),
	}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) Name() string { return "sqlite" }

func (s *SQLiteStorage) ensureSchema() error {
	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		brand TEXT NOT NULL,
		product_url TEXT NOT NULL,
		name TEXT NOT NULL,
		current_price INTEGER,
		original_price INTEGER,
		rating REAL,
		review_count INTEGER NOT NULL DEFAULT 0,
		image_url TEXT,
		scraped_at TIMESTAMP
	)`, s.table)

	if _, err := s.db.Exec(schema); err != nil {
		return &types.StorageError{Backend: "sqlite", Err: fmt.Errorf("failed to create schema: %w", err)}
	}
	return nil
}

func (s *SQLiteStorage) Store(ctx context.Context, records []types.ProductRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &types.StorageError{Backend: "sqlite", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return &types.StorageError{Backend: "sqlite", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (brand, product_url, name, current_price, original_price, rating, review_count, image_url, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table))
	if err != nil {
		return &types.StorageError{Backend: "sqlite", Err: err}
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		_, err := stmt.ExecContext(ctx,
			rec.Brand, rec.ProductURL, rec.Name,
			rec.CurrentPrice, rec.OriginalPrice, rec.Rating,
			rec.ReviewCount, rec.ImageURL, rec.ScrapedAt)
		if err != nil {
			return &types.StorageError{Backend: "sqlite", Err: fmt.Errorf("failed to insert %s: %w", rec.ProductURL, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &types.StorageError{Backend: "sqlite", Err: err}
	}

	s.logger.Debug("sqlite written", "table", s.table, "records", len(records))
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
