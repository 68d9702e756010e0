// Package fetcher retrieves rendered product pages.
//
// Two implementations exist: a headless-browser fetcher for the
// JS-rendered catalog and a plain HTTP fetcher for static markup.
// Both return the final DOM as a types.Page.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omi5656/scraper-zozo/internal/config"
	"github.com/omi5656/scraper-zozo/internal/types"
)

// Fetcher retrieves a single page.
type Fetcher interface {
	// Fetch retrieves url and returns the rendered page.
	Fetch(ctx context.Context, url string) (*types.Page, error)

	// Close releases the underlying session. Safe to call once.
	Close() error

	// Type identifies the implementation for logging.
	Type() string
}

// New builds the fetcher selected by cfg.Type.
func New(cfg config.FetcherConfig, logger *slog.Logger) (Fetcher, error) {
	switch cfg.Type {
	case "browser":
		return NewBrowserFetcher(cfg, logger)
	case "http":
		return NewHTTPFetcher(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown fetcher type %q", cfg.Type)
	}
}
