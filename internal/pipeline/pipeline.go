// Package pipeline post-processes extracted records before export.
package pipeline

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/omi5656/scraper-zozo/internal/types"
)

// Middleware transforms a record. Returning nil drops the record.
type Middleware interface {
	Name() string
	Process(rec *types.ProductRecord) *types.ProductRecord
}

// Pipeline runs records through an ordered middleware chain.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
}

func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{logger: logger.With("component", "pipeline")}
}

// Default returns the chain used by the crawl command: whitespace
// cleanup, URL presence check, and URL-keyed dedup.
func Default(logger *slog.Logger) *Pipeline {
	p := New(logger)
	p.Use(TrimMiddleware{})
	p.Use(RequiredURLMiddleware{})
	p.Use(NewDedupMiddleware())
	return p
}

func (p *Pipeline) Use(m Middleware) {
	p.middlewares = append(p.middlewares, m)
}

// Process runs rec through the chain. Returns nil when a middleware
// drops the record.
func (p *Pipeline) Process(rec *types.ProductRecord) *types.ProductRecord {
	for _, m := range p.middlewares {
		rec = m.Process(rec)
		if rec == nil {
			p.logger.Debug("record dropped", "middleware", m.Name())
			return nil
		}
	}
	return rec
}

// TrimMiddleware strips surrounding whitespace from text fields.
type TrimMiddleware struct{}

func (TrimMiddleware) Name() string { return "trim" }

func (TrimMiddleware) Process(rec *types.ProductRecord) *types.ProductRecord {
	rec.Brand = strings.TrimSpace(rec.Brand)
	rec.Name = strings.TrimSpace(rec.Name)
	rec.ProductURL = strings.TrimSpace(rec.ProductURL)
	rec.ImageURL = strings.TrimSpace(rec.ImageURL)
	return rec
}

// RequiredURLMiddleware drops records without a product URL. The URL
// is the record's identity; without it the row is useless downstream.
type RequiredURLMiddleware struct{}

func (RequiredURLMiddleware) Name() string { return "required_url" }

func (RequiredURLMiddleware) Process(rec *types.ProductRecord) *types.ProductRecord {
	if rec.ProductURL == "" {
		return nil
	}
	return rec
}

// DedupMiddleware drops records whose product URL was already seen.
// Catalog pages repeat promoted items across page boundaries.
type DedupMiddleware struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewDedupMiddleware() *DedupMiddleware {
	return &DedupMiddleware{seen: make(map[string]struct{})}
}

func (*DedupMiddleware) Name() string { return "dedup" }

func (d *DedupMiddleware) Process(rec *types.ProductRecord) *types.ProductRecord {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[rec.ProductURL]; ok {
		return nil
	}
	d.seen[rec.ProductURL] = struct{}{}
	return rec
}
