// Package extractor pulls product data out of rendered catalog and
// detail pages. Selectors target the site's current markup and are
// kept in one place so a redesign only touches this package.
package extractor

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/omi5656/scraper-zozo/internal/types"
)

const (
	catalogItemSelector = ".css-czyfg3.ell6q4d0"
	brandSelector       = ".css-1hsxkcj"
	shopAnchorSelector  = `a[href*="/shop/"]`
)

// Listing extracts partial product records from a catalog page.
type Listing struct {
	host   string
	logger *slog.Logger
}

func NewListing(host string, logger *slog.Logger) *Listing {
	return &Listing{
		host:   host,
		logger: logger.With("component", "extractor", "kind", "listing"),
	}
}

// Extract returns one partial record per catalog card. Cards missing a
// usable product link are dropped individually; an empty result means
// the catalog has no more items at this page number.
func (l *Listing) Extract(page *types.Page) ([]*types.ProductRecord, error) {
	doc, err := page.Document()
	if err != nil {
		return nil, &types.ParseError{URL: page.URL, Err: err}
	}

	items := doc.Find(catalogItemSelector)
	records := make([]*types.ProductRecord, 0, items.Length())

	items.Each(func(i int, sel *goquery.Selection) {
		rec, err := l.extractItem(page, sel)
		if err != nil {
			l.logger.Warn("catalog item dropped", "url", page.URL, "index", i, "error", err)
			return
		}
		records = append(records, rec)
	})

	return records, nil
}

// extractItem reads one catalog card. Pricing on the catalog is
// unreliable (sale overlays, point-back banners), so only brand and
// product URL are trusted here and the rest comes from the detail page.
func (l *Listing) extractItem(page *types.Page, sel *goquery.Selection) (*types.ProductRecord, error) {
	brand := strings.TrimSpace(sel.Find(brandSelector).First().Text())
	if brand == "" {
		brand = types.BrandUnknown
	}

	href, ok := sel.Find(shopAnchorSelector).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return nil, &types.ParseError{URL: page.URL, Selector: shopAnchorSelector, Err: types.ErrNoProductURL}
	}

	productURL, err := CanonicalProductURL(l.host, href)
	if err != nil {
		return nil, &types.ParseError{URL: page.URL, Selector: shopAnchorSelector, Err: err}
	}

	return &types.ProductRecord{
		Brand:        brand,
		ProductURL:   productURL,
		Name:         types.NameUnknown,
		NeedsDetails: true,
		ScrapedAt:    time.Now(),
	}, nil
}
