package extractor

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/omi5656/scraper-zozo/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPage(url, html string) *types.Page {
	return types.NewPage(url, url, []byte(html), time.Millisecond)
}

const catalogHTML = `<html><body>
<div class="css-czyfg3 ell6q4d0">
  <div class="css-1hsxkcj">nano・universe</div>
  <a href="/shop/nanouniverse/goods/detail?gid=12345&did=67890&rid=1061">商品</a>
</div>
<div class="css-czyfg3 ell6q4d0">
  <a href="/shop/beams/goods/22222/">商品</a>
</div>
<div class="css-czyfg3 ell6q4d0">
  <div class="css-1hsxkcj">UNITED ARROWS</div>
  <p>リンクのないカード</p>
</div>
</body></html>`

func TestListingExtract(t *testing.T) {
	l := NewListing("zozo.jp", testLogger())

	records, err := l.Extract(testPage("https://zozo.jp/category/tops/?page=1", catalogHTML))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (link-less card dropped)", len(records))
	}

	first := records[0]
	if first.Brand != "nano・universe" {
		t.Errorf("brand = %q", first.Brand)
	}
	if want := "https://zozo.jp/shop/nanouniverse/goods-sale/12345/?did=67890"; first.ProductURL != want {
		t.Errorf("product url = %q, want %q", first.ProductURL, want)
	}
	if !first.NeedsDetails {
		t.Error("listing records must be marked for detail enrichment")
	}
	if first.Name != types.NameUnknown {
		t.Errorf("name = %q, want placeholder before enrichment", first.Name)
	}

	second := records[1]
	if second.Brand != types.BrandUnknown {
		t.Errorf("brand without element = %q, want %q", second.Brand, types.BrandUnknown)
	}
	if want := "https://zozo.jp/shop/beams/goods/22222/"; second.ProductURL != want {
		t.Errorf("fallback url = %q, want %q", second.ProductURL, want)
	}
}

func TestListingExtractEmptyCatalog(t *testing.T) {
	l := NewListing("zozo.jp", testLogger())

	records, err := l.Extract(testPage("https://zozo.jp/category/tops/?page=99", "<html><body></body></html>"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 for exhausted catalog", len(records))
	}
}
