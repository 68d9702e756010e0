package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/omi5656/scraper-zozo/internal/config"
	"github.com/omi5656/scraper-zozo/internal/types"
)

func newTestHTTPFetcher() *HTTPFetcher {
	cfg := config.DefaultConfig().Fetcher
	cfg.Type = "http"
	return NewHTTPFetcher(cfg, discardLogger())
}

func TestHTTPFetchReturnsBody(t *testing.T) {
	f := newTestHTTPFetcher()
	httpmock.ActivateNonDefault(f.client)
	defer httpmock.DeactivateAndReset()

	const body = `<html><body><div class="p-goods-information__heading">シャツ</div></body></html>`
	httpmock.RegisterResponder("GET", "https://zozo.jp/shop/acme/goods-sale/123/",
		httpmock.NewStringResponder(200, body))

	page, err := f.Fetch(context.Background(), "https://zozo.jp/shop/acme/goods-sale/123/")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(page.HTML) != body {
		t.Errorf("body mismatch: %q", page.HTML)
	}
	if page.URL != "https://zozo.jp/shop/acme/goods-sale/123/" {
		t.Errorf("url = %q", page.URL)
	}
}

func TestHTTPFetchServerErrorIsRetryable(t *testing.T) {
	f := newTestHTTPFetcher()
	httpmock.ActivateNonDefault(f.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://zozo.jp/category/tops/",
		httpmock.NewStringResponder(503, "unavailable"))

	_, err := f.Fetch(context.Background(), "https://zozo.jp/category/tops/")
	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want FetchError, got: %v", err)
	}
	if !fe.IsRetryable() {
		t.Error("503 should be retryable")
	}
}

func TestHTTPFetchNotFoundIsNotRetryable(t *testing.T) {
	f := newTestHTTPFetcher()
	httpmock.ActivateNonDefault(f.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://zozo.jp/gone/",
		httpmock.NewStringResponder(404, "not found"))

	_, err := f.Fetch(context.Background(), "https://zozo.jp/gone/")
	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want FetchError, got: %v", err)
	}
	if fe.IsRetryable() {
		t.Error("404 must not be retryable")
	}
}

func TestHTTPFetchCapsBodySize(t *testing.T) {
	f := newTestHTTPFetcher()
	f.cfg.MaxBodySize = 16
	httpmock.ActivateNonDefault(f.client)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://zozo.jp/big/",
		httpmock.NewStringResponder(200, string(make([]byte, 1024))))

	page, err := f.Fetch(context.Background(), "https://zozo.jp/big/")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(page.HTML) != 16 {
		t.Errorf("body length = %d, want 16", len(page.HTML))
	}
}

var _ Fetcher = (*HTTPFetcher)(nil)
