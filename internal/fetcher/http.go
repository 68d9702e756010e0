package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/omi5656/scraper-zozo/internal/config"
	"github.com/omi5656/scraper-zozo/internal/types"
)

// HTTPFetcher retrieves pages over plain HTTP. It cannot execute
// JavaScript, so it only sees server-rendered markup. A cookie jar is
// shared across requests to mirror the browser fetcher's session reuse.
type HTTPFetcher struct {
	cfg    config.FetcherConfig
	client *http.Client
	logger *slog.Logger
}

func NewHTTPFetcher(cfg config.FetcherConfig, logger *slog.Logger) *HTTPFetcher {
	jar, _ := cookiejar.New(nil)
	return &HTTPFetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
			Jar:     jar,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		logger: logger.With("component", "fetcher", "type", "http"),
	}
}

func (f *HTTPFetcher) Type() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*types.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en;q=0.8")
	req.Header.Set("Accept-Encoding", "br, gzip, deflate")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err, Retryable: isRetryableError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.FetchError{
			URL:       url,
			Err:       fmt.Errorf("unexpected status %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	reader, err := decompressReader(resp)
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}
	defer reader.Close()

	body, err := io.ReadAll(io.LimitReader(reader, f.cfg.MaxBodySize))
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("failed to read body: %w", err), Retryable: true}
	}

	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	f.logger.Debug("page fetched", "url", url, "final_url", finalURL, "bytes", len(body), "duration", time.Since(start))
	return types.NewPage(url, finalURL, body, time.Since(start)), nil
}

func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// decompressReader wraps the response body with the decoder matching
// its Content-Encoding header.
func decompressReader(resp *http.Response) (io.ReadCloser, error) {
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}

// isRetryableError reports whether a transport error is worth retrying.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "EOF")
}
