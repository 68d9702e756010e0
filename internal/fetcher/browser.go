package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/omi5656/scraper-zozo/internal/config"
	"github.com/omi5656/scraper-zozo/internal/types"
)

// BrowserFetcher drives a headless Chromium instance through go-rod.
// A single page is opened on first use and reused for every fetch, so
// cookies and session state survive across the whole crawl.
type BrowserFetcher struct {
	cfg     config.FetcherConfig
	logger  *slog.Logger
	engage  DelayStrategy
	browser *rod.Browser

	mu     sync.Mutex
	page   *rod.Page
	closed bool
}

// NewBrowserFetcher launches the browser. The page itself is created
// lazily on the first Fetch.
func NewBrowserFetcher(cfg config.FetcherConfig, logger *slog.Logger) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", "1366,900")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &BrowserFetcher{
		cfg:     cfg,
		logger:  logger.With("component", "fetcher", "type", "browser"),
		engage:  UniformDelay{Min: cfg.EngageMin, Max: cfg.EngageMax},
		browser: browser,
	}, nil
}

func (f *BrowserFetcher) Type() string { return "browser" }

// Fetch navigates the shared page to url, lets the content settle,
// scrolls a random amount to trigger lazy loading, and returns the
// rendered DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*types.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("fetcher is closed")}
	}

	page, err := f.ensurePage()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: err}
	}

	start := time.Now()
	p := page.Context(ctx).Timeout(f.cfg.RequestTimeout)

	if err := p.Navigate(url); err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("navigation failed: %w", err), Retryable: true}
	}
	if err := p.WaitLoad(); err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("page load failed: %w", err), Retryable: true}
	}

	// Let client-side rendering settle before touching the DOM.
	settle := time.NewTimer(f.cfg.SettleWait)
	select {
	case <-ctx.Done():
		settle.Stop()
		return nil, ctx.Err()
	case <-settle.C:
	}

	if err := f.scroll(p); err != nil {
		f.logger.Debug("scroll failed", "url", url, "error", err)
	}
	if err := f.engage.Wait(ctx); err != nil {
		return nil, err
	}

	html, err := p.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: url, Err: fmt.Errorf("failed to read DOM: %w", err), Retryable: true}
	}

	finalURL := url
	if info, err := p.Info(); err == nil {
		finalURL = info.URL
	}

	f.logger.Debug("page fetched", "url", url, "final_url", finalURL, "bytes", len(html), "duration", time.Since(start))
	return types.NewPage(url, finalURL, []byte(html), time.Since(start)), nil
}

// ensurePage opens the shared page on first use.
func (f *BrowserFetcher) ensurePage() (*rod.Page, error) {
	if f.page != nil {
		return f.page, nil
	}

	var (
		p   *rod.Page
		err error
	)
	if f.cfg.Stealth {
		p, err = stealth.Page(f.browser)
	} else {
		p, err = f.browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if f.cfg.UserAgent != "" {
		if err := p.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.cfg.UserAgent}); err != nil {
			return nil, fmt.Errorf("failed to set user agent: %w", err)
		}
	}

	f.page = p
	return p, nil
}

func (f *BrowserFetcher) scroll(p *rod.Page) error {
	height := f.cfg.ScrollMin
	if span := f.cfg.ScrollMax - f.cfg.ScrollMin; span > 0 {
		height += rand.Intn(span + 1)
	}
	_, err := p.Eval(fmt.Sprintf("() => window.scrollTo(0, %d)", height))
	return err
}

// Close shuts the page and the browser down. Later calls are no-ops.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if f.page != nil {
		if err := f.page.Close(); err != nil {
			f.logger.Warn("failed to close page", "error", err)
		}
		f.page = nil
	}
	return f.browser.Close()
}
