package config

import (
	"fmt"
	"net/url"
	"regexp"
)

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Crawl.MaxItems < 1 {
		return fmt.Errorf("crawl.max_items must be >= 1, got %d", cfg.Crawl.MaxItems)
	}
	if cfg.Crawl.MaxAttempts < 1 {
		return fmt.Errorf("crawl.max_attempts must be >= 1, got %d", cfg.Crawl.MaxAttempts)
	}
	if cfg.Crawl.DelayMin < 0 || cfg.Crawl.DelayMax < cfg.Crawl.DelayMin {
		return fmt.Errorf("crawl delay range [%s, %s] is invalid", cfg.Crawl.DelayMin, cfg.Crawl.DelayMax)
	}
	if cfg.Crawl.RetryBackoffMin < 0 || cfg.Crawl.RetryBackoffMax < cfg.Crawl.RetryBackoffMin {
		return fmt.Errorf("crawl retry backoff range [%s, %s] is invalid", cfg.Crawl.RetryBackoffMin, cfg.Crawl.RetryBackoffMax)
	}

	if cfg.Fetcher.Type != "browser" && cfg.Fetcher.Type != "http" {
		return fmt.Errorf("fetcher.type must be 'browser' or 'http', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.ScrollMin < 0 || cfg.Fetcher.ScrollMax < cfg.Fetcher.ScrollMin {
		return fmt.Errorf("fetcher scroll range [%d, %d] is invalid", cfg.Fetcher.ScrollMin, cfg.Fetcher.ScrollMax)
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}

	if cfg.Site.Host == "" {
		return fmt.Errorf("site.host must not be empty")
	}
	if err := ValidateURL(cfg.Site.CategoryURL); err != nil {
		return fmt.Errorf("site.category_url: %w", err)
	}

	validBackends := map[string]bool{"csv": true, "sqlite": true, "mongo": true}
	if len(cfg.Storage.Backends) == 0 {
		return fmt.Errorf("storage.backends must list at least one of csv, sqlite, mongo")
	}
	for _, b := range cfg.Storage.Backends {
		if !validBackends[b] {
			return fmt.Errorf("storage backend %q is not supported (valid: csv, sqlite, mongo)", b)
		}
	}
	if !tablePattern.MatchString(cfg.Storage.Table) {
		return fmt.Errorf("storage.table %q is not a valid identifier", cfg.Storage.Table)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is valid for crawling.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
