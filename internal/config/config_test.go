package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero max items", func(c *Config) { c.Crawl.MaxItems = 0 }, "max_items"},
		{"zero attempts", func(c *Config) { c.Crawl.MaxAttempts = 0 }, "max_attempts"},
		{"inverted delay range", func(c *Config) { c.Crawl.DelayMax = c.Crawl.DelayMin / 2 }, "delay range"},
		{"unknown fetcher", func(c *Config) { c.Fetcher.Type = "carrier-pigeon" }, "fetcher.type"},
		{"inverted scroll range", func(c *Config) { c.Fetcher.ScrollMin = 900 }, "scroll range"},
		{"empty host", func(c *Config) { c.Site.Host = "" }, "site.host"},
		{"bad category url", func(c *Config) { c.Site.CategoryURL = "ftp://zozo.jp/" }, "category_url"},
		{"no backends", func(c *Config) { c.Storage.Backends = nil }, "backends"},
		{"unknown backend", func(c *Config) { c.Storage.Backends = []string{"parquet"} }, "not supported"},
		{"bad table name", func(c *Config) { c.Storage.Table = "products; DROP TABLE" }, "identifier"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Crawl.MaxItems != 200 {
		t.Errorf("max_items = %d, want 200", cfg.Crawl.MaxItems)
	}
	if cfg.Fetcher.Type != "browser" {
		t.Errorf("fetcher.type = %q, want browser", cfg.Fetcher.Type)
	}
	if cfg.Site.Host != "zozo.jp" {
		t.Errorf("site.host = %q", cfg.Site.Host)
	}
}
