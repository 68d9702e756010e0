package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for the scraper.
type Config struct {
	Crawl   CrawlConfig   `mapstructure:"crawl"   yaml:"crawl"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Site    SiteConfig    `mapstructure:"site"    yaml:"site"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CrawlConfig controls the crawl orchestrator.
type CrawlConfig struct {
	// MaxItems is the target record count for a run.
	MaxItems int `mapstructure:"max_items" yaml:"max_items"`

	// MaxAttempts bounds fetch attempts per URL (first try included).
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// DelayMin/DelayMax bound the politeness pause between accumulated
	// items. The actual pause is sampled uniformly from the range.
	DelayMin time.Duration `mapstructure:"delay_min" yaml:"delay_min"`
	DelayMax time.Duration `mapstructure:"delay_max" yaml:"delay_max"`

	// RetryBackoffMin/RetryBackoffMax bound the pause before a fetch retry.
	RetryBackoffMin time.Duration `mapstructure:"retry_backoff_min" yaml:"retry_backoff_min"`
	RetryBackoffMax time.Duration `mapstructure:"retry_backoff_max" yaml:"retry_backoff_max"`
}

// FetcherConfig controls the page fetcher.
type FetcherConfig struct {
	// Type selects the fetcher implementation: "browser" or "http".
	// The catalog and detail pages are JS-rendered, so "browser" is the
	// default; "http" serves fixture-backed and static-markup runs.
	Type string `mapstructure:"type" yaml:"type"`

	// RequestTimeout bounds a single navigation or HTTP request.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`

	// SettleWait is the fixed pause after navigation before reading the DOM.
	SettleWait time.Duration `mapstructure:"settle_wait" yaml:"settle_wait"`

	// EngageMin/EngageMax bound the randomized pause after the scroll.
	EngageMin time.Duration `mapstructure:"engage_min" yaml:"engage_min"`
	EngageMax time.Duration `mapstructure:"engage_max" yaml:"engage_max"`

	// ScrollMin/ScrollMax bound the randomized scroll height in pixels.
	ScrollMin int `mapstructure:"scroll_min" yaml:"scroll_min"`
	ScrollMax int `mapstructure:"scroll_max" yaml:"scroll_max"`

	// Headless controls whether the browser runs without a window.
	Headless bool `mapstructure:"headless" yaml:"headless"`

	// Stealth applies fingerprint patches to the browser page.
	Stealth bool `mapstructure:"stealth" yaml:"stealth"`

	// UserAgent overrides the browser/HTTP User-Agent.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`

	// MaxBodySize caps an HTTP response body in bytes.
	MaxBodySize int64 `mapstructure:"max_body_size" yaml:"max_body_size"`
}

// SiteConfig identifies the crawl target. The canonical product URL is
// rebuilt against Host, so multi-region deployments only change config.
type SiteConfig struct {
	Host        string `mapstructure:"host"         yaml:"host"`
	CategoryURL string `mapstructure:"category_url" yaml:"category_url"`
}

// StorageConfig controls the export backends.
type StorageConfig struct {
	// Backends lists enabled exports: csv, sqlite, mongo.
	Backends []string `mapstructure:"backends" yaml:"backends"`

	// OutputDir holds the CSV, SQLite and statistics files.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Table is the SQLite table name. Prior contents are replaced per run.
	Table string `mapstructure:"table" yaml:"table"`

	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with the defaults the source site tolerates.
func DefaultConfig() *Config {
	return &Config{
		Crawl: CrawlConfig{
			MaxItems:        200,
			MaxAttempts:     3,
			DelayMin:        1 * time.Second,
			DelayMax:        3 * time.Second,
			RetryBackoffMin: 5 * time.Second,
			RetryBackoffMax: 10 * time.Second,
		},
		Fetcher: FetcherConfig{
			Type:           "browser",
			RequestTimeout: 30 * time.Second,
			SettleWait:     1 * time.Second,
			EngageMin:      1 * time.Second,
			EngageMax:      3 * time.Second,
			ScrollMin:      300,
			ScrollMax:      700,
			Headless:       true,
			Stealth:        true,
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodySize:    10 * 1024 * 1024, // 10MB
		},
		Site: SiteConfig{
			Host:        "zozo.jp",
			CategoryURL: "https://zozo.jp/category/tops/",
		},
		Storage: StorageConfig{
			Backends:        []string{"csv", "sqlite"},
			OutputDir:       "./output",
			Table:           "products",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "zozo",
			MongoCollection: "products",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
