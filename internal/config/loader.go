package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and defaults.
// Priority (highest to lowest): env vars > config file > defaults.
// CLI flag overrides are applied by the command layer on top of this.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("ZOZOSCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("zozoscraper")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".zozoscraper"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if not explicitly specified
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("crawl.max_items", cfg.Crawl.MaxItems)
	v.SetDefault("crawl.max_attempts", cfg.Crawl.MaxAttempts)
	v.SetDefault("crawl.delay_min", cfg.Crawl.DelayMin)
	v.SetDefault("crawl.delay_max", cfg.Crawl.DelayMax)
	v.SetDefault("crawl.retry_backoff_min", cfg.Crawl.RetryBackoffMin)
	v.SetDefault("crawl.retry_backoff_max", cfg.Crawl.RetryBackoffMax)

	v.SetDefault("fetcher.type", cfg.Fetcher.Type)
	v.SetDefault("fetcher.request_timeout", cfg.Fetcher.RequestTimeout)
	v.SetDefault("fetcher.settle_wait", cfg.Fetcher.SettleWait)
	v.SetDefault("fetcher.engage_min", cfg.Fetcher.EngageMin)
	v.SetDefault("fetcher.engage_max", cfg.Fetcher.EngageMax)
	v.SetDefault("fetcher.scroll_min", cfg.Fetcher.ScrollMin)
	v.SetDefault("fetcher.scroll_max", cfg.Fetcher.ScrollMax)
	v.SetDefault("fetcher.headless", cfg.Fetcher.Headless)
	v.SetDefault("fetcher.stealth", cfg.Fetcher.Stealth)
	v.SetDefault("fetcher.user_agent", cfg.Fetcher.UserAgent)
	v.SetDefault("fetcher.max_body_size", cfg.Fetcher.MaxBodySize)

	v.SetDefault("site.host", cfg.Site.Host)
	v.SetDefault("site.category_url", cfg.Site.CategoryURL)

	v.SetDefault("storage.backends", cfg.Storage.Backends)
	v.SetDefault("storage.output_dir", cfg.Storage.OutputDir)
	v.SetDefault("storage.table", cfg.Storage.Table)
	v.SetDefault("storage.mongo_uri", cfg.Storage.MongoURI)
	v.SetDefault("storage.mongo_database", cfg.Storage.MongoDatabase)
	v.SetDefault("storage.mongo_collection", cfg.Storage.MongoCollection)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}
