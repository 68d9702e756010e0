// Command zozoscraper crawls the sale catalog, enriches each product
// from its detail page, and exports the records plus a statistics
// report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/omi5656/scraper-zozo/internal/analysis"
	"github.com/omi5656/scraper-zozo/internal/config"
	"github.com/omi5656/scraper-zozo/internal/crawler"
	"github.com/omi5656/scraper-zozo/internal/extractor"
	"github.com/omi5656/scraper-zozo/internal/fetcher"
	"github.com/omi5656/scraper-zozo/internal/observability"
	"github.com/omi5656/scraper-zozo/internal/storage"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "zozoscraper",
		Short: "Crawl the sale catalog and export product records",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newScrapeCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newScrapeCmd() *cobra.Command {
	var (
		maxItems    int
		categoryURL string
		outputDir   string
		fetcherType string
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run a crawl and export the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-items") {
				cfg.Crawl.MaxItems = maxItems
			}
			if cmd.Flags().Changed("category-url") {
				cfg.Site.CategoryURL = categoryURL
			}
			if cmd.Flags().Changed("output-dir") {
				cfg.Storage.OutputDir = outputDir
			}
			if cmd.Flags().Changed("fetcher") {
				cfg.Fetcher.Type = fetcherType
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return runScrape(cfg)
		},
	}

	cmd.Flags().IntVar(&maxItems, "max-items", 0, "target number of records")
	cmd.Flags().StringVar(&categoryURL, "category-url", "", "catalog URL to crawl")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for export files")
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "fetcher implementation (browser or http)")

	return cmd
}

func runScrape(cfg *config.Config) error {
	logger := setupLogger(cfg.Logging)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	base, err := fetcher.New(cfg.Fetcher, logger)
	if err != nil {
		return fmt.Errorf("failed to build fetcher: %w", err)
	}
	retrying := fetcher.NewRetryFetcher(base, cfg.Crawl.MaxAttempts,
		fetcher.UniformDelay{Min: cfg.Crawl.RetryBackoffMin, Max: cfg.Crawl.RetryBackoffMax},
		logger)

	metrics := observability.New()
	c := crawler.New(retrying,
		extractor.NewListing(cfg.Site.Host, logger),
		extractor.NewDetail(logger),
		logger,
		crawler.WithMetrics(metrics),
		crawler.WithDelay(fetcher.UniformDelay{Min: cfg.Crawl.DelayMin, Max: cfg.Crawl.DelayMax}),
	)

	logger.Info("starting crawl",
		"category_url", cfg.Site.CategoryURL,
		"max_items", cfg.Crawl.MaxItems,
		"fetcher", cfg.Fetcher.Type)

	records := c.Crawl(ctx, cfg.Site.CategoryURL, cfg.Crawl.MaxItems)
	logger.Info("run metrics", "counters", metrics.Snapshot())

	if len(records) == 0 {
		logger.Warn("no records scraped, skipping export")
		return nil
	}

	backends, err := buildStorages(ctx, cfg, logger)
	if err != nil {
		return err
	}
	multi := storage.NewMultiStorage(logger, backends...)
	defer func() {
		if err := multi.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	if err := multi.Store(ctx, records); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	report := analysis.Analyze(records)
	statsPath := filepath.Join(cfg.Storage.OutputDir, "statistics.json")
	if err := analysis.WriteJSON(report, statsPath); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}

	logger.Info("crawl complete",
		"records", report.ItemCount,
		"priced", report.PricedItemCount,
		"brands", report.BrandCount,
		"discounted", report.DiscountedCount,
		"statistics", statsPath)
	return nil
}

func buildStorages(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]storage.Storage, error) {
	var backends []storage.Storage
	for _, name := range cfg.Storage.Backends {
		switch name {
		case "csv":
			backends = append(backends, storage.NewCSVStorage(
				filepath.Join(cfg.Storage.OutputDir, "products.csv"), logger))
		case "sqlite":
			s, err := storage.NewSQLiteStorage(
				filepath.Join(cfg.Storage.OutputDir, "products.db"), cfg.Storage.Table, logger)
			if err != nil {
				return nil, err
			}
			backends = append(backends, s)
		case "mongo":
			s, err := storage.NewMongoStorage(ctx,
				cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
			if err != nil {
				return nil, err
			}
			backends = append(backends, s)
		default:
			return nil, fmt.Errorf("unknown storage backend %q", name)
		}
	}
	return backends, nil
}

func newAnalyzeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze [csv file]",
		Short: "Rebuild the statistics report from an exported CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			path := filepath.Join(cfg.Storage.OutputDir, "products.csv")
			if len(args) == 1 {
				path = args[0]
			}

			records, err := storage.ReadCSV(path)
			if err != nil {
				return err
			}
			report := analysis.Analyze(records)

			if output != "" {
				if err := analysis.WriteJSON(report, output); err != nil {
					return err
				}
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the report to this file")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("zozoscraper", config.Version)
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
