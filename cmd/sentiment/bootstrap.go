package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/news/newsobs"
	"stock-sentiment/internal/store"
	"stock-sentiment/internal/trace"
)

// initializeSystem loads .env, then sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(version); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// shutdownSystem flushes spans and buffered log lines
func shutdownSystem() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush tracer: %v\n", err)
	}
	_ = logger.Sync()
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig(flagConfig)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", flagConfig)
		return nil, err
	}
	return cfg, nil
}

// initializeRefresher builds the feed cache over the scraper, both wrapped
// with observability middleware
func initializeRefresher(cfg *store.Config, svcCfg *news.ServiceConfig) interfaces.Refresher {
	fetcher := newsobs.Wrap(news.NewScraper(cfg))
	return newsobs.WrapRefresher(news.NewService(fetcher, svcCfg))
}
