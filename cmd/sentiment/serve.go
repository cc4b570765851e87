package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/news"
	"stock-sentiment/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Starts the API server. Feeds are fetched on the first request and cached for cache.ttl_seconds.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := initializeSystem(); err != nil {
		return err
	}
	defer shutdownSystem()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	refresher := initializeRefresher(cfg, news.ServiceConfigFrom(cfg))
	srv := server.New(cfg, refresher, version)

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Graceful shutdown failed", err)
		return err
	}
	return nil
}
