// Package server exposes the feed analytics over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/store"
)

// AppName is reported by the root endpoint.
const AppName = "Stock Sentiment Intelligence API"

// Server manages the HTTP server and routes
type Server struct {
	cfg       *store.Config
	refresher interfaces.Refresher
	version   string
	now       func() time.Time

	frontendDir string // empty when no frontend is present
	origins     map[string]struct{}
	anyOrigin   bool

	router *http.ServeMux
	server *http.Server
}

// Option customizes a Server
type Option func(*Server)

// WithClock replaces time.Now for cache age reporting
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the HTTP server. Every route reads through refresher.
func New(cfg *store.Config, refresher interfaces.Refresher, version string, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		refresher: refresher,
		version:   version,
		now:       time.Now,
		origins:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "*" {
			s.anyOrigin = true
		}
		s.origins[origin] = struct{}{}
	}
	if dir := cfg.Server.FrontendDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.frontendDir = dir
		}
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withMiddleware(s.router)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	ctx := context.Background()
	logger.Info(ctx, "HTTP server starting", "address", s.server.Addr, "frontend", s.frontendDir != "")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info(ctx, "HTTP server stopped")
	return nil
}

func (s *Server) hasIndex() bool {
	if s.frontendDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.frontendDir, "index.html"))
	return err == nil
}
