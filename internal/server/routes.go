package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	if s.frontendDir != "" {
		mux.Handle("GET /app/", http.StripPrefix("/app", http.FileServer(http.Dir(s.frontendDir))))
	}

	mux.HandleFunc("GET /api/health", traced("health", s.handleHealth))
	mux.HandleFunc("GET /api/dashboard", traced("dashboard", s.handleDashboard))
	mux.HandleFunc("GET /api/feed", traced("feed", s.handleFeed))

	// legacy endpoints kept for older frontends
	mux.HandleFunc("GET /api/news", traced("news", s.handleNews))
	mux.HandleFunc("GET /api/reddit", traced("reddit", s.handleReddit))
	mux.HandleFunc("GET /api/sentiment", traced("sentiment", s.handleSentiment))

	mux.HandleFunc("GET /api/trending-stocks", traced("trending", s.handleTrending))
	mux.HandleFunc("GET /api/ticker/{symbol}", traced("ticker", s.handleTicker))
	mux.HandleFunc("GET /api/watchlist", traced("watchlist", s.handleWatchlist))
	mux.HandleFunc("GET /api/insights", traced("insights", s.handleInsights))

	return mux
}
