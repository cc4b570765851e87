package server

import (
	"net/http"

	"stock-sentiment/internal/analytics"
	"stock-sentiment/internal/dashboard"
	"stock-sentiment/internal/tickers"
	"stock-sentiment/internal/types"
)

const defaultWatchlist = "AAPL,MSFT,NVDA"

type rootInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

type health struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	Cached          bool   `json:"cached"`
	CacheAgeSeconds int    `json:"cacheAgeSeconds"`
	Items           int    `json:"items"`
	GeneratedAt     string `json:"generatedAt"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.hasIndex() {
		http.Redirect(w, r, "/app", http.StatusTemporaryRedirect)
		return
	}
	writeJSON(w, http.StatusOK, rootInfo{
		Message: AppName + " is running",
		Version: s.version,
		Docs:    "/docs",
	})
}

// handleHealth goes through the cache like every other route, so a cold
// process fetches on its first health probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.refresher.Refresh(r.Context(), false)
	writeJSON(w, http.StatusOK, health{
		Status:          "ok",
		Version:         s.version,
		Cached:          snap.Cached,
		CacheAgeSeconds: int(snap.Age(s.now()).Seconds()),
		Items:           len(snap.Items),
		GeneratedAt:     types.ISOTime(snap.GeneratedAt),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.FromSnapshot(snap))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := analytics.Filter{
		Source:    q.Get("source"),
		Sentiment: q.Get("sentiment"),
		Ticker:    q.Get("ticker"),
		Query:     q.Get("q"),
	}
	limit := feedLimit.parse(r, "limit")

	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.BuildFeed(snap, filter, limit))
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	s.legacy(w, r, types.SourceNews)
}

func (s *Server) handleReddit(w http.ResponseWriter, r *http.Request) {
	s.legacy(w, r, types.SourceReddit)
}

func (s *Server) legacy(w http.ResponseWriter, r *http.Request, source types.Source) {
	limit := legacyLimit.parse(r, "limit")
	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.Legacy(snap.Items, source, limit))
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.SentimentRows(snap.Items))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit := trendingLimit.parse(r, "limit")
	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, analytics.TickerInsights(snap.Items, limit))
}

func (s *Server) handleTicker(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("symbol")
	symbol := tickers.Sanitize(raw)
	if symbol == "" {
		writeJSON(w, http.StatusOK, dashboard.NewInvalidTicker(raw))
		return
	}

	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.BuildTickerDetail(snap, symbol))
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	raw := defaultWatchlist
	if q := r.URL.Query(); q.Has("tickers") {
		raw = q.Get("tickers")
	}
	symbols := dashboard.ParseWatchlist(raw)

	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.BuildWatchlist(snap, symbols))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := analytics.Filter{
		Source: q.Get("source"),
		Ticker: q.Get("ticker"),
	}

	snap := s.refresher.Refresh(r.Context(), forceRefresh(r))
	writeJSON(w, http.StatusOK, dashboard.BuildInsights(snap, filter))
}
