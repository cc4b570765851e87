package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/trace"
)

// limitParam bounds an integer query parameter.
type limitParam struct {
	def, min, max int
}

var (
	feedLimit     = limitParam{def: 40, min: 1, max: 200}
	legacyLimit   = limitParam{def: 20, min: 1, max: 100}
	trendingLimit = limitParam{def: 15, min: 1, max: 50}
)

// parse reads name from r, clamping it into range. Missing or non-numeric
// values yield the default.
func (p limitParam) parse(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return p.def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return p.def
	}
	return max(p.min, min(n, p.max))
}

// boolParam accepts the usual truthy spellings; anything else is false.
func boolParam(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	}
	return false
}

func forceRefresh(r *http.Request) bool {
	return boolParam(r, "force_refresh")
}

// writeJSON encodes data without HTML escaping so text fields round-trip
// byte for byte.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		logger.Warn(context.Background(), "Failed to encode response", "error", err)
	}
}

// traced runs h inside an http.<route> span carrying the response status.
func traced(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := trace.StartHTTPSpan(r, route)
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() { trace.EndHTTPSpan(span, rw.statusCode) }()
		h(rw, r.WithContext(ctx))
	}
}
