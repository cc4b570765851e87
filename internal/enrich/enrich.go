// Package enrich turns raw feed items into scored, tagged items.
package enrich

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/sentiment"
	"stock-sentiment/internal/themes"
	"stock-sentiment/internal/tickers"
	"stock-sentiment/internal/trace"
	"stock-sentiment/internal/types"
)

// SummaryLength is the maximum summary length in characters.
const SummaryLength = 180

// Item enriches a single raw item. It has no side effects.
func Item(raw types.RawItem) types.EnrichedItem {
	r := sentiment.Analyze(raw.Text)
	return types.EnrichedItem{
		RawItem:    raw,
		Summary:    Summarize(raw.Text, SummaryLength),
		Label:      r.Label,
		Score:      r.Score,
		Confidence: r.Confidence,
		Tickers:    tickers.Extract(raw.Title + " " + raw.Text),
		Themes:     themes.Classify(raw.Text),
	}
}

// All enriches items in parallel with at most workers goroutines. The result
// has the same order as the input.
func All(ctx context.Context, raws []types.RawItem, workers int) []types.EnrichedItem {
	timer := logger.StartOperation(ctx, trace.SpanEnrichAll, "items", len(raws), "workers", workers)

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]types.EnrichedItem, len(raws))
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range raws {
		g.Go(func() error {
			out[i] = Item(raws[i])
			return nil
		})
	}
	_ = g.Wait()

	timer.End("enriched", len(out))
	return out
}

// Summarize collapses whitespace and truncates to maxLen characters, ending
// truncated text with an ellipsis.
func Summarize(text string, maxLen int) string {
	clean := NormalizeWhitespace(text)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	return strings.TrimRight(string(runes[:maxLen-1]), " \t\n\r\f\v") + "…"
}

// NormalizeWhitespace replaces every whitespace run with a single space and
// trims the ends.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
