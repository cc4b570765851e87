// Package dashboard assembles the JSON documents served to the frontend.
// Field names and rounding are a compatibility surface; do not rename.
package dashboard

import (
	"strings"
	"time"

	"stock-sentiment/internal/analytics"
	"stock-sentiment/internal/tickers"
	"stock-sentiment/internal/types"
)

const (
	FeedPreviewSize = 15

	TickerDetailItems  = 40
	TickerDetailThemes = 6
	TickerDetailRanked = 200
	WatchlistMax       = 25
	WatchlistRanked    = 300

	InsightThemes     = 8
	InsightTickers    = 10
	InsightNarratives = 6
)

// Overview is the headline block of the dashboard.
type Overview struct {
	TotalItems      int          `json:"totalItems"`
	SentimentIndex  types.Number `json:"sentimentIndex"`
	VolatilityIndex types.Number `json:"volatilityIndex"`
	ActiveTickers   int          `json:"activeTickers"`
	PositiveRatio   types.Number `json:"positiveRatio"`
	NegativeRatio   types.Number `json:"negativeRatio"`
	NeutralRatio    types.Number `json:"neutralRatio"`
	MarketPulse     string       `json:"marketPulse"`
	TrendDirection  string       `json:"trendDirection"`
}

// Payload is the full /api/dashboard document.
type Payload struct {
	GeneratedAt string                     `json:"generatedAt"`
	Cached      bool                       `json:"cached"`
	Overview    Overview                   `json:"overview"`
	Sentiment   analytics.SentimentCounts  `json:"sentiment"`
	Sources     analytics.SourceCounts     `json:"sources"`
	Timeline    []analytics.TimelineBucket `json:"timeline"`
	Trending    []analytics.TickerInsight  `json:"trending"`
	Themes      []analytics.ThemeInsight   `json:"themes"`
	Narratives  []analytics.Narrative      `json:"narratives"`
	FeedPreview []FeedItem                 `json:"feedPreview"`
}

// Build computes every dashboard aggregate over items.
func Build(items []types.EnrichedItem, generatedAt time.Time, cached bool) Payload {
	counts := analytics.SentimentBreakdown(items)
	index := analytics.SentimentIndex(items)
	total := len(items)

	return Payload{
		GeneratedAt: types.ISOTime(generatedAt),
		Cached:      cached,
		Overview: Overview{
			TotalItems:      total,
			SentimentIndex:  types.Number(index),
			VolatilityIndex: types.Number(analytics.VolatilityIndex(items)),
			ActiveTickers:   analytics.ActiveTickers(items),
			PositiveRatio:   types.Number(analytics.Ratio(counts.Positive, total)),
			NegativeRatio:   types.Number(analytics.Ratio(counts.Negative, total)),
			NeutralRatio:    types.Number(analytics.Ratio(counts.Neutral, total)),
			MarketPulse:     analytics.MarketPulse(index),
			TrendDirection:  analytics.TrendDirection(items),
		},
		Sentiment:   counts,
		Sources:     analytics.SourceBreakdown(items),
		Timeline:    analytics.Timeline(items, analytics.DefaultTimelineBuckets),
		Trending:    analytics.TickerInsights(items, analytics.DefaultTrendingLimit),
		Themes:      analytics.ThemeInsights(items, analytics.DefaultThemeLimit),
		Narratives:  analytics.Narratives(items, analytics.DefaultNarrativeLimit),
		FeedPreview: SerializeAll(items, FeedPreviewSize),
	}
}

// FromSnapshot builds the dashboard for a cache snapshot.
func FromSnapshot(snap types.Snapshot) Payload {
	return Build(snap.Items, snap.GeneratedAt, snap.Cached)
}

// Feed is the /api/feed document. Count is the number of matches before
// the limit is applied.
type Feed struct {
	GeneratedAt string     `json:"generatedAt"`
	Cached      bool       `json:"cached"`
	Count       int        `json:"count"`
	Items       []FeedItem `json:"items"`
}

func BuildFeed(snap types.Snapshot, filter analytics.Filter, limit int) Feed {
	matched := filter.Apply(snap.Items)
	return Feed{
		GeneratedAt: types.ISOTime(snap.GeneratedAt),
		Cached:      snap.Cached,
		Count:       len(matched),
		Items:       SerializeAll(matched, limit),
	}
}

// SentimentRow is one entry of the legacy /api/sentiment list.
type SentimentRow struct {
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}

func SentimentRows(items []types.EnrichedItem) []SentimentRow {
	counts := analytics.SentimentBreakdown(items)
	return []SentimentRow{
		{Sentiment: "POSITIVE", Count: counts.Positive},
		{Sentiment: "NEGATIVE", Count: counts.Negative},
		{Sentiment: "NEUTRAL", Count: counts.Neutral},
	}
}

// TickerDetail is the /api/ticker/{symbol} document. Snapshot is null when
// the symbol is not among the ranked tickers.
type TickerDetail struct {
	GeneratedAt string                   `json:"generatedAt"`
	Cached      bool                     `json:"cached"`
	Ticker      string                   `json:"ticker"`
	Mentions    int                      `json:"mentions"`
	Snapshot    *analytics.TickerInsight `json:"snapshot"`
	Items       []FeedItem               `json:"items"`
	Themes      []analytics.ThemeInsight `json:"themes"`
}

// InvalidTicker is the reply for a symbol that does not sanitize.
type InvalidTicker struct {
	Ticker   string     `json:"ticker"`
	Mentions int        `json:"mentions"`
	Items    []FeedItem `json:"items"`
	Message  string     `json:"message"`
}

func NewInvalidTicker(raw string) InvalidTicker {
	return InvalidTicker{
		Ticker:  strings.ToUpper(raw),
		Items:   []FeedItem{},
		Message: "Ticker symbol is invalid.",
	}
}

// BuildTickerDetail gathers every item mentioning symbol. symbol must
// already be sanitized.
func BuildTickerDetail(snap types.Snapshot, symbol string) TickerDetail {
	related := analytics.FilterItems(snap.Items, analytics.Filter{Ticker: symbol})

	var insight *analytics.TickerInsight
	for _, row := range analytics.TickerInsights(snap.Items, TickerDetailRanked) {
		if row.Ticker == symbol {
			insight = &row
			break
		}
	}

	return TickerDetail{
		GeneratedAt: types.ISOTime(snap.GeneratedAt),
		Cached:      snap.Cached,
		Ticker:      symbol,
		Mentions:    len(related),
		Snapshot:    insight,
		Items:       SerializeAll(related, TickerDetailItems),
		Themes:      analytics.ThemeInsights(related, TickerDetailThemes),
	}
}

// Watchlist is the /api/watchlist document.
type Watchlist struct {
	GeneratedAt string                    `json:"generatedAt"`
	Cached      bool                      `json:"cached"`
	Count       int                       `json:"count"`
	Items       []analytics.TickerInsight `json:"items"`
}

// ParseWatchlist sanitizes a comma separated symbol list, dropping invalid
// and repeated symbols and keeping at most WatchlistMax.
func ParseWatchlist(raw string) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		symbol := tickers.Sanitize(token)
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
		if len(out) == WatchlistMax {
			break
		}
	}
	return out
}

// BuildWatchlist returns one insight row per requested symbol, with a zero
// row for symbols not mentioned in the collection.
func BuildWatchlist(snap types.Snapshot, symbols []string) Watchlist {
	index := make(map[string]analytics.TickerInsight)
	for _, row := range analytics.TickerInsights(snap.Items, WatchlistRanked) {
		index[row.Ticker] = row
	}

	rows := make([]analytics.TickerInsight, 0, len(symbols))
	for _, symbol := range symbols {
		row, ok := index[symbol]
		if !ok {
			row = analytics.TickerInsight{Ticker: symbol, SourceMix: map[string]int{}}
		}
		rows = append(rows, row)
	}

	return Watchlist{
		GeneratedAt: types.ISOTime(snap.GeneratedAt),
		Cached:      snap.Cached,
		Count:       len(rows),
		Items:       rows,
	}
}

// Insights is the /api/insights document.
type Insights struct {
	GeneratedAt     string                    `json:"generatedAt"`
	Cached          bool                      `json:"cached"`
	ItemCount       int                       `json:"itemCount"`
	SentimentIndex  types.Number              `json:"sentimentIndex"`
	Themes          []analytics.ThemeInsight  `json:"themes"`
	TrendingTickers []analytics.TickerInsight `json:"trendingTickers"`
	Narratives      []analytics.Narrative     `json:"narratives"`
}

func BuildInsights(snap types.Snapshot, filter analytics.Filter) Insights {
	items := filter.Apply(snap.Items)
	return Insights{
		GeneratedAt:     types.ISOTime(snap.GeneratedAt),
		Cached:          snap.Cached,
		ItemCount:       len(items),
		SentimentIndex:  types.Number(analytics.SentimentIndex(items)),
		Themes:          analytics.ThemeInsights(items, InsightThemes),
		TrendingTickers: analytics.TickerInsights(items, InsightTickers),
		Narratives:      analytics.Narratives(items, InsightNarratives),
	}
}
