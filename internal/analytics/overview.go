// Package analytics aggregates enriched items into dashboard statistics.
//
// Every function is pure: the same input slice always produces the same
// output, and inputs are never reordered in place.
package analytics

import (
	"math"
	"sort"

	"stock-sentiment/internal/types"
)

// Market pulse bands, in sentiment-index points.
const (
	riskOnBand       = 22.0
	constructiveBand = 8.0
	defensiveBand    = -8.0
	riskOffBand      = -22.0
)

// Trend direction values
const (
	TrendImproving     = "improving"
	TrendDeteriorating = "deteriorating"
	TrendFlat          = "flat"
)

const (
	trendMinItems = 6
	trendDelta    = 0.1
)

// SentimentCounts is the per-label item count.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Get returns the count for label.
func (c SentimentCounts) Get(label types.Label) int {
	switch label {
	case types.LabelPositive:
		return c.Positive
	case types.LabelNegative:
		return c.Negative
	default:
		return c.Neutral
	}
}

// SourceCounts is the per-source item count.
type SourceCounts struct {
	News   int `json:"news"`
	Reddit int `json:"reddit"`
}

func SentimentBreakdown(items []types.EnrichedItem) SentimentCounts {
	var c SentimentCounts
	for _, item := range items {
		switch item.Label {
		case types.LabelPositive:
			c.Positive++
		case types.LabelNegative:
			c.Negative++
		default:
			c.Neutral++
		}
	}
	return c
}

func SourceBreakdown(items []types.EnrichedItem) SourceCounts {
	var c SourceCounts
	for _, item := range items {
		switch item.Source {
		case types.SourceNews:
			c.News++
		case types.SourceReddit:
			c.Reddit++
		}
	}
	return c
}

// SentimentIndex is the mean score scaled to [-100, 100], 2dp.
func SentimentIndex(items []types.EnrichedItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return types.Round(meanScore(items)*100, 2)
}

// VolatilityIndex is the population standard deviation of scores ×100, 2dp.
// Fewer than two items have no spread and yield 0.
func VolatilityIndex(items []types.EnrichedItem) float64 {
	if len(items) < 2 {
		return 0
	}
	mean := meanScore(items)
	ss := 0.0
	for _, item := range items {
		d := item.Score - mean
		ss += d * d
	}
	return types.Round(math.Sqrt(ss/float64(len(items)))*100, 2)
}

// MarketPulse bands a sentiment index into a human label.
func MarketPulse(index float64) string {
	switch {
	case index >= riskOnBand:
		return "Risk-on momentum"
	case index >= constructiveBand:
		return "Constructive optimism"
	case index <= riskOffBand:
		return "Risk-off pressure"
	case index <= defensiveBand:
		return "Defensive tone"
	default:
		return "Balanced / mixed"
	}
}

// TrendDirection compares the mean score of the older half of items with the
// newer half.
func TrendDirection(items []types.EnrichedItem) string {
	if len(items) < trendMinItems {
		return TrendFlat
	}
	ordered := Chronological(items)
	mid := len(ordered) / 2
	delta := meanScore(ordered[mid:]) - meanScore(ordered[:mid])
	switch {
	case delta > trendDelta:
		return TrendImproving
	case delta < -trendDelta:
		return TrendDeteriorating
	default:
		return TrendFlat
	}
}

// ActiveTickers counts distinct symbols across items.
func ActiveTickers(items []types.EnrichedItem) int {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, t := range item.Tickers {
			seen[t] = struct{}{}
		}
	}
	return len(seen)
}

// Ratio returns count/total as a percentage with 2dp, 0 when total is 0.
func Ratio(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return types.Round(float64(count)/float64(total)*100, 2)
}

// Chronological returns a copy of items sorted oldest first. Items with equal
// timestamps keep their relative order.
func Chronological(items []types.EnrichedItem) []types.EnrichedItem {
	ordered := make([]types.EnrichedItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PublishedAt.Before(ordered[j].PublishedAt)
	})
	return ordered
}

func meanScore(items []types.EnrichedItem) float64 {
	if len(items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range items {
		total += item.Score
	}
	return total / float64(len(items))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
