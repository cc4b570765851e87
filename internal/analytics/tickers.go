package analytics

import (
	"math"
	"sort"

	"stock-sentiment/internal/types"
)

// DefaultTrendingLimit is the number of ticker rows on the dashboard.
const DefaultTrendingLimit = 12

const (
	momentumMinObservations = 3

	hypeMentionWeight   = 6.5
	hypeSentimentWeight = 40.0
	hypeMomentumWeight  = 22.0
)

// TickerInsight summarizes every mention of one symbol.
type TickerInsight struct {
	Ticker           string         `json:"ticker"`
	Mentions         int            `json:"mentions"`
	AverageSentiment types.Number   `json:"averageSentiment"`
	Bullish          int            `json:"bullish"`
	Bearish          int            `json:"bearish"`
	Neutral          int            `json:"neutral"`
	Momentum         types.Number   `json:"momentum"`
	HypeScore        types.Number   `json:"hypeScore"`
	SourceMix        map[string]int `json:"sourceMix"`
}

type tickerAccumulator struct {
	mentions int
	total    float64
	bullish  int
	bearish  int
	neutral  int
	sources  map[string]int
	series   []float64
}

// TickerInsights ranks every ticker mentioned in items by hype score and
// returns the first limit rows. A non-positive limit returns all rows.
func TickerInsights(items []types.EnrichedItem, limit int) []TickerInsight {
	acc := make(map[string]*tickerAccumulator)
	var order []string

	for _, item := range items {
		seen := make(map[string]struct{}, len(item.Tickers))
		for _, t := range item.Tickers {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}

			a, ok := acc[t]
			if !ok {
				a = &tickerAccumulator{sources: make(map[string]int)}
				acc[t] = a
				order = append(order, t)
			}
			a.mentions++
			a.total += item.Score
			a.series = append(a.series, item.Score)
			a.sources[string(item.Source)]++
			switch item.Label {
			case types.LabelPositive:
				a.bullish++
			case types.LabelNegative:
				a.bearish++
			default:
				a.neutral++
			}
		}
	}

	rows := make([]TickerInsight, 0, len(order))
	for _, t := range order {
		a := acc[t]
		avg := a.total / float64(a.mentions)
		momentum := Momentum(a.series)
		hype := float64(a.mentions)*hypeMentionWeight +
			math.Abs(avg)*hypeSentimentWeight +
			math.Abs(momentum)*hypeMomentumWeight

		rows = append(rows, TickerInsight{
			Ticker:           t,
			Mentions:         a.mentions,
			AverageSentiment: types.Num(avg * 100),
			Bullish:          a.bullish,
			Bearish:          a.bearish,
			Neutral:          a.neutral,
			Momentum:         types.Num(momentum * 100),
			HypeScore:        types.Num(hype),
			SourceMix:        a.sources,
		})
	}

	// Ranking uses the displayed (rounded) values.
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.HypeScore != b.HypeScore {
			return a.HypeScore > b.HypeScore
		}
		if a.Mentions != b.Mentions {
			return a.Mentions > b.Mentions
		}
		return math.Abs(a.AverageSentiment.Float()) > math.Abs(b.AverageSentiment.Float())
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Momentum is the mean of the later half of series minus the mean of the
// earlier half, clamped to [-1, 1]. Series shorter than three are 0.
func Momentum(series []float64) float64 {
	if len(series) < momentumMinObservations {
		return 0
	}
	mid := len(series) / 2
	delta := mean(series[mid:]) - mean(series[:mid])
	return math.Max(-1, math.Min(1, delta))
}
