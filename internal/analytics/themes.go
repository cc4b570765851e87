package analytics

import (
	"math"
	"sort"

	"stock-sentiment/internal/themes"
	"stock-sentiment/internal/types"
)

const (
	DefaultThemeLimit     = 10
	DefaultNarrativeLimit = 8

	tickerFocusSize = 3
)

// ThemeInsight is the mention count and mean sentiment of one theme.
type ThemeInsight struct {
	Theme            string       `json:"theme"`
	Mentions         int          `json:"mentions"`
	AverageSentiment types.Number `json:"averageSentiment"`
}

// Narrative is a theme cluster headed by its most decisive item.
type Narrative struct {
	Theme       string       `json:"theme"`
	Mentions    int          `json:"mentions"`
	Sentiment   types.Number `json:"sentiment"`
	Headline    string       `json:"headline"`
	TickerFocus []string     `json:"tickerFocus"`
}

// ThemeInsights counts theme mentions, most mentioned first. Themes with
// equal counts keep the order they were first seen in.
func ThemeInsights(items []types.EnrichedItem, limit int) []ThemeInsight {
	counts := make(map[string]int)
	totals := make(map[string]float64)
	var order []string

	for _, item := range items {
		for _, theme := range item.Themes {
			if counts[theme] == 0 {
				order = append(order, theme)
			}
			counts[theme]++
			totals[theme] += item.Score
		}
	}

	rows := make([]ThemeInsight, 0, len(order))
	for _, theme := range order {
		rows = append(rows, ThemeInsight{
			Theme:            theme,
			Mentions:         counts[theme],
			AverageSentiment: types.Num(totals[theme] / float64(counts[theme]) * 100),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Mentions > rows[j].Mentions
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Narratives groups items by theme, with unthemed items under Macro, and
// picks the item with the largest |score|×confidence as each group's lead.
func Narratives(items []types.EnrichedItem, limit int) []Narrative {
	groups := make(map[string][]types.EnrichedItem)
	var order []string
	add := func(theme string, item types.EnrichedItem) {
		if _, ok := groups[theme]; !ok {
			order = append(order, theme)
		}
		groups[theme] = append(groups[theme], item)
	}

	for _, item := range items {
		if len(item.Themes) == 0 {
			add(themes.Macro, item)
			continue
		}
		for _, theme := range item.Themes {
			add(theme, item)
		}
	}

	rows := make([]Narrative, 0, len(order))
	for _, theme := range order {
		members := groups[theme]
		lead := members[0]
		for _, item := range members[1:] {
			if decisiveness(item) > decisiveness(lead) {
				lead = item
			}
		}

		focus := lead.Tickers
		if len(focus) > tickerFocusSize {
			focus = focus[:tickerFocusSize]
		}

		rows = append(rows, Narrative{
			Theme:       theme,
			Mentions:    len(members),
			Sentiment:   types.Num(meanScore(members) * 100),
			Headline:    lead.Title,
			TickerFocus: append([]string{}, focus...),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Mentions != b.Mentions {
			return a.Mentions > b.Mentions
		}
		return math.Abs(a.Sentiment.Float()) > math.Abs(b.Sentiment.Float())
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func decisiveness(item types.EnrichedItem) float64 {
	return math.Abs(item.Score) * item.Confidence
}
