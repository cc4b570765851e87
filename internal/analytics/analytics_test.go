package analytics

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-sentiment/internal/themes"
	"stock-sentiment/internal/types"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type itemOpt func(*types.EnrichedItem)

func withTickers(t ...string) itemOpt {
	return func(e *types.EnrichedItem) { e.Tickers = t }
}

func withThemes(t ...string) itemOpt {
	return func(e *types.EnrichedItem) { e.Themes = t }
}

func withSource(s types.Source) itemOpt {
	return func(e *types.EnrichedItem) { e.Source = s }
}

func withConfidence(c float64) itemOpt {
	return func(e *types.EnrichedItem) { e.Confidence = c }
}

func withTitle(title string) itemOpt {
	return func(e *types.EnrichedItem) { e.Title = title }
}

func labelFor(score float64) types.Label {
	switch {
	case score > 0.18:
		return types.LabelPositive
	case score < -0.18:
		return types.LabelNegative
	}
	return types.LabelNeutral
}

// item builds an enriched item published minute minutes after base.
func item(id string, score float64, minute int, opts ...itemOpt) types.EnrichedItem {
	e := types.EnrichedItem{
		RawItem: types.RawItem{
			ID:          id,
			Source:      types.SourceNews,
			Title:       "title " + id,
			PublishedAt: base.Add(time.Duration(minute) * time.Minute),
			Text:        "text " + id,
		},
		Label:      labelFor(score),
		Score:      score,
		Confidence: 0.5,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func TestBreakdowns(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.5, 0),
		item("b", -0.5, 1, withSource(types.SourceReddit)),
		item("c", 0.0, 2),
		item("d", 0.9, 3, withSource(types.SourceReddit)),
	}

	assert.Equal(t, SentimentCounts{Positive: 2, Negative: 1, Neutral: 1}, SentimentBreakdown(items))
	assert.Equal(t, SourceCounts{News: 2, Reddit: 2}, SourceBreakdown(items))
	assert.Equal(t, SentimentCounts{}, SentimentBreakdown(nil))

	raw, err := json.Marshal(SentimentBreakdown(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"positive":0,"negative":0,"neutral":0}`, string(raw))
}

func TestSentimentIndex(t *testing.T) {
	assert.Equal(t, 0.0, SentimentIndex(nil))
	assert.Equal(t, 12.5, SentimentIndex([]types.EnrichedItem{item("a", 0.5, 0), item("b", -0.25, 1)}))
}

func TestVolatilityIndex(t *testing.T) {
	assert.Equal(t, 0.0, VolatilityIndex(nil))
	assert.Equal(t, 0.0, VolatilityIndex([]types.EnrichedItem{item("a", 0.9, 0)}))
	assert.Equal(t, 50.0, VolatilityIndex([]types.EnrichedItem{item("a", 0.5, 0), item("b", -0.5, 1)}))
	assert.Equal(t, 0.0, VolatilityIndex([]types.EnrichedItem{item("a", 0.3, 0), item("b", 0.3, 1)}))
}

func TestMarketPulseBands(t *testing.T) {
	cases := map[float64]string{
		40:     "Risk-on momentum",
		22:     "Risk-on momentum",
		21.99:  "Constructive optimism",
		8:      "Constructive optimism",
		7.99:   "Balanced / mixed",
		0:      "Balanced / mixed",
		-7.99:  "Balanced / mixed",
		-8:     "Defensive tone",
		-21.99: "Defensive tone",
		-22:    "Risk-off pressure",
		-80:    "Risk-off pressure",
	}
	for index, want := range cases {
		assert.Equal(t, want, MarketPulse(index), "index %v", index)
	}
}

func TestTrendDirection(t *testing.T) {
	var improving []types.EnrichedItem
	// newest first so the function has to sort
	for i := 5; i >= 0; i-- {
		score := -0.5
		if i >= 3 {
			score = 0.5
		}
		improving = append(improving, item(fmt.Sprint(i), score, i))
	}
	assert.Equal(t, TrendImproving, TrendDirection(improving))
	assert.Equal(t, TrendFlat, TrendDirection(improving[:5]), "fewer than six items")

	var worse []types.EnrichedItem
	for i := 0; i < 7; i++ {
		score := 0.4
		if i >= 3 {
			score = -0.4
		}
		worse = append(worse, item(fmt.Sprint(i), score, i))
	}
	assert.Equal(t, TrendDeteriorating, TrendDirection(worse))

	var flat []types.EnrichedItem
	for i := 0; i < 8; i++ {
		flat = append(flat, item(fmt.Sprint(i), 0.05*float64(i%2), i))
	}
	assert.Equal(t, TrendFlat, TrendDirection(flat))
}

func TestTimelinePartitionsItemsChronologically(t *testing.T) {
	var items []types.EnrichedItem
	for i := 0; i < 23; i++ {
		// scramble publication order
		items = append(items, item(fmt.Sprint(i), 0.1, (i*7)%23))
	}

	segments := TimelineSegments(items, DefaultTimelineBuckets)
	require.Len(t, segments, 8, "ceil(23/10)=3 items per bucket")

	var joined []types.EnrichedItem
	for _, s := range segments {
		joined = append(joined, s...)
	}
	assert.Equal(t, Chronological(items), joined)

	buckets := Timeline(items, DefaultTimelineBuckets)
	require.Len(t, buckets, len(segments))
	total := 0
	for i, b := range buckets {
		total += b.Mentions
		assert.Equal(t, types.ISOTime(segments[i][len(segments[i])-1].PublishedAt), b.Time)
	}
	assert.Equal(t, len(items), total)
	assert.Equal(t, 2, buckets[len(buckets)-1].Mentions, "last bucket is shorter")
}

func TestTimelineBucketFields(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.5, 0, withConfidence(0.4), withTickers("MSFT")),
		item("b", -0.1, 90, withConfidence(0.6), withTickers("AAPL", "MSFT")),
	}
	buckets := Timeline(items, 1)
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.Equal(t, "2024-05-01T13:30:00+00:00", b.Time)
	assert.Equal(t, "May 01 13:30", b.Label)
	assert.Equal(t, types.Number(20), b.Sentiment)
	assert.Equal(t, types.Number(50), b.Confidence)
	assert.Equal(t, 2, b.Mentions)
	assert.Equal(t, "MSFT", b.LeadTicker)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"2024-05-01T13:30:00+00:00","label":"May 01 13:30","sentiment":20.0,"confidence":50.0,"mentions":2,"leadTicker":"MSFT"}`, string(raw))
	assert.Contains(t, string(raw), `"sentiment":20.0`)
}

func TestTimelineLeadTickerTieFirstSeen(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0, 0, withTickers("NVDA")),
		item("b", 0, 1, withTickers("AMD")),
	}
	assert.Equal(t, "NVDA", Timeline(items, 1)[0].LeadTicker)
	assert.Equal(t, "", Timeline([]types.EnrichedItem{item("a", 0, 0)}, 1)[0].LeadTicker)
	assert.Empty(t, Timeline(nil, 10))
}

func TestMomentum(t *testing.T) {
	assert.Equal(t, 0.0, Momentum(nil))
	assert.Equal(t, 0.0, Momentum([]float64{-1, 1}))
	assert.InDelta(t, 0.25, Momentum([]float64{0, 0, 0.5}), 1e-9, "odd split puts the extra value in the later half")
	assert.Equal(t, 1.0, Momentum([]float64{-1, -1, 1, 1}))
	assert.Equal(t, -1.0, Momentum([]float64{1, 1, -1, -1}))
}

func TestMomentumBounded(t *testing.T) {
	series := []float64{}
	for i := 0; i < 40; i++ {
		series = append(series, float64(i%5)/2-1)
		m := Momentum(series)
		assert.GreaterOrEqual(t, m, -1.0)
		assert.LessOrEqual(t, m, 1.0)
	}
}

func TestTickerInsightsCounts(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.5, 0, withTickers("TSLA", "NVDA")),
		item("b", -0.4, 1, withTickers("TSLA"), withSource(types.SourceReddit)),
		item("c", 0.0, 2, withTickers("TSLA")),
		item("d", 0.3, 3, withTickers("NVDA")),
	}
	rows := TickerInsights(items, 0)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, row.Mentions, row.Bullish+row.Bearish+row.Neutral, row.Ticker)
	}

	tsla := rows[0]
	assert.Equal(t, "TSLA", tsla.Ticker)
	assert.Equal(t, 3, tsla.Mentions)
	assert.Equal(t, map[string]int{"news": 2, "reddit": 1}, tsla.SourceMix)
	assert.Equal(t, types.Num(0.1/3*100), tsla.AverageSentiment)
	// series 0.5, -0.4, 0.0 → mean(-0.4, 0.0) - 0.5 = -0.7
	assert.Equal(t, types.Number(-70), tsla.Momentum)
	assert.Equal(t, types.Num(3*6.5+0.1/3*40+0.7*22), tsla.HypeScore)

	nvda := rows[1]
	assert.Equal(t, 2, nvda.Mentions)
	assert.Equal(t, types.Number(40), nvda.AverageSentiment)
	assert.Equal(t, types.Number(0), nvda.Momentum)
	assert.Equal(t, types.Num(2*6.5+0.4*40), nvda.HypeScore)
}

func TestTickerInsightsRankingAndLimit(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.1, 0, withTickers("LOW")),
		item("b", 0.9, 1, withTickers("HIGH")),
		item("c", -0.9, 2, withTickers("NEG")),
	}
	rows := TickerInsights(items, 2)
	require.Len(t, rows, 2)
	// HIGH and NEG tie on every key; HIGH was seen first
	assert.Equal(t, "HIGH", rows[0].Ticker)
	assert.Equal(t, "NEG", rows[1].Ticker)

	assert.Empty(t, TickerInsights(nil, 12))
}

func TestThemeInsights(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.2, 0, withThemes(themes.Rates)),
		item("b", 0.4, 1, withThemes(themes.AI, themes.Rates)),
		item("c", -0.2, 2, withThemes(themes.Crypto)),
	}
	rows := ThemeInsights(items, 10)
	require.Len(t, rows, 3)
	assert.Equal(t, ThemeInsight{Theme: themes.Rates, Mentions: 2, AverageSentiment: 30}, rows[0])
	// AI and Crypto tie; AI was seen first
	assert.Equal(t, themes.AI, rows[1].Theme)
	assert.Equal(t, themes.Crypto, rows[2].Theme)

	assert.Len(t, ThemeInsights(items, 1), 1)
}

func TestNarratives(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.3, 0, withThemes(themes.EV), withTickers("TSLA", "RIVN", "LCID", "NIO")),
		item("b", -0.9, 1, withThemes(themes.EV, themes.Labor), withConfidence(0.9),
			withTitle("Strike hits Tesla"), withTickers("TSLA", "F", "GM", "STLA")),
		item("c", 0.1, 2),
		item("d", 0.0, 3),
		item("e", 0.6, 4),
	}
	rows := Narratives(items, DefaultNarrativeLimit)
	require.Len(t, rows, 3)

	assert.Equal(t, themes.Macro, rows[0].Theme)
	assert.Equal(t, 3, rows[0].Mentions)
	assert.Equal(t, "title e", rows[0].Headline)
	assert.NotNil(t, rows[0].TickerFocus)
	assert.Empty(t, rows[0].TickerFocus)

	ev := rows[1]
	assert.Equal(t, themes.EV, ev.Theme)
	assert.Equal(t, 2, ev.Mentions)
	assert.Equal(t, types.Number(-30), ev.Sentiment)
	assert.Equal(t, "Strike hits Tesla", ev.Headline)
	assert.Equal(t, []string{"TSLA", "F", "GM"}, ev.TickerFocus)

	assert.Equal(t, themes.Labor, rows[2].Theme)

	assert.Len(t, Narratives(items, 1), 1)
	assert.Empty(t, Narratives(nil, 8))

	raw, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tickerFocus":[]`)
}

func TestNarrativeLeadTieFirstSeen(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.5, 0, withThemes(themes.AI)),
		item("b", -0.5, 1, withThemes(themes.AI)),
	}
	assert.Equal(t, "title a", Narratives(items, 8)[0].Headline)
}

func TestFilter(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0.5, 0, withTickers("TSLA"), withTitle("Tesla rallies")),
		item("b", -0.5, 1, withSource(types.SourceReddit), withTickers("GME")),
		item("c", 0.0, 2, withSource(types.SourceReddit), withTickers("TSLA")),
	}

	ids := func(in []types.EnrichedItem) []string {
		out := []string{}
		for _, e := range in {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterItems(items, Filter{})))
	assert.Equal(t, []string{"b", "c"}, ids(FilterItems(items, Filter{Source: " Reddit "})))
	assert.Equal(t, []string{"b"}, ids(FilterItems(items, Filter{Sentiment: "NEGATIVE"})))
	assert.Equal(t, []string{"a", "c"}, ids(FilterItems(items, Filter{Ticker: "$tsla"})))
	assert.Equal(t, []string{"c"}, ids(Filter{Source: "reddit", Ticker: "TSLA"}.Apply(items)))
	assert.Equal(t, []string{"a"}, ids(FilterItems(items, Filter{Query: "RALLIES"})))
	assert.Equal(t, []string{"b"}, ids(FilterItems(items, Filter{Query: "text b"})))

	assert.Empty(t, FilterItems(items, Filter{Source: "twitter"}), "unknown source matches nothing")
	assert.Len(t, FilterItems(items, Filter{Ticker: "CEO"}), 3, "noise ticker is ignored")
	assert.Len(t, FilterItems(items, Filter{Ticker: "123"}), 3, "malformed ticker is ignored")
	assert.Len(t, FilterItems(items, Filter{Source: "  ", Sentiment: "\t", Query: " "}), 3, "blank values are unset")
}

func TestActiveTickersAndRatio(t *testing.T) {
	items := []types.EnrichedItem{
		item("a", 0, 0, withTickers("TSLA", "NVDA")),
		item("b", 0, 1, withTickers("TSLA")),
	}
	assert.Equal(t, 2, ActiveTickers(items))
	assert.Equal(t, 0, ActiveTickers(nil))

	assert.Equal(t, 0.0, Ratio(3, 0))
	assert.Equal(t, 33.33, Ratio(1, 3))
	assert.Equal(t, 100.0, Ratio(4, 4))
}
