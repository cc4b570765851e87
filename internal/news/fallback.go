package news

import (
	"time"

	"stock-sentiment/internal/types"
)

type seed struct {
	source  types.Source
	title   string
	url     string
	text    string
	minutes int
}

// fallbackSeeds is served when neither feed yields an item.
var fallbackSeeds = []seed{
	{
		source:  types.SourceNews,
		title:   "Nvidia leads AI stocks after upbeat guidance",
		url:     "https://finance.yahoo.com",
		text:    "Nvidia and other semiconductor leaders rallied after strong guidance and a surge in enterprise AI demand.",
		minutes: 15,
	},
	{
		source:  types.SourceNews,
		title:   "Federal Reserve signals caution as inflation cools",
		url:     "https://finance.yahoo.com",
		text:    "Markets stayed mixed as the Fed highlighted ongoing inflation risks despite softer CPI prints.",
		minutes: 37,
	},
	{
		source:  types.SourceNews,
		title:   "Apple supplier concerns pressure hardware outlook",
		url:     "https://finance.yahoo.com",
		text:    "Investors weighed weaker hardware demand and margin pressure, though service revenue remained resilient.",
		minutes: 58,
	},
	{
		source:  types.SourceReddit,
		title:   "$TSLA breakout or bull trap?",
		url:     "https://reddit.com/r/wallstreetbets",
		text:    "WSB traders debate whether Tesla momentum is a real breakout or a short-term squeeze before a pullback.",
		minutes: 77,
	},
	{
		source:  types.SourceReddit,
		title:   "Rotation into $MSFT and $AMZN",
		url:     "https://reddit.com/r/wallstreetbets",
		text:    "Comments show bullish rotation into mega-cap software as risk appetite improves.",
		minutes: 94,
	},
	{
		source:  types.SourceReddit,
		title:   "Bears circle regional banks",
		url:     "https://reddit.com/r/wallstreetbets",
		text:    "Posts mention rising credit losses and higher funding costs, keeping bank sentiment negative.",
		minutes: 122,
	},
}

// FallbackItems returns the fixed seed set, timestamped relative to now and
// ordered newest first.
func FallbackItems(now time.Time) []types.RawItem {
	now = now.UTC()
	items := make([]types.RawItem, len(fallbackSeeds))
	for i, s := range fallbackSeeds {
		items[i] = types.RawItem{
			ID:          StableID("fallback", s.title),
			Source:      s.source,
			Title:       s.title,
			URL:         s.url,
			PublishedAt: now.Add(-time.Duration(s.minutes) * time.Minute),
			Text:        s.text,
		}
	}
	return items
}
