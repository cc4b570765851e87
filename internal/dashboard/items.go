package dashboard

import (
	"stock-sentiment/internal/types"
)

// ItemSentiment is the scaled sentiment block of a feed item.
type ItemSentiment struct {
	Label      types.Label  `json:"label"`
	Score      types.Number `json:"score"`
	Confidence types.Number `json:"confidence"`
}

// FeedItem is the public JSON form of an enriched item.
type FeedItem struct {
	ID          string        `json:"id"`
	Source      types.Source  `json:"source"`
	Title       string        `json:"title"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Text        string        `json:"text"`
	Summary     string        `json:"summary"`
	Sentiment   ItemSentiment `json:"sentiment"`
	Tickers     []string      `json:"tickers"`
	Themes      []string      `json:"themes"`
}

// LegacyItem is the row shape of the /api/news and /api/reddit endpoints.
type LegacyItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date"`
	Text  string `json:"text"`
}

func Serialize(item types.EnrichedItem) FeedItem {
	return FeedItem{
		ID:          item.ID,
		Source:      item.Source,
		Title:       item.Title,
		URL:         item.URL,
		PublishedAt: types.ISOTime(item.PublishedAt),
		Text:        item.Text,
		Summary:     item.Summary,
		Sentiment: ItemSentiment{
			Label:      item.Label,
			Score:      types.Num(item.Score * 100),
			Confidence: types.Num(item.Confidence * 100),
		},
		Tickers: nonNil(item.Tickers),
		Themes:  nonNil(item.Themes),
	}
}

// SerializeAll serializes at most limit items; limit <= 0 means all.
func SerializeAll(items []types.EnrichedItem, limit int) []FeedItem {
	items = head(items, limit)
	out := make([]FeedItem, len(items))
	for i, item := range items {
		out[i] = Serialize(item)
	}
	return out
}

// Legacy returns up to limit items from source in the legacy row shape.
func Legacy(items []types.EnrichedItem, source types.Source, limit int) []LegacyItem {
	out := make([]LegacyItem, 0)
	for _, item := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		if item.Source != source {
			continue
		}
		out = append(out, LegacyItem{
			ID:    item.ID,
			Title: item.Title,
			URL:   item.URL,
			Date:  types.ISOTime(item.PublishedAt),
			Text:  item.Text,
		})
	}
	return out
}

func head[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
