package analytics

import (
	"strings"

	"stock-sentiment/internal/tickers"
	"stock-sentiment/internal/types"
)

// Filter narrows an item collection. Zero-valued fields match everything.
type Filter struct {
	Source    string
	Sentiment string
	Ticker    string
	Query     string
}

// Apply returns the items matching every set field, in input order. Values
// are trimmed, so blank ones are unset. A ticker that does not sanitize to a
// symbol is ignored rather than matching nothing.
func (f Filter) Apply(items []types.EnrichedItem) []types.EnrichedItem {
	source := strings.ToLower(strings.TrimSpace(f.Source))
	label := strings.ToLower(strings.TrimSpace(f.Sentiment))
	symbol := ""
	if f.Ticker != "" {
		symbol = tickers.Sanitize(f.Ticker)
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]types.EnrichedItem, 0, len(items))
	for _, item := range items {
		if source != "" && string(item.Source) != source {
			continue
		}
		if label != "" && string(item.Label) != label {
			continue
		}
		if symbol != "" && !item.HasTicker(symbol) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Title), query) &&
			!strings.Contains(strings.ToLower(item.Text), query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterItems is shorthand for f.Apply(items).
func FilterItems(items []types.EnrichedItem, f Filter) []types.EnrichedItem {
	return f.Apply(items)
}
