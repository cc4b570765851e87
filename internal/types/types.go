package types

import (
	"strings"
	"time"
)

// Source identifies the feed an item came from.
type Source string

const (
	SourceNews   Source = "news"
	SourceReddit Source = "reddit"
)

// AllSources returns the feed sources in canonical order.
func AllSources() []Source {
	return []Source{SourceNews, SourceReddit}
}

func (s Source) Valid() bool {
	return s == SourceNews || s == SourceReddit
}

// ParseSource maps user input ("News ", "reddit") onto a Source.
func ParseSource(value string) (Source, bool) {
	s := Source(strings.ToLower(strings.TrimSpace(value)))
	return s, s.Valid()
}

// Label is the discrete sentiment class of an item.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

// AllLabels returns the labels in dashboard order.
func AllLabels() []Label {
	return []Label{LabelPositive, LabelNegative, LabelNeutral}
}

func (l Label) Valid() bool {
	switch l {
	case LabelPositive, LabelNeutral, LabelNegative:
		return true
	}
	return false
}

// ParseLabel maps user input onto a Label.
func ParseLabel(value string) (Label, bool) {
	l := Label(strings.ToLower(strings.TrimSpace(value)))
	return l, l.Valid()
}

// Origin tells whether a cached collection came from live feeds or the seed set.
type Origin string

const (
	OriginRSS      Origin = "rss"
	OriginFallback Origin = "fallback"
)

// RawItem is a single normalized feed entry before enrichment
type RawItem struct {
	ID          string
	Source      Source
	Title       string
	URL         string
	PublishedAt time.Time // UTC
	Text        string    // whitespace-collapsed plain text
}

// EnrichedItem is a RawItem plus everything derived from its text.
// Values are never mutated after enrichment.
type EnrichedItem struct {
	RawItem

	Summary    string
	Label      Label
	Score      float64 // [-1, 1], 4dp
	Confidence float64 // [0, 0.99], 4dp
	Tickers    []string
	Themes     []string
}

// HasTicker reports whether symbol was extracted from the item.
func (e EnrichedItem) HasTicker(symbol string) bool {
	for _, t := range e.Tickers {
		if t == symbol {
			return true
		}
	}
	return false
}

// Snapshot is what the cache hands out on every refresh call
type Snapshot struct {
	Items       []EnrichedItem // newest first
	GeneratedAt time.Time
	Cached      bool
	Origin      Origin
}

// Age returns how old the snapshot is relative to now.
func (s Snapshot) Age(now time.Time) time.Duration {
	if s.GeneratedAt.IsZero() {
		return 0
	}
	d := now.Sub(s.GeneratedAt)
	if d < 0 {
		return 0
	}
	return d
}
