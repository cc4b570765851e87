package analytics

import (
	"stock-sentiment/internal/types"
)

// DefaultTimelineBuckets is the bucket count the dashboard asks for.
const DefaultTimelineBuckets = 10

// TimelineBucket is one contiguous chronological slice of items.
type TimelineBucket struct {
	Time       string       `json:"time"`
	Label      string       `json:"label"`
	Sentiment  types.Number `json:"sentiment"`
	Confidence types.Number `json:"confidence"`
	Mentions   int          `json:"mentions"`
	LeadTicker string       `json:"leadTicker"`
}

// Timeline splits the items, oldest first, into buckets of ceil(n/buckets)
// items and returns at most the last buckets of them.
func Timeline(items []types.EnrichedItem, buckets int) []TimelineBucket {
	segments := TimelineSegments(items, buckets)
	out := make([]TimelineBucket, 0, len(segments))
	for _, segment := range segments {
		last := segment[len(segment)-1].PublishedAt
		score, confidence := 0.0, 0.0
		for _, item := range segment {
			score += item.Score
			confidence += item.Confidence
		}
		n := float64(len(segment))
		out = append(out, TimelineBucket{
			Time:       types.ISOTime(last),
			Label:      types.ShortLabel(last),
			Sentiment:  types.Num(score / n * 100),
			Confidence: types.Num(confidence / n * 100),
			Mentions:   len(segment),
			LeadTicker: leadTicker(segment),
		})
	}
	return out
}

// TimelineSegments returns the item groups Timeline aggregates. Concatenated,
// the segments list every input item once in chronological order, minus any
// leading segments dropped by the buckets cap.
func TimelineSegments(items []types.EnrichedItem, buckets int) [][]types.EnrichedItem {
	if len(items) == 0 {
		return nil
	}
	if buckets <= 0 {
		buckets = DefaultTimelineBuckets
	}

	ordered := Chronological(items)
	size := (len(ordered) + buckets - 1) / buckets
	if size < 1 {
		size = 1
	}

	var segments [][]types.EnrichedItem
	for start := 0; start < len(ordered); start += size {
		end := min(start+size, len(ordered))
		segments = append(segments, ordered[start:end])
	}
	if len(segments) > buckets {
		segments = segments[len(segments)-buckets:]
	}
	return segments
}

// leadTicker is the most mentioned symbol in the segment; the first one seen
// wins a tie.
func leadTicker(segment []types.EnrichedItem) string {
	counts := make(map[string]int)
	var order []string
	for _, item := range segment {
		for _, t := range item.Tickers {
			if counts[t] == 0 {
				order = append(order, t)
			}
			counts[t]++
		}
	}

	lead, best := "", 0
	for _, t := range order {
		if counts[t] > best {
			lead, best = t, counts[t]
		}
	}
	return lead
}
