package interfaces

import (
	"context"

	"stock-sentiment/internal/types"
)

// FeedFetcher downloads the raw markup of one feed source.
type FeedFetcher interface {
	Fetch(ctx context.Context, source types.Source) (string, error)
}

// Refresher hands out the current enriched collection, refreshing it when
// stale or when force is set.
type Refresher interface {
	Refresh(ctx context.Context, force bool) types.Snapshot
}
