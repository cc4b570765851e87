package newsobs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/trace"
	"stock-sentiment/internal/types"
)

// observableFetcher wraps a FeedFetcher with observability (logging & tracing)
type observableFetcher struct {
	fetcher interfaces.FeedFetcher
}

// Compile-time interface check
var _ interfaces.FeedFetcher = (*observableFetcher)(nil)

// Wrap wraps a fetcher with observability middleware
func Wrap(fetcher interfaces.FeedFetcher) interfaces.FeedFetcher {
	return &observableFetcher{
		fetcher: fetcher,
	}
}

// Fetch downloads a feed with observability
func (of *observableFetcher) Fetch(ctx context.Context, source types.Source) (string, error) {
	ctx, span := trace.StartFetchSpan(ctx, string(source))
	defer span.End()

	logger.DebugSkip(ctx, 1, "Fetching feed", "source", source)

	start := time.Now()
	blob, err := of.fetcher.Fetch(ctx, source)
	elapsed := time.Since(start)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch feed", err,
			"source", source,
			"duration_ms", elapsed.Milliseconds(),
		)
		return "", err
	}

	if trace.Enabled() {
		span.SetAttributes(
			attribute.Int("feed.bytes", len(blob)),
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
		)
	}

	logger.InfoSkip(ctx, 1, "Feed fetched",
		"source", source,
		"bytes", len(blob),
		"duration_ms", elapsed.Milliseconds(),
	)
	return blob, nil
}

// observableRefresher wraps a Refresher with observability
type observableRefresher struct {
	refresher interfaces.Refresher
}

var _ interfaces.Refresher = (*observableRefresher)(nil)

// WrapRefresher wraps the feed cache with observability middleware
func WrapRefresher(refresher interfaces.Refresher) interfaces.Refresher {
	return &observableRefresher{refresher: refresher}
}

// Refresh returns the feed collection with observability
func (r *observableRefresher) Refresh(ctx context.Context, force bool) types.Snapshot {
	ctx, span := trace.StartSpan(ctx, trace.SpanCacheRefresh)
	defer span.End()

	snap := r.refresher.Refresh(ctx, force)

	if trace.Enabled() {
		span.SetAttributes(
			attribute.Bool("cache.force", force),
			attribute.Bool("cache.hit", snap.Cached),
			attribute.String("cache.origin", string(snap.Origin)),
			attribute.Int("cache.items", len(snap.Items)),
		)
	}

	logger.DebugSkip(ctx, 1, "Feed collection served",
		"force", force,
		"cached", snap.Cached,
		"origin", snap.Origin,
		"items", len(snap.Items),
	)
	return snap
}
