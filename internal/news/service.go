package news

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"stock-sentiment/internal/enrich"
	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/store"
	"stock-sentiment/internal/trace"
	"stock-sentiment/internal/types"
)

const (
	flightStale = "stale"
	flightForce = "force"
)

// Service caches the enriched feed collection and refreshes it on demand
type Service struct {
	fetcher interfaces.FeedFetcher
	cfg     *ServiceConfig

	state      atomic.Pointer[types.Snapshot]
	generation atomic.Uint64 // completed refreshes
	attempted  atomic.Int64  // unix nanos of the last failed refresh that kept state

	mu     sync.Mutex // one refresh at a time
	flight singleflight.Group

	forceLimiter *rate.Limiter
	now          func() time.Time
}

var _ interfaces.Refresher = (*Service)(nil)

// ServiceConfig configures the feed cache
type ServiceConfig struct {
	TTL                   time.Duration // age after which the collection is stale
	MaxItems              int           // items kept after merging both feeds
	MaxPerFeed            int           // entries parsed per feed
	FeedTimeout           time.Duration // bound on fetching both feeds
	Workers               int           // enrichment goroutines, 0 = GOMAXPROCS
	ForceRefreshPerMinute int           // 0 = unlimited
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		TTL:         180 * time.Second,
		MaxItems:    120,
		MaxPerFeed:  80,
		FeedTimeout: 12 * time.Second,
	}
}

// ServiceConfigFrom maps the file configuration onto the service
func ServiceConfigFrom(cfg *store.Config) *ServiceConfig {
	return &ServiceConfig{
		TTL:                   cfg.CacheTTL(),
		MaxItems:              cfg.Cache.MaxItems,
		MaxPerFeed:            cfg.Feeds.MaxPerFeed,
		FeedTimeout:           cfg.FeedTimeout(),
		Workers:               cfg.Enrich.Workers,
		ForceRefreshPerMinute: cfg.Cache.ForceRefreshPerMinute,
	}
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a feed cache backed by fetcher
func NewService(fetcher interfaces.FeedFetcher, cfg *ServiceConfig, opts ...Option) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	s := &Service{
		fetcher: fetcher,
		cfg:     cfg,
		now:     time.Now,
	}
	if cfg.ForceRefreshPerMinute > 0 {
		s.forceLimiter = rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.ForceRefreshPerMinute)),
			cfg.ForceRefreshPerMinute,
		)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh returns the cached collection while it is younger than the TTL
// and refreshes it otherwise. force skips the age check. Concurrent callers
// share a single refresh and all receive its result.
func (s *Service) Refresh(ctx context.Context, force bool) types.Snapshot {
	if force && s.forceLimiter != nil && !s.forceLimiter.Allow() {
		logger.CacheEvent(ctx, "throttled")
		force = false
	}

	if !force {
		if snap, ok := s.fresh(s.now()); ok {
			logger.CacheEvent(ctx, "hit", "age_seconds", int(snap.Age(s.now()).Seconds()))
			return snap
		}
	}

	key := flightStale
	if force {
		key = flightForce
	}
	requested := s.generation.Load()

	v, _, _ := s.flight.Do(key, func() (any, error) {
		return s.refreshLocked(ctx, force, requested), nil
	})
	return v.(types.Snapshot)
}

// fresh returns the cached collection when it is non-empty and within TTL.
// Age counts from the later of generatedAt and the last failed attempt.
func (s *Service) fresh(now time.Time) (types.Snapshot, bool) {
	cur := s.state.Load()
	if cur == nil || len(cur.Items) == 0 {
		return types.Snapshot{}, false
	}
	since := cur.GeneratedAt
	if at := s.attempted.Load(); at != 0 && time.Unix(0, at).After(since) {
		since = time.Unix(0, at)
	}
	if now.Sub(since) >= s.cfg.TTL {
		return types.Snapshot{}, false
	}
	snap := *cur
	snap.Cached = true
	return snap, true
}

func (s *Service) refreshLocked(ctx context.Context, force bool, requested uint64) types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another flight may have finished while this one waited for the lock.
	if !force {
		if snap, ok := s.fresh(s.now()); ok {
			return snap
		}
	} else if s.generation.Load() != requested {
		if cur := s.state.Load(); cur != nil {
			return *cur
		}
	}

	return s.refresh(context.WithoutCancel(ctx))
}

// refresh fetches, enriches and swaps in a new collection. Must hold s.mu.
func (s *Service) refresh(ctx context.Context) types.Snapshot {
	timer := logger.StartOperation(ctx, trace.SpanNewsRefresh)
	ctx = timer.GetContext()
	now := s.now().UTC()

	prev := s.state.Load()
	raws := s.fetchAll(ctx, now)
	origin := types.OriginRSS

	if len(raws) == 0 {
		if prev != nil && prev.Origin == types.OriginRSS && len(prev.Items) > 0 {
			s.attempted.Store(now.UnixNano())
			logger.CacheEvent(ctx, "stale_kept", "items", len(prev.Items))
			timer.End("origin", string(prev.Origin), "items", len(prev.Items))
			snap := *prev
			snap.Cached = true
			return snap
		}
		raws = FallbackItems(now)
		origin = types.OriginFallback
		logger.CacheEvent(ctx, "fallback", "items", len(raws))
	}

	items := enrich.All(ctx, raws, s.cfg.Workers)
	sortNewestFirst(items)
	if s.cfg.MaxItems > 0 && len(items) > s.cfg.MaxItems {
		items = items[:s.cfg.MaxItems]
	}

	generatedAt := now
	if prev != nil && prev.GeneratedAt.After(generatedAt) {
		generatedAt = prev.GeneratedAt
	}

	next := &types.Snapshot{
		Items:       items,
		GeneratedAt: generatedAt,
		Origin:      origin,
	}
	s.state.Store(next)
	s.generation.Add(1)

	logger.CacheEvent(ctx, "refreshed", "origin", string(origin), "items", len(items))
	timer.End("origin", string(origin), "items", len(items))
	return *next
}

// fetchAll downloads and parses both feeds concurrently. A failing feed
// contributes no items and never fails the other.
func (s *Service) fetchAll(ctx context.Context, now time.Time) []types.RawItem {
	if s.cfg.FeedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FeedTimeout)
		defer cancel()
	}

	sources := types.AllSources()
	parsed := make([][]types.RawItem, len(sources))

	var g errgroup.Group
	for i, source := range sources {
		g.Go(func() error {
			blob, err := s.fetcher.Fetch(ctx, source)
			if err != nil {
				logger.Warn(ctx, "Feed fetch failed", "source", source, "error", err)
				return nil
			}
			items, err := ParseFeed(source, blob, s.cfg.MaxPerFeed, now)
			if err != nil {
				logger.Warn(ctx, "Feed parse failed", "source", source, "error", err)
				return nil
			}
			logger.Info(ctx, "Feed parsed", "source", source, "items", len(items))
			parsed[i] = items
			return nil
		})
	}
	_ = g.Wait()

	var all []types.RawItem
	for _, items := range parsed {
		all = append(all, items...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if s.cfg.MaxItems > 0 && len(all) > s.cfg.MaxItems {
		all = all[:s.cfg.MaxItems]
	}
	return all
}

func sortNewestFirst(items []types.EnrichedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
}
