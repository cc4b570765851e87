package news

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/store"
	"stock-sentiment/internal/types"
)

// Scraper downloads feed documents with colly
type Scraper struct {
	urls      map[types.Source]string
	userAgent string
	timeout   time.Duration
}

var _ interfaces.FeedFetcher = (*Scraper)(nil)

// NewScraper creates a scraper for the feeds configured in cfg
func NewScraper(cfg *store.Config) *Scraper {
	return &Scraper{
		urls: map[types.Source]string{
			types.SourceNews:   cfg.Feeds.NewsURL,
			types.SourceReddit: cfg.Feeds.RedditURL,
		},
		userAgent: cfg.Feeds.UserAgent,
		timeout:   cfg.FeedTimeout(),
	}
}

// URL returns the feed address for source
func (s *Scraper) URL(source types.Source) string {
	return s.urls[source]
}

// Fetch returns the body of the source's feed. HTTP errors and timeouts are
// returned as errors; the caller decides how to degrade.
func (s *Scraper) Fetch(ctx context.Context, source types.Source) (string, error) {
	feedURL, ok := s.urls[source]
	if !ok || feedURL == "" {
		return "", fmt.Errorf("no feed configured for source %q", source)
	}

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	if s.timeout > 0 {
		c.SetRequestTimeout(s.timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	})

	var body string
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Warn(ctx, "Feed request failed", "source", source, "url", feedURL,
			"status", r.StatusCode, "error", err)
	})

	done := make(chan error, 1)
	go func() {
		done <- c.Visit(feedURL)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("failed to fetch %s feed: %w", source, err)
		}
		return body, nil
	case <-ctx.Done():
		return "", fmt.Errorf("failed to fetch %s feed: %w", source, ctx.Err())
	}
}
