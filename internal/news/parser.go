package news

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"stock-sentiment/internal/enrich"
	"stock-sentiment/internal/types"
)

const untitled = "Untitled"

// ParseFeed turns an RSS or Atom document into raw items. Only the first
// limit entries are considered; entries without any text are skipped.
// Malformed markup is reported as an error with no items.
func ParseFeed(source types.Source, blob string, limit int, now time.Time) ([]types.RawItem, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil
	}

	feed, err := gofeed.NewParser().ParseString(blob)
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", source, err)
	}

	entries := feed.Items
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]types.RawItem, 0, len(entries))
	for _, entry := range entries {
		title := enrich.NormalizeWhitespace(entry.Title)
		if title == "" {
			title = untitled
		}
		body := HTMLToText(entryBody(source, entry))
		text := enrich.NormalizeWhitespace(strings.Trim(title+". "+body, ". "))
		if text == "" {
			continue
		}

		items = append(items, types.RawItem{
			ID:          StableID(string(source), title+entry.Link),
			Source:      source,
			Title:       title,
			URL:         entry.Link,
			PublishedAt: entryTime(source, entry, now),
			Text:        text,
		})
	}
	return items, nil
}

// entryBody prefers the RSS description for news and the Atom content for
// reddit posts.
func entryBody(source types.Source, entry *gofeed.Item) string {
	if source == types.SourceReddit {
		if entry.Content != "" {
			return entry.Content
		}
		return entry.Description
	}
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}

// entryTime reads pubDate for news and <updated> for reddit. Missing or
// unparseable dates become now.
func entryTime(source types.Source, entry *gofeed.Item, now time.Time) time.Time {
	candidates := []*time.Time{entry.PublishedParsed, entry.UpdatedParsed}
	if source == types.SourceReddit {
		candidates = []*time.Time{entry.UpdatedParsed, entry.PublishedParsed}
	}
	for _, t := range candidates {
		if t != nil && !t.IsZero() {
			return t.UTC()
		}
	}
	return now.UTC()
}

// HTMLToText strips markup and returns whitespace-collapsed text. Script and
// style contents are dropped; text nodes are joined with spaces.
func HTMLToText(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	if !strings.ContainsAny(markup, "<&") {
		return enrich.NormalizeWhitespace(markup)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return enrich.NormalizeWhitespace(markup)
	}

	var parts []string
	collectText(doc.Selection, &parts)
	return enrich.NormalizeWhitespace(strings.Join(parts, " "))
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		switch goquery.NodeName(node) {
		case "#text":
			*parts = append(*parts, node.Text())
		case "#comment", "script", "style":
		default:
			collectText(node, parts)
		}
	})
}

// StableID derives a short deterministic id ("news-1a2b3c4d") so the same
// entry keeps its id across refreshes.
func StableID(prefix, key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return fmt.Sprintf("%s-%08x", prefix, h.Sum32())
}
