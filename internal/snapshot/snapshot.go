// Package snapshot renders the whole dashboard into one static JSON
// document that a frontend can serve without the API.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stock-sentiment/internal/analytics"
	"stock-sentiment/internal/dashboard"
	"stock-sentiment/internal/interfaces"
	"stock-sentiment/internal/logger"
	"stock-sentiment/internal/trace"
	"stock-sentiment/internal/types"
)

// DefaultTickerIndex is how many ranked tickers the document carries.
const DefaultTickerIndex = 250

type Meta struct {
	Source    types.Origin `json:"source"`
	ItemCount int          `json:"itemCount"`
}

// Document is the static snapshot file.
type Document struct {
	GeneratedAt string                    `json:"generatedAt"`
	Dashboard   dashboard.Payload         `json:"dashboard"`
	Feed        []dashboard.FeedItem      `json:"feed"`
	TickerIndex []analytics.TickerInsight `json:"tickerIndex"`
	Meta        Meta                      `json:"meta"`
}

type options struct {
	tickerIndex int
}

type Option func(*options)

// WithTickerIndex overrides DefaultTickerIndex.
func WithTickerIndex(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tickerIndex = n
		}
	}
}

// Build forces a refresh and renders the collection. The embedded dashboard
// is always marked cached since the file is served long after it is built.
func Build(ctx context.Context, refresher interfaces.Refresher, opts ...Option) Document {
	o := options{tickerIndex: DefaultTickerIndex}
	for _, opt := range opts {
		opt(&o)
	}

	timer := logger.StartOperation(ctx, trace.SpanSnapshotBuild)
	snap := refresher.Refresh(timer.GetContext(), true)

	doc := Document{
		GeneratedAt: types.ISOTime(snap.GeneratedAt),
		Dashboard:   dashboard.Build(snap.Items, snap.GeneratedAt, true),
		Feed:        dashboard.SerializeAll(snap.Items, 0),
		TickerIndex: analytics.TickerInsights(snap.Items, o.tickerIndex),
		Meta: Meta{
			Source:    snap.Origin,
			ItemCount: len(snap.Items),
		},
	}

	timer.End("origin", string(snap.Origin), "items", len(snap.Items))
	return doc
}

// Write stores doc at path as indented JSON, creating parent directories.
// The file is replaced atomically so readers never see a partial document.
func Write(path string, doc Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// BuildAndWrite runs one snapshot cycle.
func BuildAndWrite(ctx context.Context, refresher interfaces.Refresher, path string, opts ...Option) (Document, error) {
	doc := Build(ctx, refresher, opts...)
	if err := Write(path, doc); err != nil {
		logger.ErrorWithErr(ctx, "Failed to write snapshot", err, "path", path)
		return doc, err
	}
	logger.Info(ctx, "Snapshot written", "path", path, "items", doc.Meta.ItemCount, "source", string(doc.Meta.Source))
	return doc, nil
}
