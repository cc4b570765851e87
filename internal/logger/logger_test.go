package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() {
		SetLogger(zap.NewNop())
		SetDetailed(false)
	})
	return logs
}

func TestInfoWritesFields(t *testing.T) {
	logs := observe(t)

	Info(context.Background(), "feed fetched", "source", "news", "items", 12)

	entries := logs.FilterMessage("feed fetched").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "news", fields["source"])
	assert.Equal(t, int64(12), fields["items"])
}

func TestDebugRequiresDetailedLogging(t *testing.T) {
	logs := observe(t)

	Debug(context.Background(), "hidden")
	assert.Equal(t, 0, logs.Len())

	SetDetailed(true)
	Debug(context.Background(), "shown")
	assert.Equal(t, 1, logs.FilterMessage("shown").Len())
}

func TestErrorWithErr(t *testing.T) {
	logs := observe(t)

	ErrorWithErr(context.Background(), "fetch failed", errors.New("timeout"), "source", "reddit")

	entries := logs.FilterMessage("fetch failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "timeout", entries[0].ContextMap()["error"])
	assert.Equal(t, "reddit", entries[0].ContextMap()["source"])
}

func TestCacheEvent(t *testing.T) {
	logs := observe(t)

	CacheEvent(context.Background(), "fallback", "items", 6)

	entries := logs.FilterMessage("Feed cache fallback").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "CACHE", fields["type"])
	assert.Equal(t, "fallback", fields["event"])
	assert.Equal(t, int64(6), fields["items"])
}

func TestOperationTimer(t *testing.T) {
	logs := observe(t)

	timer := StartOperation(context.Background(), "enrich.All", "items", 3)
	require.NotNil(t, timer.GetContext())
	assert.GreaterOrEqual(t, int64(timer.End("enriched", 3)), int64(0))
	assert.Equal(t, 0, logs.Len(), "durations are debug-level")

	timer = StartOperation(context.Background(), "news.Refresh")
	timer.EndWithError(errors.New("boom"))
	entries := logs.FilterMessage("Operation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "news.Refresh", entries[0].ContextMap()["operation"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLogLevel("Error"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("verbose"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_DETAILED", "true")
	t.Setenv("LOG_TRACING_ENABLED", "false")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, LogConfig{Level: "DEBUG", Format: "text", DetailedLogging: true, TracingEnabled: false}, cfg)
}
