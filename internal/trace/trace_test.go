package trace

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func record(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	require.NoError(t, install("test", sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { _ = Shutdown(context.Background()) })
	return rec
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestDisabledByDefault(t *testing.T) {
	assert.False(t, Enabled())

	ctx, span := StartSpan(context.Background(), SpanNewsRefresh)
	assert.False(t, span.SpanContext().IsValid())
	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestInitRespectsEnv(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "false")
	require.NoError(t, InitWithWriter("1.0.0", &bytes.Buffer{}))
	assert.False(t, Enabled())
}

func TestInitWritesSpansOnShutdown(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "")
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter("1.0.0", &buf))
	assert.True(t, Enabled())

	_, span := StartSpan(context.Background(), SpanSnapshotBuild)
	span.End()
	require.NoError(t, Shutdown(context.Background()))

	assert.Contains(t, buf.String(), SpanSnapshotBuild)
	assert.Contains(t, buf.String(), ServiceName)
	assert.False(t, Enabled())
}

func TestGetTraceFields(t *testing.T) {
	record(t)

	ctx, span := StartSpan(context.Background(), SpanEnrichAll)
	defer span.End()

	traceID, spanID, ok := GetTraceFields(ctx)
	require.True(t, ok)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
	assert.Equal(t, span.SpanContext().SpanID().String(), spanID)
}

func TestFetchSpan(t *testing.T) {
	rec := record(t)

	_, span := StartFetchSpan(context.Background(), "reddit")
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "news.fetch.reddit", ended[0].Name())
	assert.Equal(t, trace.SpanKindClient, ended[0].SpanKind())
	assert.Equal(t, "reddit", attrs(ended[0])["feed.source"].AsString())
}

func TestHTTPSpan(t *testing.T) {
	rec := record(t)

	req := httptest.NewRequest(http.MethodGet, "/api/ticker/NVDA", nil)
	_, span := StartHTTPSpan(req, "ticker")
	EndHTTPSpan(span, http.StatusOK)

	_, span = StartHTTPSpan(req, "ticker")
	EndHTTPSpan(span, http.StatusBadGateway)

	ended := rec.Ended()
	require.Len(t, ended, 2)

	ok := ended[0]
	assert.Equal(t, "http.ticker", ok.Name())
	assert.Equal(t, trace.SpanKindServer, ok.SpanKind())
	a := attrs(ok)
	assert.Equal(t, "GET", a["http.request.method"].AsString())
	assert.Equal(t, "ticker", a["http.route"].AsString())
	assert.Equal(t, "/api/ticker/NVDA", a["url.path"].AsString())
	assert.Equal(t, int64(200), a["http.response.status_code"].AsInt64())
	assert.Equal(t, codes.Unset, ok.Status().Code)

	failed := ended[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	assert.Equal(t, "Bad Gateway", failed.Status().Description)
}

func TestSpanNames(t *testing.T) {
	assert.Equal(t, "news.fetch.news", FetchSpanName("news"))
	assert.Equal(t, "http.health", HTTPSpanName("health"))
}
