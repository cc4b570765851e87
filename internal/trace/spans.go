package trace

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Span names emitted by the service.
const (
	SpanNewsRefresh   = "news.Refresh"
	SpanCacheRefresh  = "cache.Refresh"
	SpanEnrichAll     = "enrich.All"
	SpanSnapshotBuild = "snapshot.Build"

	fetchSpanPrefix = "news.fetch."
	httpSpanPrefix  = "http."
)

// FetchSpanName names the span around downloading one feed.
func FetchSpanName(source string) string {
	return fetchSpanPrefix + source
}

// HTTPSpanName names the span around one API route.
func HTTPSpanName(route string) string {
	return httpSpanPrefix + route
}

// StartFetchSpan starts a client span for a feed download.
func StartFetchSpan(ctx context.Context, source string) (context.Context, trace.Span) {
	return StartSpan(ctx, FetchSpanName(source),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("feed.source", source)),
	)
}

// StartHTTPSpan starts a server span for r handled by route.
func StartHTTPSpan(r *http.Request, route string) (context.Context, trace.Span) {
	return StartSpan(r.Context(), HTTPSpanName(route),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(r.Method),
			semconv.HTTPRoute(route),
			semconv.URLPath(r.URL.Path),
		),
	)
}

// EndHTTPSpan records the response status and ends span. Server errors mark
// the span failed; client errors do not.
func EndHTTPSpan(span trace.Span, status int) {
	if Enabled() {
		span.SetAttributes(semconv.HTTPResponseStatusCode(status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
	span.End()
}
