// Package trace owns the process tracer provider. Spans go to stderr through
// the stdout exporter; stdout stays reserved for JSON output of the CLI.
package trace

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "stock-sentiment"

var (
	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
)

// Init installs a stdout tracer provider unless LOG_TRACING_ENABLED is "false".
func Init(version string) error {
	return InitWithWriter(version, os.Stderr)
}

// InitWithWriter is Init with spans written to w.
func InitWithWriter(version string, w io.Writer) error {
	if os.Getenv("LOG_TRACING_ENABLED") == "false" {
		return nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return err
	}
	return install(version, sdktrace.WithBatcher(exporter))
}

// install builds the provider around the given span processors and makes it
// the global one.
func install(version string, opts ...sdktrace.TracerProviderOption) error {
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return err
	}

	tp := sdktrace.NewTracerProvider(append(opts, sdktrace.WithResource(res))...)
	otel.SetTracerProvider(tp)

	mu.Lock()
	provider = tp
	tracer = tp.Tracer(ServiceName)
	mu.Unlock()
	return nil
}

// Shutdown flushes pending spans and disables tracing.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	tp := provider
	provider, tracer = nil, nil
	mu.Unlock()

	if tp == nil {
		return nil
	}
	return tp.Shutdown(ctx)
}

// Enabled reports whether spans are being recorded.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tracer != nil
}

// StartSpan starts a span, or returns the span already in ctx when tracing is off.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	mu.RLock()
	t := tracer
	mu.RUnlock()

	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Start(ctx, spanName, opts...)
}

// GetTraceFields returns the ids of the span in ctx for log correlation.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !Enabled() {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
