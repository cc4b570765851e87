package logger

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"stock-sentiment/internal/trace"
)

var (
	mu sync.RWMutex
	// Global logger instance. A no-op logger until Init is called so that
	// packages and tests can log without setup.
	globalLogger = zap.NewNop().Sugar()
	// Whether detailed logging is enabled
	detailedLogging bool
	// Whether trace/span ids are added to log lines
	traceFields = true
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level           string // DEBUG, INFO, WARN, ERROR
	Format          string // json or text
	DetailedLogging bool   // Enable debug logs and caller info
	TracingEnabled  bool   // Attach trace/span ids
}

// Init initializes the global logger based on environment variables
func Init() error {
	return InitWithConfig(LoadConfigFromEnv())
}

// LoadConfigFromEnv loads logging configuration from environment variables
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:           getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format:          getEnvOrDefault("LOG_FORMAT", "json"),
		DetailedLogging: getEnvOrDefault("LOG_DETAILED", "false") == "true",
		TracingEnabled:  getEnvOrDefault("LOG_TRACING_ENABLED", "true") == "true",
	}
}

// InitWithConfig builds a zap logger writing to stdout.
func InitWithConfig(config LogConfig) error {
	var zc zap.Config
	if strings.EqualFold(config.Format, "json") {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	level := parseLogLevel(config.Level)
	if config.DetailedLogging && level > zapcore.DebugLevel {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !config.DetailedLogging
	zc.DisableStacktrace = true
	zc.Sampling = nil
	zc.OutputPaths = []string{"stdout"}
	zc.ErrorOutputPaths = []string{"stderr"}

	// skip write, logWithTrace and the exported helper
	l, err := zc.Build(zap.AddCallerSkip(3))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	SetLogger(l)
	mu.Lock()
	detailedLogging = config.DetailedLogging
	traceFields = config.TracingEnabled
	mu.Unlock()
	return nil
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = l.Sugar()
}

// SetDetailed toggles debug logging.
func SetDetailed(on bool) {
	mu.Lock()
	defer mu.Unlock()
	detailedLogging = on
}

// Sync flushes buffered log entries.
func Sync() error {
	return current().Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// parseLogLevel converts string log level to a zap level
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Debug logs a debug message
func Debug(ctx context.Context, msg string, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	logWithTrace(ctx, zapcore.DebugLevel, msg, args...)
}

// Info logs an info message
func Info(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, zapcore.InfoLevel, msg, args...)
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, zapcore.WarnLevel, msg, args...)
}

// Error logs an error message
func Error(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, zapcore.ErrorLevel, msg, args...)
}

// ErrorWithErr logs an error message with an error object
func ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	allArgs := append([]any{"error", err}, args...)
	logWithTrace(ctx, zapcore.ErrorLevel, msg, allArgs...)
}

// DebugSkip logs a debug message attributed to a caller skip frames further
// up the stack. Used by the *obs decorators.
func DebugSkip(ctx context.Context, skip int, msg string, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	logSkip(ctx, skip, zapcore.DebugLevel, msg, args...)
}

// InfoSkip is Info with an extra caller skip.
func InfoSkip(ctx context.Context, skip int, msg string, args ...any) {
	logSkip(ctx, skip, zapcore.InfoLevel, msg, args...)
}

// WarnSkip is Warn with an extra caller skip.
func WarnSkip(ctx context.Context, skip int, msg string, args ...any) {
	logSkip(ctx, skip, zapcore.WarnLevel, msg, args...)
}

// ErrorWithErrSkip is ErrorWithErr with an extra caller skip.
func ErrorWithErrSkip(ctx context.Context, skip int, msg string, err error, args ...any) {
	if err != nil {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	logSkip(ctx, skip, zapcore.ErrorLevel, msg, append([]any{"error", err}, args...)...)
}

func logSkip(ctx context.Context, skip int, level zapcore.Level, msg string, args ...any) {
	l := current().WithOptions(zap.AddCallerSkip(skip))
	write(ctx, l, level, msg, args...)
}

// logWithTrace logs a message with trace ID and span ID if available
func logWithTrace(ctx context.Context, level zapcore.Level, msg string, args ...any) {
	write(ctx, current(), level, msg, args...)
}

func write(ctx context.Context, l *zap.SugaredLogger, level zapcore.Level, msg string, args ...any) {
	mu.RLock()
	withTrace := traceFields
	mu.RUnlock()
	if ctx != nil && withTrace {
		if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
			args = append([]any{"trace_id", traceID, "span_id", spanID}, args...)
		}
	}

	switch level {
	case zapcore.DebugLevel:
		l.Debugw(msg, args...)
	case zapcore.WarnLevel:
		l.Warnw(msg, args...)
	case zapcore.ErrorLevel:
		l.Errorw(msg, args...)
	default:
		l.Infow(msg, args...)
	}
}

// OperationTimer helps measure operation duration with OpenTelemetry spans
type OperationTimer struct {
	ctx       context.Context
	span      oteltrace.Span
	operation string
	start     time.Time
	fields    []any
}

// StartOperation starts timing an operation with an OpenTelemetry span
func StartOperation(ctx context.Context, operation string, fields ...any) *OperationTimer {
	ctx, span := trace.StartSpan(ctx, operation)
	if trace.Enabled() {
		span.SetAttributes(attributes(fields)...)
	}

	Debug(ctx, "Operation started", append([]any{"operation", operation}, fields...)...)

	return &OperationTimer{
		ctx:       ctx,
		span:      span,
		operation: operation,
		start:     time.Now(),
		fields:    fields,
	}
}

// End completes the operation timer and logs the duration
func (ot *OperationTimer) End(additionalFields ...any) time.Duration {
	duration := time.Since(ot.start)

	if trace.Enabled() {
		ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		ot.span.SetAttributes(attributes(additionalFields)...)
		ot.span.SetStatus(codes.Ok, "completed")
		ot.span.End()
	}

	fields := append([]any{"operation", ot.operation}, ot.fields...)
	fields = append(fields, "duration_ms", duration.Milliseconds())
	fields = append(fields, additionalFields...)
	Debug(ot.ctx, "Operation completed", fields...)
	return duration
}

// EndWithError completes the operation timer with an error
func (ot *OperationTimer) EndWithError(err error, additionalFields ...any) time.Duration {
	duration := time.Since(ot.start)

	if trace.Enabled() {
		ot.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		ot.span.RecordError(err)
		ot.span.SetStatus(codes.Error, err.Error())
		ot.span.End()
	}

	fields := append([]any{"operation", ot.operation}, ot.fields...)
	fields = append(fields, "duration_ms", duration.Milliseconds(), "error", err)
	fields = append(fields, additionalFields...)
	Error(ot.ctx, "Operation failed", fields...)
	return duration
}

// GetContext returns the context with the span
func (ot *OperationTimer) GetContext() context.Context {
	return ot.ctx
}

// CacheEvent logs a feed cache lifecycle event (hit, refresh, fallback,
// throttled) and records it on the active span.
func CacheEvent(ctx context.Context, event string, fields ...any) {
	span := oteltrace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		attrs := append([]attribute.KeyValue{attribute.String("event", event)}, attributes(fields)...)
		span.AddEvent("cache_"+event, oteltrace.WithAttributes(attrs...))
	}

	allFields := append([]any{"type", "CACHE", "event", event}, fields...)
	logWithTrace(ctx, zapcore.InfoLevel, "Feed cache "+event, allFields...)
}

// IsDebugEnabled returns whether debug logging is enabled
func IsDebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return detailedLogging
}

// attributes converts key/value pairs into span attributes, skipping keys
// that are not strings and values of unsupported types.
func attributes(fields []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		case time.Duration:
			attrs = append(attrs, attribute.Int64(key+"_ms", v.Milliseconds()))
		case fmt.Stringer:
			attrs = append(attrs, attribute.String(key, v.String()))
		}
	}
	return attrs
}
