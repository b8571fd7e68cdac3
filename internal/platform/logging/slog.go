package logging

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Slog exposes the logger through the standard structured logging
// interface, so packages built around *slog.Logger share the zap core.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&slogBridge{zap: l.Zap().WithOptions(zap.AddCallerSkip(3))})
}

type slogBridge struct {
	zap    *zap.Logger
	attrs  []zapcore.Field
	groups []string
}

func (h *slogBridge) Enabled(_ context.Context, level slog.Level) bool {
	return h.zap.Core().Enabled(zapLevel(level))
}

func (h *slogBridge) Handle(ctx context.Context, record slog.Record) error {
	fields := make([]zapcore.Field, 0, len(h.attrs)+record.NumAttrs()+2)
	fields = append(fields, h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.field(attr))
		return true
	})
	fields = append(fields, traceFields(ctx)...)

	if ce := h.zap.Check(zapLevel(record.Level), record.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &slogBridge{zap: h.zap, groups: h.groups}
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, next.field(attr))
	}
	return next
}

func (h *slogBridge) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	return &slogBridge{zap: h.zap, attrs: h.attrs, groups: append(groups, name)}
}

func (h *slogBridge) field(attr slog.Attr) zapcore.Field {
	key := attr.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	return zap.Any(key, attr.Value.Resolve().Any())
}

// traceFields correlates log entries with the active span, when one
// exists on the context.
func traceFields(ctx context.Context) []zapcore.Field {
	if ctx == nil {
		return nil
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return nil
	}
	return []zapcore.Field{
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	}
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
