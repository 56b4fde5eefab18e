// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextKey identifies request-scoped values that should appear on
// every log line emitted while handling that request.
type ContextKey string

const (
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyTraceID   ContextKey = "trace_id"
	ContextKeyClientIP  ContextKey = "client_ip"
	ContextKeyUserAgent ContextKey = "user_agent"
	ContextKeyMethod    ContextKey = "method"
	ContextKeyPath      ContextKey = "path"
)

// contextKeys is the extraction order for context enrichment.
var contextKeys = []ContextKey{
	ContextKeyRequestID,
	ContextKeyTraceID,
	ContextKeyClientIP,
	ContextKeyUserAgent,
	ContextKeyMethod,
	ContextKeyPath,
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level          string
	Format         string
	AddSource      bool
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// Logger wraps slog.Logger with context extraction.
type Logger struct {
	*slog.Logger
	config *LogConfig
}

// SetupLogger initializes the logger and installs it as the slog
// default.
func SetupLogger(level, format string) *Logger {
	l := NewLogger(&LogConfig{
		Level:          level,
		Format:         format,
		AddSource:      level == "debug",
		ServiceName:    os.Getenv("SERVICE_NAME"),
		ServiceVersion: os.Getenv("SERVICE_VERSION"),
		Environment:    os.Getenv("APP_ENV"),
	})
	slog.SetDefault(l.Logger)
	return l
}

// NewLogger builds the handler chain: formatting at the bottom, then
// context enrichment, then sanitization on top.
func NewLogger(config *LogConfig) *Logger {
	if config == nil {
		config = &LogConfig{Level: "info", Format: "json"}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			return rewriteAttr(config, a)
		},
	}

	var handler slog.Handler
	if config.Format == "text" {
		handler = NewPrettyTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	handler = NewSanitizationHandler(NewContextHandler(handler))

	if attrs := serviceAttrs(config); len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return &Logger{Logger: slog.New(handler), config: config}
}

// WithContext returns a logger carrying whatever request-scoped values
// the context holds.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	if attrs := extractContextAttrs(ctx); len(attrs) > 0 {
		return l.Logger.With(attrs...)
	}
	return l.Logger
}

func serviceAttrs(config *LogConfig) []slog.Attr {
	var attrs []slog.Attr
	if config.ServiceName != "" {
		attrs = append(attrs, slog.String("service", config.ServiceName))
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", config.ServiceVersion))
	}
	if config.Environment != "" {
		attrs = append(attrs, slog.String("env", config.Environment))
	}
	return attrs
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func extractContextAttrs(ctx context.Context) []any {
	var attrs []any
	for _, key := range contextKeys {
		val := ctx.Value(key)
		if val == nil {
			continue
		}
		if attr, ok := attrFromValue(string(key), val); ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}

func attrFromValue(key string, val any) (slog.Attr, bool) {
	switch v := val.(type) {
	case string:
		if v == "" {
			return slog.Attr{}, false
		}
		return slog.String(key, v), true
	case int:
		return slog.Int(key, v), true
	case int64:
		return slog.Int64(key, v), true
	case bool:
		return slog.Bool(key, v), true
	case time.Duration:
		return slog.Duration(key, v), true
	case time.Time:
		return slog.Time(key, v), true
	case uuid.UUID:
		return slog.String(key, v.String()), true
	default:
		return slog.Any(key, v), true
	}
}

// rewriteAttr normalizes timestamps, renames the level key for log
// aggregators, and converts *_ms duration attrs to numeric millis.
func rewriteAttr(config *LogConfig, a slog.Attr) slog.Attr {
	switch {
	case a.Key == slog.TimeKey:
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	case a.Key == slog.LevelKey && config.Format == "json":
		a.Key = "severity"
	case strings.HasSuffix(a.Key, "_ms"):
		if d, ok := a.Value.Any().(time.Duration); ok {
			a.Value = slog.Float64Value(float64(d.Milliseconds()))
		}
	}
	return a
}
