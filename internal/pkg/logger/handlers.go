// internal/pkg/logger/handlers.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// ContextHandler copies request-scoped context values onto each record.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	extra := extractContextAttrs(ctx)
	if len(extra) == 0 {
		return h.inner.Handle(ctx, record)
	}

	enriched := record.Clone()
	for _, raw := range extra {
		if attr, ok := raw.(slog.Attr); ok {
			enriched.AddAttrs(attr)
		}
	}
	return h.inner.Handle(ctx, enriched)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}

const redactedPlaceholder = "***REDACTED***"

// secretKeyFragments flags attr keys whose values must never be logged.
var secretKeyFragments = []string{
	"password", "pwd", "secret", "token", "auth", "api_key",
}

var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|pwd|pass|secret|token|key|auth|api[-_]?key)\s*[:=]\s*["']?([^"'\s]+)`),
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
}

// SanitizationHandler masks credentials and email addresses before a
// record reaches the output handler.
type SanitizationHandler struct {
	inner slog.Handler
}

func NewSanitizationHandler(inner slog.Handler) *SanitizationHandler {
	return &SanitizationHandler{inner: inner}
}

func (h *SanitizationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *SanitizationHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, scrubText(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(scrubAttr(a))
		return true
	})
	return h.inner.Handle(ctx, clean)
}

func (h *SanitizationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	for i := range attrs {
		attrs[i] = scrubAttr(attrs[i])
	}
	return &SanitizationHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *SanitizationHandler) WithGroup(name string) slog.Handler {
	return &SanitizationHandler{inner: h.inner.WithGroup(name)}
}

func scrubAttr(attr slog.Attr) slog.Attr {
	key := strings.ToLower(attr.Key)
	for _, fragment := range secretKeyFragments {
		if strings.Contains(key, fragment) {
			attr.Value = slog.StringValue(redactedPlaceholder)
			return attr
		}
	}
	if s, ok := attr.Value.Any().(string); ok {
		attr.Value = slog.StringValue(scrubText(s))
	}
	return attr
}

func scrubText(s string) string {
	for _, pattern := range secretPatterns {
		s = pattern.ReplaceAllString(s, "$1="+redactedPlaceholder)
	}
	return s
}

// PrettyTextHandler renders colored single-line output for local
// development. JSON stays the format everywhere else.
type PrettyTextHandler struct {
	*slog.TextHandler
	mu sync.Mutex
	w  io.Writer
}

func NewPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyTextHandler {
	return &PrettyTextHandler{
		TextHandler: slog.NewTextHandler(w, opts),
		w:           w,
	}
}

const ansiReset = "\033[0m"

func (h *PrettyTextHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	level := strings.ToUpper(r.Level.String())
	fmt.Fprintf(h.w, "%s%s %-7s%s %s",
		levelColor(r.Level),
		r.Time.Format("2006-01-02 15:04:05.000"),
		level,
		ansiReset,
		r.Message,
	)

	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, " \033[36m%s=%v%s", a.Key, a.Value, ansiReset)
		return true
	})
	fmt.Fprintln(h.w)
	return nil
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\033[31m"
	case level >= slog.LevelWarn:
		return "\033[33m"
	case level >= slog.LevelInfo:
		return "\033[34m"
	default:
		return "\033[37m"
	}
}
