// internal/pkg/logger/handlers.go
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ContextHandler copies the request and job attributes stored with WithValue
// onto each record. Only the *Context logging methods carry them.
type ContextHandler struct {
	handler slog.Handler
}

func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if ctx == nil {
		return h.handler.Handle(ctx, record)
	}
	record = record.Clone()
	for _, key := range contextKeys {
		if attr, ok := contextAttr(ctx, key); ok {
			record.AddAttrs(attr)
		}
	}
	return h.handler.Handle(ctx, record)
}

func contextAttr(ctx context.Context, key ContextKey) (slog.Attr, bool) {
	switch v := ctx.Value(key).(type) {
	case nil:
		return slog.Attr{}, false
	case string:
		return slog.String(string(key), v), v != ""
	case fmt.Stringer:
		return slog.String(string(key), v.String()), true
	default:
		return slog.Any(string(key), v), true
	}
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

const redacted = "***REDACTED***"

var (
	// password=..., token: ... inside free text
	secretPattern = regexp.MustCompile(`(?i)(password|passwd|secret|token|api[-_]?key|access[-_]?key)(\s*[:=]\s*)["']?[^"'\s&]+`)
	// credentials embedded in postgres:// and redis:// URLs
	urlCredentialPattern = regexp.MustCompile(`(://[^:/@\s]+:)[^@\s]+@`)
)

// sensitiveKeys are attribute key fragments whose values are never logged
var sensitiveKeys = []string{"password", "passwd", "secret", "token", "api_key", "access_key"}

// SanitizationHandler masks credentials in messages and attributes,
// including those attached with With.
type SanitizationHandler struct {
	handler slog.Handler
}

func NewSanitizationHandler(handler slog.Handler) *SanitizationHandler {
	return &SanitizationHandler{handler: handler}
}

func (h *SanitizationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SanitizationHandler) Handle(ctx context.Context, record slog.Record) error {
	clean := slog.NewRecord(record.Time, record.Level, sanitizeString(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		clean.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, clean)
}

func (h *SanitizationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = sanitizeAttr(a)
	}
	return &SanitizationHandler{handler: h.handler.WithAttrs(clean)}
}

func (h *SanitizationHandler) WithGroup(name string) slog.Handler {
	return &SanitizationHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return slog.String(a.Key, redacted)
		}
	}

	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(sanitizeString(a.Value.String()))
	case slog.KindGroup:
		group := a.Value.Group()
		clean := make([]slog.Attr, len(group))
		for i, g := range group {
			clean[i] = sanitizeAttr(g)
		}
		a.Value = slog.GroupValue(clean...)
	}
	return a
}

func sanitizeString(s string) string {
	s = secretPattern.ReplaceAllString(s, "${1}${2}"+redacted)
	return urlCredentialPattern.ReplaceAllString(s, "${1}"+redacted+"@")
}
