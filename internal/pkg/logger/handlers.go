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

// ContextHandler enriches records with attributes pulled from the
// context (request id, job id, user id, command).
type ContextHandler struct {
	handler slog.Handler
	keys    []ContextKey
}

// NewContextHandler wraps a handler with context attribute extraction.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		handler: handler,
		keys:    defaultContextKeys(),
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := extractContextAttrs(ctx, h.keys); len(attrs) > 0 {
		r.AddAttrs(attrs...)
	}
	return h.handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs), keys: h.keys}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name), keys: h.keys}
}

// SanitizationHandler redacts credentials and personal data from log
// attributes before they reach the underlying handler.
type SanitizationHandler struct {
	handler       slog.Handler
	sensitiveKeys map[string]bool
	patterns      []*regexp.Regexp
}

// NewSanitizationHandler wraps a handler with attribute redaction.
func NewSanitizationHandler(handler slog.Handler) *SanitizationHandler {
	return &SanitizationHandler{
		handler: handler,
		sensitiveKeys: map[string]bool{
			"password":       true,
			"token":          true,
			"access_token":   true,
			"refresh_token":  true,
			"secret":         true,
			"api_key":        true,
			"authorization":  true,
			"credit_card":    true,
			"ssn":            true,
			"social_security": true,
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(password|token|secret)=\S+`),
			regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`),
			regexp.MustCompile(`Bearer\s+\S+`),
		},
	}
}

func (h *SanitizationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SanitizationHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, h.sanitizeString(r.Message), r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

func (h *SanitizationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		sanitized = append(sanitized, h.sanitizeAttr(a))
	}
	return &SanitizationHandler{
		handler:       h.handler.WithAttrs(sanitized),
		sensitiveKeys: h.sensitiveKeys,
		patterns:      h.patterns,
	}
}

func (h *SanitizationHandler) WithGroup(name string) slog.Handler {
	return &SanitizationHandler{
		handler:       h.handler.WithGroup(name),
		sensitiveKeys: h.sensitiveKeys,
		patterns:      h.patterns,
	}
}

func (h *SanitizationHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	if h.sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, "***REDACTED***")
	}
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		sanitized := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			sanitized = append(sanitized, h.sanitizeAttr(ga))
		}
		args := make([]any, 0, len(sanitized))
		for _, sa := range sanitized {
			args = append(args, sa)
		}
		return slog.Group(a.Key, args...)
	}
	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, h.sanitizeString(a.Value.String()))
	}
	return a
}

func (h *SanitizationHandler) sanitizeString(s string) string {
	for _, p := range h.patterns {
		s = p.ReplaceAllString(s, "***REDACTED***")
	}
	return s
}

// PrettyTextHandler writes colored human-readable output for
// development.
type PrettyTextHandler struct {
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
	w      io.Writer
}

// NewPrettyTextHandler creates a handler that writes colored text
// output to w.
func NewPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyTextHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyTextHandler{
		opts: opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *PrettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString("\033[90m")
	sb.WriteString(r.Time.Format("15:04:05.000"))
	sb.WriteString("\033[0m ")

	sb.WriteString(levelColor(r.Level))
	sb.WriteString(fmt.Sprintf("%-5s", r.Level.String()))
	sb.WriteString("\033[0m ")

	sb.WriteString(r.Message)

	writeAttr := func(a slog.Attr) {
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		sb.WriteString(" \033[36m")
		sb.WriteString(key)
		sb.WriteString("\033[0m=")
		sb.WriteString(a.Value.String())
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(a)
		return true
	})
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *PrettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)
	return &PrettyTextHandler{
		opts:   h.opts,
		attrs:  combined,
		groups: h.groups,
		mu:     h.mu,
		w:      h.w,
	}
}

func (h *PrettyTextHandler) WithGroup(name string) slog.Handler {
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &PrettyTextHandler{
		opts:   h.opts,
		attrs:  h.attrs,
		groups: groups,
		mu:     h.mu,
		w:      h.w,
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\033[31m"
	case level >= slog.LevelWarn:
		return "\033[33m"
	case level >= slog.LevelInfo:
		return "\033[32m"
	default:
		return "\033[35m"
	}
}
