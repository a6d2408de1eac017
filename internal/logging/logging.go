package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type attrsKey struct{}

// ContextHandler adds attributes carried in a context.Context to every
// record before passing it to the wrapped handler. Context attributes are
// always written at the top level, even inside a group opened with WithGroup.
type ContextHandler struct {
	next slog.Handler

	// root and ops rebuild next with context attributes applied ahead of
	// any group. ops is only used once a group is open.
	root    slog.Handler
	ops     []func(slog.Handler) slog.Handler
	grouped bool
}

// NewContextHandler wraps h
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{next: h, root: h}
}

// Enabled delegates to the wrapped handler
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle appends the context attributes and forwards the record
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	next := h.next
	if attrs, ok := ctx.Value(attrsKey{}).([]slog.Attr); ok && len(attrs) > 0 {
		if h.grouped {
			next = h.root.WithAttrs(attrs)
			for _, op := range h.ops {
				next = op(next)
			}
		} else {
			r.AddAttrs(attrs...)
		}
	}
	if err := next.Handle(ctx, r); err != nil {
		return fmt.Errorf("handling log record: %w", err)
	}
	return nil
}

// WithAttrs returns a ContextHandler around next.WithAttrs
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(func(next slog.Handler) slog.Handler { return next.WithAttrs(attrs) }, false)
}

// WithGroup returns a ContextHandler around next.WithGroup
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(next slog.Handler) slog.Handler { return next.WithGroup(name) }, true)
}

func (h *ContextHandler) with(op func(slog.Handler) slog.Handler, group bool) *ContextHandler {
	ops := make([]func(slog.Handler) slog.Handler, 0, len(h.ops)+1)
	ops = append(ops, h.ops...)
	ops = append(ops, op)
	return &ContextHandler{
		next:    op(h.next),
		root:    h.root,
		ops:     ops,
		grouped: h.grouped || group,
	}
}

// WithAttrs returns a context whose log records carry attrs in addition to
// any attributes already stored on ctx
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	existing, _ := ctx.Value(attrsKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(existing)+len(attrs))
	merged = append(merged, existing...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// New builds a logger writing to w. JSON output is used for the HTTP server,
// text output for local runs.
func New(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewContextHandler(h))
}
