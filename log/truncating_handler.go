package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the default cap on logged string values, in runes.
const DefaultMaxValueLen = 256

// truncationMark is appended to values that were cut.
const truncationMark = "...(truncated)"

// TruncatingHandler wraps an slog.Handler to cap string attribute values.
// It intercepts log records and shortens oversized values before passing
// them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers keep their own handler configuration (level, output, format)
type TruncatingHandler struct {
	// handler is the underlying slog handler that receives capped records.
	handler slog.Handler

	// maxValueLen is the rune cap applied to string attribute values.
	maxValueLen int
}

// NewTruncatingHandler creates a TruncatingHandler wrapping the given
// handler. String attribute values longer than maxValueLen runes are cut
// and marked. If handler is nil, slog.Default().Handler() is used; if
// maxValueLen is not positive, DefaultMaxValueLen applies.
func NewTruncatingHandler(handler slog.Handler, maxValueLen int) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxValueLen <= 0 {
		maxValueLen = DefaultMaxValueLen
	}
	return &TruncatingHandler{handler: handler, maxValueLen: maxValueLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attributes and passes it to the underlying handler.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})

	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are capped before being added.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cappedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cappedAttrs[i] = h.truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(cappedAttrs), maxValueLen: h.maxValueLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name), maxValueLen: h.maxValueLen}
}

// truncateAttr caps a single attribute, recursively handling groups.
func (h *TruncatingHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cappedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			cappedAttrs[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cappedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		value := a.Value.String()
		if utf8.RuneCountInString(value) > h.maxValueLen {
			runes := []rune(value)
			return slog.String(a.Key, fmt.Sprintf("%s%s (%d runes)",
				string(runes[:h.maxValueLen]), truncationMark, len(runes)))
		}
	}

	return a
}

// NewLogger creates a slog.Logger with value truncation over a text handler.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTruncatingHandler(textHandler, DefaultMaxValueLen))
}

// NewJSONLogger creates a slog.Logger with value truncation that outputs
// JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewTruncatingHandler(jsonHandler, DefaultMaxValueLen))
}
