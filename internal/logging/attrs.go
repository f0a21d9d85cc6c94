package logging

import (
	"context"
	"log/slog"
	"time"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Strings carries a list such as playlist names; the console handler joins it.
func Strings(key string, values []string) Attr {
	cp := make([]string, len(values))
	copy(cp, values)
	return slog.Any(key, cp)
}

// Playlist tags a record with the playlist file name it refers to.
func Playlist(name string) Attr { return slog.String(FieldPlaylist, name) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attributes to the variadic form slog.Logger methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

func hasAttrKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact. Missing fields get defaults so every warning names a cause and a
// next step.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if !hasAttrKey(attrs, FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !hasAttrKey(attrs, FieldErrorHint) {
		attrs = append(attrs, String(FieldErrorHint, "check logs for details"))
	}
	if !hasAttrKey(attrs, FieldImpact) {
		attrs = append(attrs, String(FieldImpact, "operation completed with warnings"))
	}
	logger.Warn(msg, Args(attrs...)...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }

// Decision is one heuristic outcome. Every detection decision is logged
// through it so records share the decision_* keys.
type Decision struct {
	Type     string
	Result   string
	Reason   string
	Options  string
	Selected string
}

// Args renders the decision followed by extra attributes. Empty optional
// fields are left out.
func (d Decision) Args(extra ...Attr) []any {
	attrs := make([]Attr, 0, 5+len(extra))
	attrs = append(attrs,
		String(FieldDecisionType, d.Type),
		String("decision_result", d.Result),
		String("decision_reason", d.Reason),
	)
	if d.Options != "" {
		attrs = append(attrs, String("decision_options", d.Options))
	}
	if d.Selected != "" {
		attrs = append(attrs, String("decision_selected", d.Selected))
	}
	return Args(append(attrs, extra...)...)
}
