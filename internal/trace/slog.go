package trace

import (
	"context"
	"io"
	"log/slog"

	slogmulti "github.com/samber/slog-multi"
)

// SlogTracer turns trace events into slog records and fans them out to
// every configured handler.
type SlogTracer struct {
	logger *slog.Logger
	level  Level
	closer io.Closer
}

// NewSlogTracer builds a tracer over handlers. closer may be nil.
func NewSlogTracer(level Level, closer io.Closer, handlers ...slog.Handler) *SlogTracer {
	return &SlogTracer{
		logger: slog.New(slogmulti.Fanout(handlers...)),
		level:  level,
		closer: closer,
	}
}

func (t *SlogTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Kind, ev.Scope) {
		return
	}

	attrs := make([]slog.Attr, 0, 6+len(ev.Extra))
	attrs = append(attrs,
		slog.Uint64("seq", ev.Seq),
		slog.String("kind", ev.Kind.String()),
		slog.String("scope", ev.Scope.String()),
	)
	if ev.SpanID != 0 {
		attrs = append(attrs, slog.Uint64("span", ev.SpanID))
	}
	if ev.ParentID != 0 {
		attrs = append(attrs, slog.Uint64("parent", ev.ParentID))
	}
	if ev.Detail != "" {
		attrs = append(attrs, slog.String("detail", ev.Detail))
	}
	for k, v := range ev.Extra {
		attrs = append(attrs, slog.String(k, v))
	}

	t.logger.LogAttrs(context.Background(), slogLevel(ev), ev.Name, attrs...)
}

func slogLevel(ev *Event) slog.Level {
	switch {
	case ev.Kind == KindError:
		return slog.LevelError
	case ev.Scope >= ScopeFile:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func (t *SlogTracer) Flush() error { return nil }

func (t *SlogTracer) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

func (t *SlogTracer) Level() Level { return t.level }

func (t *SlogTracer) Enabled() bool { return t.level > LevelOff }
