package hlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const traceTimeLayout = "15:04:05.000"

// traceHandler renders every record as "[HH:MM:SS.mmm] message", local time.
type traceHandler struct {
	*lockedWriter
	attrs []slog.Attr
}

func (t traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func FormatTraceRecord(attrs []slog.Attr, record slog.Record) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(record.Time.Local().Format(traceTimeLayout))
	sb.WriteString("] ")
	sb.WriteString(record.Message)
	writeAttrs(&sb, attrs, record)

	return sb.String()
}

func (t traceHandler) Handle(ctx context.Context, record slog.Record) error {
	return t.writeLine(FormatTraceRecord(t.attrs, record))
}

func (t traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	t.attrs = append(t.attrs[:len(t.attrs):len(t.attrs)], attrs...)

	return t
}

func (t traceHandler) WithGroup(name string) slog.Handler {
	return t
}

// NewTraceLogger returns the diagnostic trace logger. When enabled is false the
// returned logger is disabled at every level, so callers checking Enabled skip
// formatting entirely.
func NewTraceLogger(w io.Writer, enabled bool) Logger {
	if !enabled {
		return nop
	}

	return NewLogger(traceHandler{lockedWriter: &lockedWriter{w: w}})
}
