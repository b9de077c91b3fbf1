package hlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var levelColors = map[slog.Level]lipgloss.TerminalColor{
	slog.LevelDebug: lipgloss.Color("#29C6E8"),
	slog.LevelInfo:  lipgloss.Color("#2C75FE"),
	slog.LevelWarn:  lipgloss.Color("#E7C229"),
	slog.LevelError: lipgloss.Color("#FF2A25"),
}

type textHandler struct {
	*lockedWriter
	attrs   []slog.Attr
	leveler slog.Leveler

	renderer Renderer
}

type lockedWriter struct {
	m sync.Mutex
	w io.Writer
}

func (w *lockedWriter) writeLine(s string) error {
	w.m.Lock()
	defer w.m.Unlock()

	_, err := io.WriteString(w.w, s)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w.w, "\n")

	return err
}

func (t textHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= t.leveler.Level()
}

func writeAttrs(sb *strings.Builder, attrs []slog.Attr, record slog.Record) {
	renderAttr := func(attr slog.Attr) bool {
		sb.WriteString(" ")
		sb.WriteString(attr.Key)
		sb.WriteString("=")
		sb.WriteString(attr.Value.String())

		return true
	}

	for _, attr := range attrs {
		renderAttr(attr)
	}
	record.Attrs(renderAttr)
}

func FormatRecord(r Renderer, attrs []slog.Attr, record slog.Record) string {
	var sb strings.Builder
	sb.WriteString(r.lvlStyles[record.Level].Render(record.Level.String()))
	sb.WriteString(" ")
	sb.WriteString(record.Message)
	writeAttrs(&sb, attrs, record)

	return sb.String()
}

func (t textHandler) Handle(ctx context.Context, record slog.Record) error {
	return t.writeLine(FormatRecord(t.renderer, t.attrs, record))
}

func (t textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	t.attrs = append(t.attrs[:len(t.attrs):len(t.attrs)], attrs...)

	return t
}

func (t textHandler) WithGroup(name string) slog.Handler {
	return t
}

type Renderer struct {
	lvlStyles map[slog.Level]lipgloss.Style
}

func NewRenderer(w io.Writer) Renderer {
	r := lipgloss.NewRenderer(w)

	lvlStyles := map[slog.Level]lipgloss.Style{}
	for lvl, color := range levelColors {
		lvlStyles[lvl] = r.NewStyle().Bold(true).Foreground(color)
	}

	return Renderer{lvlStyles: lvlStyles}
}

func NewTextLogger(w io.Writer, leveler slog.Leveler) Logger {
	return NewLogger(textHandler{
		lockedWriter: &lockedWriter{w: w},
		leveler:      leveler,
		renderer:     NewRenderer(w),
	})
}
