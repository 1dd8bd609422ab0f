package ambrelog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Level mirrors slog.Level's four standard severities as the small closed set a
// Formatter renders, independent of slog's own Record machinery. Formatters
// work with this type (and Entry, below) rather than slog.Record directly
// so they stay usable outside of a slog.Handler, e.g. in tests.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the uppercase name of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return DEBUG
	case l < slog.LevelWarn:
		return INFO
	case l < slog.LevelError:
		return WARN
	default:
		return ERROR
	}
}

// Entry holds all data for a single log event.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Fields    map[string]any
}

// Formatter renders an Entry into a printable line.
type Formatter interface {
	Format(entry Entry) string
}

// renderPrefix writes the common "[timestamp] LEVEL " header shared by
// TextFormatter and ColorFormatter, optionally wrapping the level name in
// an ANSI color.
func renderPrefix(b *strings.Builder, entry Entry, timeFormat, color string) {
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05"
	}
	b.WriteString("[")
	b.WriteString(entry.Timestamp.Format(timeFormat))
	b.WriteString("] ")
	if color != "" {
		b.WriteString(color)
	}
	fmt.Fprintf(b, "%-5s", entry.Level.String())
	if color != "" {
		b.WriteString(ansiReset)
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)
}

func appendFields(b *strings.Builder, fields map[string]any) {
	for _, k := range sortedKeys(fields) {
		fmt.Fprintf(b, " %s=%v", k, fields[k])
	}
}

// TextFormatter renders log entries as plain text in the format:
//
//	[2024-01-01 12:00:00] INFO  message key=value
type TextFormatter struct {
	// TimeFormat controls the timestamp layout. Defaults to
	// "2006-01-02 15:04:05" when empty.
	TimeFormat string
}

func (f *TextFormatter) Format(entry Entry) string {
	var b strings.Builder
	renderPrefix(&b, entry, f.TimeFormat, "")
	appendFields(&b, entry.Fields)
	return b.String()
}

// JSONFormatter renders log entries as a single JSON object per line.
type JSONFormatter struct {
	// TimeFormat controls the timestamp layout. Defaults to time.RFC3339 when
	// empty.
	TimeFormat string
}

func (f *JSONFormatter) Format(entry Entry) string {
	tf := f.TimeFormat
	if tf == "" {
		tf = time.RFC3339
	}

	obj := make(map[string]any, 3+len(entry.Fields))
	obj["time"] = entry.Timestamp.Format(tf)
	obj["level"] = entry.Level.String()
	obj["msg"] = entry.Message
	for k, v := range entry.Fields {
		obj[k] = v
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprintf(`{"time":%q,"level":%q,"msg":%q,"error":"marshal failed"}`,
			entry.Timestamp.Format(tf), entry.Level.String(), entry.Message)
	}
	return string(data)
}

const (
	ansiReset  = "\033[0m"
	ansiGray   = "\033[37m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
)

// ColorFormatter renders log entries as ANSI-colored text, for interactive
// terminals (cmd/ambre's --log-format=color).
type ColorFormatter struct {
	TimeFormat string
}

func colorForLevel(level Level) string {
	switch level {
	case DEBUG:
		return ansiGray
	case INFO:
		return ansiGreen
	case WARN:
		return ansiYellow
	case ERROR:
		return ansiRed
	default:
		return ansiReset
	}
}

func (f *ColorFormatter) Format(entry Entry) string {
	var b strings.Builder
	renderPrefix(&b, entry, f.TimeFormat, colorForLevel(entry.Level))
	appendFields(&b, entry.Fields)
	return b.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatterHandler adapts a Formatter into a slog.Handler, so
// --log-format=text/color can drive slog's own logging calls (Debug/Info/
// Warn/Error) instead of only being reachable through a separate,
// unconnected rendering path. Handler attributes accumulate across
// WithAttrs/WithGroup the way slog's own handlers do; groups are flattened
// into dotted field names since Formatter's Fields is a flat map.
type FormatterHandler struct {
	formatter Formatter
	writer    interface{ Write([]byte) (int, error) }
	level     slog.Leveler
	prefix    string
	attrs     map[string]any
}

// NewFormatterHandler returns a slog.Handler that renders each record
// through formatter and writes the result, newline-terminated, to w.
func NewFormatterHandler(formatter Formatter, w interface{ Write([]byte) (int, error) }, level slog.Leveler) *FormatterHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &FormatterHandler{formatter: formatter, writer: w, level: level, attrs: map[string]any{}}
}

func (h *FormatterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *FormatterHandler) Handle(_ context.Context, record slog.Record) error {
	fields := make(map[string]any, len(h.attrs)+record.NumAttrs())
	for k, v := range h.attrs {
		fields[k] = v
	}
	record.Attrs(func(a slog.Attr) bool {
		fields[h.prefix+a.Key] = a.Value.Any()
		return true
	})
	entry := Entry{
		Timestamp: record.Time,
		Level:     levelFromSlog(record.Level),
		Message:   record.Message,
		Fields:    fields,
	}
	_, err := h.writer.Write([]byte(h.formatter.Format(entry) + "\n"))
	return err
}

func (h *FormatterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make(map[string]any, len(h.attrs)+len(attrs))
	for k, v := range h.attrs {
		merged[k] = v
	}
	for _, a := range attrs {
		merged[h.prefix+a.Key] = a.Value.Any()
	}
	return &FormatterHandler{formatter: h.formatter, writer: h.writer, level: h.level, prefix: h.prefix, attrs: merged}
}

func (h *FormatterHandler) WithGroup(name string) slog.Handler {
	return &FormatterHandler{formatter: h.formatter, writer: h.writer, level: h.level, prefix: h.prefix + name + ".", attrs: h.attrs}
}
