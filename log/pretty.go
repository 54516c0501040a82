package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// field is a flattened attribute whose key includes its group names.
type field struct {
	key   string
	value slog.Value
}

// prettyHandler writes colorized records, either as space-separated
// key=value text or as a multi-line JSON-like object.
type prettyHandler struct {
	opts   *slog.HandlerOptions
	format Format
	mu     *sync.Mutex
	w      io.Writer
	prefix string
	fields []field
}

func newPrettyHandler(w io.Writer, format Format, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: opts, format: format, mu: &sync.Mutex{}, w: w}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.fields = flatten(h.fields[:len(h.fields):len(h.fields)], h.prefix, attrs)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.fields)+r.NumAttrs())

	builtin := func(a slog.Attr) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			fields = append(fields, field{a.Key, a.Value.Resolve()})
		}
	}

	if !r.Time.IsZero() {
		builtin(slog.Time(slog.TimeKey, r.Time))
	}

	builtin(slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			builtin(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	builtin(slog.String(slog.MessageKey, r.Message))

	fields = append(fields, h.fields...)

	var attrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)

		return true
	})

	fields = flatten(fields, h.prefix, attrs)

	var buf bytes.Buffer

	switch h.format {
	case FormatJSON:
		h.writeJSON(&buf, r.Level, fields)
	default:
		h.writeText(&buf, r.Level, fields)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// flatten appends attrs to fields, expanding groups into dotted keys.
func flatten(fields []field, prefix string, attrs []slog.Attr) []field {
	for _, a := range attrs {
		v := a.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			p := prefix
			if a.Key != "" {
				p += a.Key + "."
			}

			fields = flatten(fields, p, v.Group())

			continue
		}

		if a.Key == "" {
			continue
		}

		fields = append(fields, field{prefix + a.Key, v})
	}

	return fields
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, level slog.Level, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray + f.key + colorReset + "=")
		writeValue(buf, f, level, false)
	}
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, level slog.Level, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  " + colorGray + strconv.Quote(f.key) + colorReset + ": ")
		writeValue(buf, f, level, true)
	}

	buf.WriteString("\n}")
}

// writeValue writes the colorized value of f. Strings are quoted only when
// quote is set.
func writeValue(buf *bytes.Buffer, f field, level slog.Level, quote bool) {
	str := func(s string) string {
		if quote {
			return strconv.Quote(s)
		}

		return s
	}

	v := f.value

	var color, text string

	switch v.Kind() {
	case slog.KindString:
		color, text = colorCyan, str(v.String())
		if f.key == slog.LevelKey {
			color = levelColor(level)
		}

	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color, text = colorRed, strconv.FormatBool(v.Bool())
		if v.Bool() {
			color = colorGreen
		}

	case slog.KindDuration:
		color, text = colorMagenta, str(v.Duration().String())

	case slog.KindTime:
		color, text = colorBlue, str(v.Time().Format(time.RFC3339))

	default:
		if l, ok := v.Any().(slog.Level); ok {
			color, text = levelColor(l), str(levelName(l))

			break
		}

		if v.Any() == nil {
			color, text = colorGray, "null"

			break
		}

		color, text = colorCyan, str(strings.TrimSpace(fmt.Sprint(v.Any())))
	}

	buf.WriteString(color + text + colorReset)
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return colorRed
	case l >= slog.LevelWarn:
		return colorYellow
	case l >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
