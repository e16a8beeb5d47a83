package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of one output stream. Styles are bound to a
// renderer for that stream, so non-terminal writers receive plain text.
type palette struct {
	key, str, num, yes, no, null, dur, time   lipgloss.Style
	lvTrace, lvDebug, lvInfo, lvWarn, lvError lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:     fg("8"),
		str:     fg("6"),
		num:     fg("3"),
		yes:     fg("2"),
		no:      fg("1"),
		null:    fg("8"),
		dur:     fg("5"),
		time:    fg("4"),
		lvTrace: fg("8"),
		lvDebug: fg("4"),
		lvInfo:  fg("2"),
		lvWarn:  fg("3").Bold(true),
		lvError: fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.lvError
	case l >= slog.LevelWarn:
		return p.lvWarn
	case l >= slog.LevelInfo:
		return p.lvInfo
	case l >= slog.LevelDebug:
		return p.lvDebug
	default:
		return p.lvTrace
	}
}

func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())
	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")
	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())
	case slog.KindTime:
		return p.time.Render(v.Time().String())
	default:
		if v.Any() == nil {
			return p.null.Render("null")
		}

		return p.str.Render(fmt.Sprint(v.Any()))
	}
}

// prettyHandler renders records for a terminal. Groups and LogValuer values
// are flattened into dotted keys.
type prettyHandler struct {
	opts      slog.HandlerOptions
	mu        *sync.Mutex
	w         io.Writer
	pal       palette
	attrs     []slog.Attr
	prefix    string
	multiline bool
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{opts: *opts, mu: &sync.Mutex{}, w: w, pal: newPalette(w)}
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	h := newPrettyTextHandler(w, opts)
	h.multiline = true

	return h
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = flatten(c.attrs[:len(c.attrs):len(c.attrs)], h.prefix, attrs...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = qualify(h.prefix, name)

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	type field struct {
		key string
		val string
	}

	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	builtin := func(a slog.Attr) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key == "" {
			return
		}

		val := h.pal.value(a.Value.Resolve())
		if a.Key == slog.LevelKey {
			val = h.pal.level(r.Level).Render(a.Value.Resolve().String())
		}

		fields = append(fields, field{key: a.Key, val: val})
	}

	if !r.Time.IsZero() {
		builtin(slog.Time(slog.TimeKey, r.Time))
	}

	builtin(slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			builtin(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	builtin(slog.String(slog.MessageKey, r.Message))

	attrs := h.attrs

	r.Attrs(func(a slog.Attr) bool {
		attrs = flatten(attrs[:len(attrs):len(attrs)], h.prefix, a)

		return true
	})

	for _, a := range attrs {
		fields = append(fields, field{key: a.Key, val: h.pal.value(a.Value)})
	}

	buf := new(bytes.Buffer)

	if h.multiline {
		buf.WriteString("{\n")

		for i, f := range fields {
			if i > 0 {
				buf.WriteString(",\n")
			}

			fmt.Fprintf(buf, "  %s: %s", h.pal.key.Render(f.key), f.val)
		}

		buf.WriteString("\n}\n")
	} else {
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(' ')
			}

			fmt.Fprintf(buf, "%s=%s", h.pal.key.Render(f.key), f.val)
		}

		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// flatten appends attrs to dst with keys qualified by prefix, expanding
// groups and resolving LogValuer values.
func flatten(dst []slog.Attr, prefix string, attrs ...slog.Attr) []slog.Attr {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()

		if a.Equal(slog.Attr{}) {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			dst = flatten(dst, qualify(prefix, a.Key), a.Value.Group()...)

			continue
		}

		dst = append(dst, slog.Attr{Key: qualify(prefix, a.Key), Value: a.Value})
	}

	return dst
}

func qualify(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	default:
		return prefix + "." + key
	}
}
