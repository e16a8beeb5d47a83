package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", "no binding"), slog.String("name", "x"))
}

func TestLogger_ZeroValueDiscards(t *testing.T) {
	var l Logger

	l.Error("dropped")
	l.TraceContext(context.Background(), "dropped")

	if l.EnabledAt(context.Background(), LevelError) {
		t.Error("expected zero logger to be disabled")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Errorf("unexpected zero logger config: %v %v", l.Level(), l.Format())
	}

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("expected With on zero logger to stay zero")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at warn", Logger.Error, LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			l := Make(&buf, WithLevel(tt.min), WithPretty(false))
			tt.log(l, "message")

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("expected logged=%v, got output %q", tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))
	l.Trace("tokenize")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("expected TRACE, got %v", rec["level"])
	}

	if _, ok := rec["time"]; ok {
		t.Error("expected no timestamp by default")
	}
}

func TestLogger_CallerPointsAtCallSite(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithCaller(true), WithFormat(FormatJSON), WithPretty(false))
	l.Warn("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected source in log_test.go, got %s", buf.String())
	}
}

func TestLogger_WrapKeepsConfig(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelDebug), WithPretty(false)).Wrap(WithFormat(FormatJSON))

	if l.Level() != LevelDebug || l.Format() != FormatJSON {
		t.Errorf("unexpected config: %v %v", l.Level(), l.Format())
	}

	l.Debug("kept")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestLogger_PrettyText(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelInfo)).With(slog.String("file", "a.ml"))
	l.Info("block failed", slog.Any("error", valuer{}), slog.Int("block", 3))

	want := "level=INFO msg=block failed file=a.ml error.error=no binding error.name=x block=3\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger_PrettyGroups(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf)
	l.Logger = l.WithGroup("session")
	l.Warn("reset", slog.Bool("cache", false))

	want := "level=WARN msg=reset session.cache=false\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger_PrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON))
	l.Error("failed", slog.Any("cause", errors.New("boom")), slog.Any("none", nil))

	want := "{\n  level: ERROR,\n  msg: failed,\n  cause: boom,\n  none: null\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelInfo))

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			l.With(slog.Int("worker", i)).Info("tick")
		}()
	}

	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 8 {
		t.Errorf("expected 8 lines, got %d", got)
	}
}
