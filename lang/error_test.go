package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_IsSentinel(t *testing.T) {
	derived := []*Error{
		ErrNoBinding.With(slog.String("name", "x")),
		ErrNoBinding.Detail("variable '%s' is not bound", "x"),
		ErrNoBinding.Wrap(io.EOF).With(slog.Int("n", 1)),
	}

	for _, err := range derived {
		if !errors.Is(err, ErrNoBinding) {
			t.Errorf("expected %v to match ErrNoBinding", err)
		}

		if errors.Is(err, ErrTypeMismatch) {
			t.Errorf("expected %v not to match ErrTypeMismatch", err)
		}
	}

	if !errors.Is(ErrReadInput.Wrap(io.EOF), io.EOF) {
		t.Error("expected wrapped cause to match")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "message only", err: NewError("boom"), want: "boom"},
		{name: "message and cause", err: NewError("boom").Wrap(io.EOF), want: "boom: EOF"},
		{name: "cause only", err: WrapError(io.EOF), want: "EOF"},
		{name: "detail", err: ErrZeroDivide.Detail("%d / 0", 1), want: "division by zero: 1 / 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_WithDoesNotShareAttrs(t *testing.T) {
	base := ErrTypeMismatch.With(slog.String("a", "1"))
	one := base.With(slog.String("b", "2"))
	two := base.With(slog.String("c", "3"))

	if len(base.Attrs()) != 1 || len(one.Attrs()) != 2 || len(two.Attrs()) != 2 {
		t.Fatalf("unexpected attr counts: %d %d %d",
			len(base.Attrs()), len(one.Attrs()), len(two.Attrs()))
	}

	if one.Attrs()[1].Key != "b" || two.Attrs()[1].Key != "c" {
		t.Errorf("attrs leaked between derived errors: %v %v", one.Attrs(), two.Attrs())
	}
}

func TestError_LogValue(t *testing.T) {
	v := ErrZeroDivide.Wrap(io.EOF).With(slog.Int("dividend", 3)).LogValue()

	attrs := v.Group()
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(attrs))
	}

	if attrs[0].Key != "error" || attrs[1].Key != "cause" || attrs[2].Key != "dividend" {
		t.Errorf("unexpected attrs: %v", attrs)
	}
}
