package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/miniml/lang"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

type (
	searchPathKey struct{}
	optionsKey    struct{}
	stdinKey      struct{}
	stdoutKey     struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithSearchPath returns a new context.Context carrying the directories
// searched for relative source file names, in order.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// WithOptions returns a new context.Context carrying interpreter options
// applied to every session a command creates. Options accumulate.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	prev := optionsFrom(ctx)
	all := make([]lang.Option, 0, len(prev)+len(opts))

	return context.WithValue(ctx, optionsKey{}, append(append(all, prev...), opts...))
}

func optionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return opts
}

// WithStdin returns a new context.Context whose standard input source is r.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithStdout returns a new context.Context whose command output goes to w.
func WithStdout(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stdoutKey{}, w)
}

// stdoutFrom returns the writer set by [WithStdout], else the output stream
// of the running kong application, else os.Stdout.
func stdoutFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stdoutKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// newSession returns an interpreter session configured from ctx.
func newSession(ctx context.Context) *lang.Session {
	return lang.NewSession(optionsFrom(ctx)...)
}
