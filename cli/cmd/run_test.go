package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/ardnew/miniml/lang"
)

func writeSource(t *testing.T, dir, name, text string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	return path
}

func runCommand(t *testing.T, ctx context.Context, r *Run) (string, error) {
	t.Helper()

	var out bytes.Buffer

	err := r.Run(WithStdout(ctx, &out))

	return out.String(), err
}

func TestRun_Golden(t *testing.T) {
	tests := []struct {
		name   string
		echo   bool
		golden string
	}{
		{name: "results", golden: "run.golden"},
		{name: "echo", echo: true, golden: "run_echo.golden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCommand(t, context.Background(), &Run{
				Echo:  tt.echo,
				Files: []string{filepath.Join("testdata", "basic.ml")},
			})
			require.NoError(t, err)
			golden.Assert(t, out, tt.golden)
		})
	}
}

func TestRun_FilesShareEnvironment(t *testing.T) {
	dir := t.TempDir()
	first := writeSource(t, dir, "first.ml", "let base = 10 ;;\n")
	second := writeSource(t, dir, "second.ml", "(base * 3) ;;\n")

	out, err := runCommand(t, context.Background(), &Run{Files: []string{first, second}})
	require.NoError(t, err)
	require.Equal(t, "-: Int = 10\n-: Int = 30\n", out)
}

func TestRun_AbortsOnFirstFailure(t *testing.T) {
	path := writeSource(t, t.TempDir(), "fail.ml", "missing ;;\n(1 + 1) ;;\n")

	out, err := runCommand(t, context.Background(), &Run{Files: []string{path}})
	require.ErrorIs(t, err, ErrSourceFailed)
	require.ErrorIs(t, err, lang.ErrNoBinding)
	require.Empty(t, out)
}

func TestRun_KeepGoing(t *testing.T) {
	path := writeSource(t, t.TempDir(), "fail.ml", "missing ;;\n(1 / 0) ;;\n(1 + 1) ;;\n")

	out, err := runCommand(t, context.Background(), &Run{KeepGoing: true, Files: []string{path}})
	require.ErrorIs(t, err, ErrBlocksFailed)
	require.Equal(t, "-: Int = 2\n", out)
}

func TestRun_Stdin(t *testing.T) {
	ctx := WithStdin(context.Background(), strings.NewReader("(2 * 3) ;;\n"))

	out, err := runCommand(t, ctx, &Run{})
	require.NoError(t, err)
	require.Equal(t, "-: Int = 6\n", out)
}

func TestRun_Define(t *testing.T) {
	ctx := WithStdin(context.Background(), strings.NewReader("n ;;\nList.length xs ;;\n"))

	out, err := runCommand(t, ctx, &Run{Define: []string{"n=6*7", "xs = [n, n]"}})
	require.NoError(t, err)
	require.Equal(t, "-: Int = 42\n-: Int = 2\n", out)
}

func TestRun_InvalidDefine(t *testing.T) {
	for _, def := range []string{"=3", "novalue", "n=1 +"} {
		t.Run(def, func(t *testing.T) {
			_, err := runCommand(t, context.Background(), &Run{Define: []string{def}})
			require.ErrorIs(t, err, ErrDefine)
		})
	}
}

func TestRun_SearchPath(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "found-on-path.ml", "true ;;\n")

	ctx := WithSearchPath(context.Background(), []string{dir})

	out, err := runCommand(t, ctx, &Run{Files: []string{"found-on-path.ml"}})
	require.NoError(t, err)
	require.Equal(t, "-: Bool = true\n", out)

	_, err = runCommand(t, context.Background(), &Run{Files: []string{"found-on-path.ml"}})
	require.ErrorIs(t, err, ErrOpenSource)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Options(t *testing.T) {
	path := writeSource(t, t.TempDir(), "deep.ml",
		"let rec down n = if (n == 0) then 0 else (down (n - 1)) ;;\n(down 100) ;;\n")

	ctx := WithOptions(context.Background(), lang.WithMaxDepth(10))

	_, err := runCommand(t, ctx, &Run{Files: []string{path}})
	require.ErrorIs(t, err, lang.ErrMaxDepthExceeded)
}
