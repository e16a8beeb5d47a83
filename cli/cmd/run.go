package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/miniml/lang"
	"github.com/ardnew/miniml/log"
)

// Run evaluates programs and prints the result of each block.
type Run struct {
	Echo      bool     `help:"Print each block before its result."                short:"e"`
	KeepGoing bool     `help:"Continue with the next block after a failure."      short:"k"`
	Define    []string `help:"Bind NAME to the value of host expression EXPR."    placeholder:"NAME=EXPR" sep:"none" short:"D"`
	Files     []string `arg:"" help:"Program source files or '-' for stdin." name:"file" optional:""`
}

// Run executes the run command. All files share one top-level environment,
// so bindings made by one file are visible to the files after it.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session := newSession(ctx)

	if err := defineAll(ctx, session, r.Define); err != nil {
		return err
	}

	srcs, err := openSources(ctx, r.Files)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	var (
		w      = stdoutFrom(ctx)
		failed int
	)

	for _, src := range srcs {
		n, err := r.runSource(ctx, session, w, src)
		failed += n

		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return ErrBlocksFailed.With(slog.Int("count", failed))
	}

	return nil
}

// runSource evaluates every block of src and returns the number of blocks
// that failed. Unless KeepGoing is set, the first failure ends the source
// and is returned.
func (r *Run) runSource(
	ctx context.Context,
	session *lang.Session,
	w io.Writer,
	src source,
) (failed int, err error) {
	block := 0

	err = session.Run(ctx, src, func(text string, v lang.Value, err error) error {
		block++

		if r.Echo {
			if _, werr := fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(text)); werr != nil {
				return ErrWriteOutput.Wrap(werr)
			}
		}

		if err != nil {
			err = ErrSourceFailed.
				With(slog.String("file", src.name), slog.Int("block", block)).
				Wrap(err)

			if !r.KeepGoing {
				return err
			}

			failed++

			log.ErrorContext(ctx, "block failed", slog.Any("error", err))

			return nil
		}

		if _, werr := fmt.Fprintln(w, lang.FormatResult(v)); werr != nil {
			return ErrWriteOutput.Wrap(werr)
		}

		return nil
	})

	return failed, err
}

// defineAll evaluates each NAME=EXPR definition in order and binds the
// result in session.
func defineAll(ctx context.Context, session *lang.Session, defs []string) error {
	for _, def := range defs {
		name, src, ok := strings.Cut(def, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return ErrDefine.With(slog.String("define", def))
		}

		if _, err := session.DefineExpr(ctx, name, src); err != nil {
			return ErrDefine.With(slog.String("define", def)).Wrap(err)
		}
	}

	return nil
}
