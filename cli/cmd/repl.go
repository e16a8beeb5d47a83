package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/miniml/cli/cmd/repl"
	"github.com/ardnew/miniml/lang"
	"github.com/ardnew/miniml/log"
	"github.com/ardnew/miniml/pkg"
)

// Repl starts an interactive session.
type Repl struct {
	History string   `default:"${history}" help:"History file path."                                 type:"path"`
	Files   []string `arg:""               help:"Program files evaluated before the prompt appears." name:"file" optional:""`
}

// Run executes the repl command. Preloaded files are evaluated silently; a
// failing block aborts before the prompt appears.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session := newSession(ctx)

	if len(r.Files) > 0 {
		srcs, err := openSources(ctx, r.Files)
		if err != nil {
			return err
		}
		defer closeSources(srcs)

		for _, src := range srcs {
			err := session.Run(ctx, src, func(_ string, _ lang.Value, err error) error {
				if err != nil {
					return ErrSourceFailed.With(slog.String("file", src.name)).Wrap(err)
				}

				return nil
			})
			if err != nil {
				return err
			}
		}
	}

	history := r.History
	if history == "" {
		history = pkg.HistoryFile()
	}

	return repl.Run(ctx, session,
		repl.WithHistoryFile(history),
		repl.WithLogger(log.Default()),
	)
}
