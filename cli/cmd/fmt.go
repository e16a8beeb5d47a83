package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kr/pretty"

	"github.com/ardnew/miniml/lang"
)

// Fmt parses a program and prints it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical source (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Go     Go     `cmd:""                    help:"Format as Go syntax."`
	Tokens Tokens `cmd:""                    help:"Print the token stream of each block."`
}

// SourceArg is the positional source argument shared by the fmt commands.
type SourceArg struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// read returns the whole text of the source.
func (f SourceArg) read(ctx context.Context) (string, error) {
	srcs, err := openSources(ctx, []string{f.Source})
	if err != nil {
		return "", err
	}
	defer closeSources(srcs)

	var text []byte

	for _, src := range srcs {
		data, err := io.ReadAll(src)
		if err != nil {
			return "", ErrReadSource.With(slog.String("file", src.name)).Wrap(err)
		}

		text = append(text, data...)
	}

	return string(text), nil
}

// parse parses every block of the source.
func (f SourceArg) parse(ctx context.Context, format string) (lang.Program, error) {
	srcs, err := openSources(ctx, []string{f.Source})
	if err != nil {
		return nil, err
	}
	defer closeSources(srcs)

	var prog lang.Program

	for _, src := range srcs {
		p, err := lang.ParseProgram(ctx, src, optionsFrom(ctx)...)
		if err != nil {
			return nil, lang.WrapError(err).
				With(slog.String("file", src.name), slog.String("format", format))
		}

		prog = append(prog, p...)
	}

	return prog, nil
}

// Native formats input as canonical source.
type Native struct {
	SourceArg `embed:""`
}

// Run executes the native command.
func (n *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := n.parse(ctx, "native")
	if err != nil {
		return err
	}

	return prog.Format(ctx, stdoutFrom(ctx))
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`

	SourceArg `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := j.parse(ctx, "json")
	if err != nil {
		return err
	}

	return prog.FormatJSON(ctx, stdoutFrom(ctx), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	SourceArg `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := y.parse(ctx, "yaml")
	if err != nil {
		return err
	}

	return prog.FormatYAML(ctx, stdoutFrom(ctx), y.Indent)
}

// Go prints the syntax tree of each block as a Go composite literal.
type Go struct {
	SourceArg `embed:""`
}

// Run executes the go command.
func (g *Go) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := g.parse(ctx, "go")
	if err != nil {
		return err
	}

	w := stdoutFrom(ctx)

	for _, e := range prog {
		if _, err := pretty.Fprintf(w, "%# v\n", e); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}

// Tokens prints the classified words of each block, one per line, with a
// blank line between blocks.
type Tokens struct {
	SourceArg `embed:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	text, err := t.read(ctx)
	if err != nil {
		return err
	}

	w := stdoutFrom(ctx)
	n := 0

	for block := range lang.Blocks(text) {
		n++

		tokens, err := lang.Tokenize(block)
		if err != nil {
			return lang.WrapError(err).
				With(slog.Int("block", n), slog.String("format", "tokens"))
		}

		if n > 1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		for _, tok := range tokens {
			if _, err := fmt.Fprintf(w, "%-16s %s\n", tok.Kind, tok.Text); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}
	}

	return nil
}
