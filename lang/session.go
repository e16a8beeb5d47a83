package lang

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"regexp"
	"strings"

	"github.com/klauspost/readahead"
)

// reBlockEnd matches a block terminator preceded by whitespace.
var reBlockEnd = regexp.MustCompile(`\s;;`)

// Blocks splits a program into blocks. Each block ends just after a ";;"
// that follows whitespace; the terminator stays with its block. A trailing
// remainder is yielded only if it is not blank.
func Blocks(src string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0

		for _, loc := range reBlockEnd.FindAllStringIndex(src, -1) {
			if !yield(src[start:loc[1]]) {
				return
			}

			start = loc[1]
		}

		if rest := src[start:]; strings.TrimSpace(rest) != "" {
			yield(rest)
		}
	}
}

// Session evaluates blocks against a shared top-level environment. Bindings
// made without "in" by one block are visible to every later block.
//
// A Session is not safe for concurrent use.
type Session struct {
	env *Env
	cfg config
}

// NewSession returns a session with an empty environment.
func NewSession(opts ...Option) *Session {
	return &Session{env: NewEnv(), cfg: makeConfig(opts...)}
}

// Env returns the top-level environment.
func (s *Session) Env() *Env { return s.env }

// Define binds name to v in the top-level environment.
func (s *Session) Define(name string, v Value) {
	s.env.Define(name, v)

	s.cfg.logger.Trace("define",
		slog.String("name", name),
		slog.String("type", TypeName(v)))
}

// Reset discards every top-level binding.
func (s *Session) Reset() { s.env = NewEnv() }

// ParseBlock tokenizes and parses a single block.
func ParseBlock(ctx context.Context, block string, opts ...Option) (Expr, error) {
	cfg := makeConfig(opts...)

	tokens, err := Tokenize(block)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "tokenize",
		slog.Int("block_bytes", len(block)),
		slog.Int("token_count", len(tokens)))

	return Parse(ctx, tokens, opts...)
}

// Exec parses and evaluates one block.
func (s *Session) Exec(ctx context.Context, block string) (Value, error) {
	var (
		e   Expr
		err error
	)

	if s.cfg.cache {
		e, err = parseCached(ctx, block, s.cfg)
	} else {
		e, err = ParseBlock(ctx, block, s.options()...)
	}

	if err != nil {
		return nil, err
	}

	ev := &evaluator{ctx: ctx, cfg: s.cfg}

	v, err := ev.eval(e, s.env)
	if err != nil {
		return nil, err
	}

	s.cfg.logger.TraceContext(ctx, "eval complete",
		slog.String("type", TypeName(v)),
		slog.Int("bindings", s.env.Len()))

	return v, nil
}

// Run reads a whole program from r and executes each block in order,
// passing the block and its result to fn. Run stops at the first non-nil
// error returned by fn, so fn decides whether an evaluation failure ends the
// program.
func (s *Session) Run(
	ctx context.Context,
	r io.Reader,
	fn func(block string, v Value, err error) error,
) error {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	s.cfg.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true))

	for block := range Blocks(string(data)) {
		v, err := s.Exec(ctx, block)
		if err := fn(block, v, err); err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) options() []Option {
	return []Option{
		WithLogger(s.cfg.logger),
		WithMaxDepth(s.cfg.maxDepth),
		WithCache(s.cfg.cache),
	}
}
