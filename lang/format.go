package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// Program is the parsed blocks of a source text, in order.
type Program []Expr

// ParseProgram reads a whole source text and parses each of its blocks.
func ParseProgram(ctx context.Context, r io.Reader, opts ...Option) (Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	var prog Program

	for block := range Blocks(string(data)) {
		e, err := ParseBlock(ctx, block, opts...)
		if err != nil {
			return nil, WrapError(err).
				With(slog.Int("block", len(prog)+1))
		}

		prog = append(prog, e)
	}

	return prog, nil
}

// Format writes each block in canonical source syntax, one per line.
func (p Program) Format(_ context.Context, w io.Writer) error {
	for _, e := range p {
		if _, err := fmt.Fprintln(w, e.String(), ";;"); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the program as JSON to the writer.
func (p Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (p Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
