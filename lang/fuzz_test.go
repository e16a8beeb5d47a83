package lang

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"
)

// FuzzTokenize checks that tokenizing never panics and that every failure is
// an illegal token.
func FuzzTokenize(f *testing.F) {
	f.Add("(1 + 2) ;;")
	f.Add("(((fact n)))")
	f.Add("[(List.hd l)]")
	f.Add("!(x)")
	f.Add("[]]][[(")
	f.Add("let rec f x = x in (f 1) ;;")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		tokens, err := Tokenize(input)
		if err != nil {
			if !errors.Is(err, ErrIllegalToken) {
				t.Errorf("unexpected error type: %v", err)
			}

			return
		}

		for i, tok := range tokens {
			if tok.Text == "" {
				t.Errorf("token %d is empty", i)
			}
		}
	})
}

// FuzzParse checks that parsing never panics and that anything it accepts
// formats to source that parses to the same text again.
func FuzzParse(f *testing.F) {
	f.Add("(1 + 2) ;;")
	f.Add("let f x = (x * 2) in List.map f [1, 2] ;;")
	f.Add("if true then [] else [[1]] ;;")
	f.Add("List.fold f 0 List.rev l ;;")
	f.Add("(f ;;")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		ctx := context.Background()

		e, err := ParseBlock(ctx, input)
		if err != nil {
			return
		}

		again, err := ParseBlock(ctx, e.String()+" ;;")
		if err != nil {
			t.Fatalf("formatted %q does not parse: %v", e.String(), err)
		}

		if again.String() != e.String() {
			t.Errorf("expected %q, got %q", e.String(), again.String())
		}
	})
}
