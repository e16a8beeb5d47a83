package lang

import (
	"errors"
	"slices"
	"testing"
)

func tokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}

	return out
}

func TestTokenize_Words(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "integers and symbols",
			input: "( 1 + -2 ) ;;",
			want:  []string{"(", "1", "+", "-2", ")", ";;"},
		},
		{
			name:  "commas separate words",
			input: "[1,2, 3]",
			want:  []string{"[", "1", "2", "3", "]"},
		},
		{
			name:  "glued parenthesis runs",
			input: "(((fact n)))",
			want:  []string{"(", "(", "(", "fact", "n", ")", ")", ")"},
		},
		{
			name:  "wrapped identifier",
			input: "((x))",
			want:  []string{"(", "(", "x", ")", ")"},
		},
		{
			name:  "list operation with paren",
			input: "(List.hd l)",
			want:  []string{"(", "List.hd", "l", ")"},
		},
		{
			name:  "leading not",
			input: "!(x)",
			want:  []string{"!", "(", "x", ")"},
		},
		{
			name:  "empty list",
			input: "[]",
			want:  []string{"[", "]"},
		},
		{
			name:  "nested brackets",
			input: "[[1] [2]]",
			want:  []string{"[", "[", "1", "]", "[", "2", "]", "]"},
		},
		{
			name:  "paren inside bracket",
			input: "[(f 1)]",
			want:  []string{"[", "(", "f", "1", ")", "]"},
		},
		{
			name:  "bracket inside paren",
			input: "(f [1])",
			want:  []string{"(", "f", "[", "1", "]", ")"},
		},
		{
			name:  "keywords",
			input: "let rec f x = if x then y else z in function a -> b",
			want: []string{
				"let", "rec", "f", "x", "=", "if", "x", "then", "y", "else", "z",
				"in", "function", "a", "->", "b",
			},
		},
		{
			name:  "blank input",
			input: " \n\t ,, ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}

			if got := tokenTexts(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTokenize_Kinds(t *testing.T) {
	tokens, err := Tokenize("let f = (List.map g [true, 3]) ;;")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	want := []Kind{
		KindLet, KindIdent, KindEq, KindLParen, KindListOp, KindIdent,
		KindLBracket, KindBool, KindInt, KindRBracket, KindRParen, KindEnd,
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}

	for i, tok := range tokens {
		if tok.Kind != want[i] {
			t.Errorf("token %d %q: expected kind %v, got %v", i, tok.Text, want[i], tok.Kind)
		}
	}
}

func TestTokenize_Illegal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "uppercase identifier", input: "Foo"},
		{name: "unknown punctuation", input: "x @ y"},
		{name: "glued operator", input: "(x+1)"},
		{name: "not inside parens", input: "(!x)"},
		{name: "negative glued to paren", input: "(f -1)"},
		{name: "glued terminator", input: "x;;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, ErrIllegalToken) {
				t.Errorf("expected ErrIllegalToken, got %v", err)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	want := []string{"else", "false", "function", "if", "in", "let", "rec", "then", "true"}
	if got := Keywords(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
