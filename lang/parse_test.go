package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func mustParse(t testing.TB, block string) Expr {
	t.Helper()

	e, err := ParseBlock(context.Background(), block)
	if err != nil {
		t.Fatalf("parse %q: %v", block, err)
	}

	return e
}

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, e Expr)
	}{
		{
			name:  "binary operation",
			input: "(1 + 2) ;;",
			check: func(t *testing.T, e Expr) {
				b, ok := e.(*Binary)
				if !ok {
					t.Fatalf("expected *Binary, got %T", e)
				}

				if b.Op != "+" {
					t.Errorf("expected op '+', got %q", b.Op)
				}
			},
		},
		{
			name:  "application",
			input: "(f 1 2 3) ;;",
			check: func(t *testing.T, e Expr) {
				a, ok := e.(*Apply)
				if !ok {
					t.Fatalf("expected *Apply, got %T", e)
				}

				if len(a.Args) != 3 {
					t.Errorf("expected 3 args, got %d", len(a.Args))
				}
			},
		},
		{
			name:  "plain parentheses",
			input: "((x)) ;;",
			check: func(t *testing.T, e Expr) {
				if _, ok := e.(*Ident); !ok {
					t.Errorf("expected *Ident, got %T", e)
				}
			},
		},
		{
			name:  "let with parameters",
			input: "let f x y = (x + y) ;;",
			check: func(t *testing.T, e Expr) {
				l, ok := e.(*Let)
				if !ok {
					t.Fatalf("expected *Let, got %T", e)
				}

				if len(l.Params) != 2 {
					t.Errorf("expected 2 params, got %d", len(l.Params))
				}

				if l.Body != nil {
					t.Errorf("expected no body, got %v", l.Body)
				}
			},
		},
		{
			name:  "let with body",
			input: "let x = 1 in x ;;",
			check: func(t *testing.T, e Expr) {
				l, ok := e.(*Let)
				if !ok {
					t.Fatalf("expected *Let, got %T", e)
				}

				if l.Params != nil {
					t.Errorf("expected no params, got %v", l.Params)
				}

				if l.Body == nil {
					t.Error("expected body")
				}
			},
		},
		{
			name:  "let rec",
			input: "let rec f n = (f n) in f ;;",
			check: func(t *testing.T, e Expr) {
				l, ok := e.(*LetRec)
				if !ok {
					t.Fatalf("expected *LetRec, got %T", e)
				}

				if len(l.Params) != 1 || l.Body == nil {
					t.Errorf("unexpected let rec shape: %v", l)
				}
			},
		},
		{
			name:  "fold takes two leading arguments",
			input: "List.fold f 0 l ;;",
			check: func(t *testing.T, e Expr) {
				op, ok := e.(*ListOp)
				if !ok {
					t.Fatalf("expected *ListOp, got %T", e)
				}

				if op.Op != OpFold || len(op.Args) != 2 {
					t.Errorf("expected fold with 2 args, got %v with %d", op.Op, len(op.Args))
				}
			},
		},
		{
			name:  "nested list operations",
			input: "List.hd List.tl [1 2] ;;",
			check: func(t *testing.T, e Expr) {
				op, ok := e.(*ListOp)
				if !ok {
					t.Fatalf("expected *ListOp, got %T", e)
				}

				if _, ok := op.List.(*ListOp); !ok {
					t.Errorf("expected nested *ListOp, got %T", op.List)
				}
			},
		},
		{
			name:  "not",
			input: "! true ;;",
			check: func(t *testing.T, e Expr) {
				if _, ok := e.(*Unary); !ok {
					t.Errorf("expected *Unary, got %T", e)
				}
			},
		},
		{
			name:  "sixteen arguments",
			input: "(f 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16) ;;",
			check: func(t *testing.T, e Expr) {
				if a := e.(*Apply); len(a.Args) != maxParams {
					t.Errorf("expected %d args, got %d", maxParams, len(a.Args))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, mustParse(t, tt.input))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "no tokens", input: "  ", message: "no tokens found"},
		{name: "missing terminator", input: "1", message: "expected ';;' but found none"},
		{name: "leftover tokens", input: "1 ;; 2", message: "unexpected tokens out of scope: 2"},
		{name: "two expressions", input: "1 2 ;;", message: "expected ';;' but found '2'"},
		{name: "unexpected token", input: ") ;;", message: "unexpected token ')'"},
		{name: "empty input after let", input: "let", message: "expected expression but found none"},
		{name: "missing in", input: "let x = 1 x ;;", message: "expected 'in' but found 'x'"},
		{name: "missing then", input: "if true 1 else 2 ;;", message: "expected 'then' but found '1'"},
		{
			name:    "too many arguments",
			input:   "(f 1 2 3 4 5 6 7 8 9 10 11 12 13 14 15 16 17) ;;",
			message: "too many parameters passed to function",
		},
		{name: "no parameters", input: "function -> 1 ;;", message: "no parameters passed to function"},
		{name: "rec without parameters", input: "let rec f = 1 ;;", message: "no parameters passed to function"},
		{
			name:    "failure inside parameter list",
			input:   "function x then -> 1 ;;",
			message: "expected '->' to delimit list of parameters",
		},
		{name: "invalid list operation", input: "List.size [] ;;", message: "invalid list operation 'List.size'"},
		{name: "unclosed list", input: "[1 2", message: "expected ']' but found none"},
		{name: "unclosed paren", input: "(1 + 2 ;;", message: "expected ')' but found ';;'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBlock(context.Background(), tt.input)
			if !errors.Is(err, ErrWrongSyntax) {
				t.Fatalf("expected ErrWrongSyntax, got %v", err)
			}

			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("expected error containing %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestParse_LetNameIsExpression(t *testing.T) {
	// Binding targets are checked during evaluation, not parsing.
	e := mustParse(t, "let 3 = 4 ;;")

	l, ok := e.(*Let)
	if !ok {
		t.Fatalf("expected *Let, got %T", e)
	}

	if _, ok := l.Name.(*IntLit); !ok {
		t.Errorf("expected *IntLit name, got %T", l.Name)
	}
}
