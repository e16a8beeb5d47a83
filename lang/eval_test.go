package lang

import (
	"context"
	"errors"
	"testing"
)

// exec runs each block in a fresh session and returns the last result.
func exec(t testing.TB, blocks ...string) (Value, error) {
	t.Helper()

	s := NewSession()

	var (
		v   Value
		err error
	)

	for _, block := range blocks {
		if v, err = s.Exec(context.Background(), block); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func TestEval_Results(t *testing.T) {
	tests := []struct {
		name   string
		blocks []string
		want   string
	}{
		{name: "addition", blocks: []string{"(1 + 2) ;;"}, want: "-: Int = 3"},
		{
			name:   "conditional",
			blocks: []string{"if (3 > 2) then true else false ;;"},
			want:   "-: Bool = true",
		},
		{
			name:   "factorial",
			blocks: []string{"let rec fact n = if (n <= 1) then 1 else (n * (fact (n - 1))) in (fact 5) ;;"},
			want:   "-: Int = 120",
		},
		{
			name:   "map",
			blocks: []string{"List.map (function x -> (x * 2)) [1, 2, 3] ;;"},
			want:   "-: List = [2,4,6]",
		},
		{
			name:   "fold",
			blocks: []string{"List.fold (function a b -> (a + b)) 0 [1, 2, 3] ;;"},
			want:   "-: Int = 6",
		},
		{name: "head of empty list", blocks: []string{"List.hd [] ;;"}, want: "-: null"},
		{name: "tail of empty list", blocks: []string{"List.tl [] ;;"}, want: "-: null"},
		{name: "truncating division", blocks: []string{"( -7 / 2) ;;"}, want: "-: Int = -3"},
		{name: "truncating modulo", blocks: []string{"( -7 % 2) ;;"}, want: "-: Int = -1"},
		{name: "integer xor", blocks: []string{"(6 ^ 3) ;;"}, want: "-: Int = 5"},
		{name: "boolean xor", blocks: []string{"(true ^ false) ;;"}, want: "-: Bool = true"},
		{name: "equality", blocks: []string{"(2 == 2) ;;"}, want: "-: Bool = true"},
		{name: "inequality", blocks: []string{"(true != true) ;;"}, want: "-: Bool = false"},
		{name: "and", blocks: []string{"(true & false) ;;"}, want: "-: Bool = false"},
		{name: "or", blocks: []string{"(true | false) ;;"}, want: "-: Bool = true"},
		{name: "not", blocks: []string{"! (1 < 2) ;;"}, want: "-: Bool = false"},
		{name: "closure", blocks: []string{"function x -> x ;;"}, want: "-: Closure = <fun>"},
		{name: "recursive closure", blocks: []string{"let rec f x = x ;;"}, want: "-: RecClosure = <rec>"},
		{name: "list of lists", blocks: []string{"[[1] [] [2, 3]] ;;"}, want: "-: List = [[1],[],[2,3]]"},
		{name: "list of functions", blocks: []string{"[function x -> x, function y -> y] ;;"}, want: "-: List = [<fun>,<fun>]"},
		{name: "cons", blocks: []string{"List.cons 0 [1, 2] ;;"}, want: "-: List = [0,1,2]"},
		{name: "cons onto empty", blocks: []string{"List.cons true [] ;;"}, want: "-: List = [true]"},
		{name: "head", blocks: []string{"List.hd [4, 5] ;;"}, want: "-: Int = 4"},
		{name: "tail", blocks: []string{"List.tl [4, 5] ;;"}, want: "-: List = [5]"},
		{name: "is empty", blocks: []string{"List.isEmpty [] ;;"}, want: "-: Bool = true"},
		{name: "length", blocks: []string{"List.length [1, 2, 3] ;;"}, want: "-: Int = 3"},
		{name: "append puts argument first", blocks: []string{"List.append [1, 2] [3, 4] ;;"}, want: "-: List = [1,2,3,4]"},
		{name: "append empty argument", blocks: []string{"List.append [] [3] ;;"}, want: "-: List = [3]"},
		{name: "filter", blocks: []string{"List.filter (function x -> (x > 1)) [1, 2, 3] ;;"}, want: "-: List = [2,3]"},
		{name: "exists", blocks: []string{"List.exists (function x -> (x == 2)) [1, 2, 3] ;;"}, want: "-: Bool = true"},
		{name: "exists on empty", blocks: []string{"List.exists f [] ;;"}, want: "-: Bool = false"},
		{name: "for all", blocks: []string{"List.forAll (function x -> (x > 1)) [1, 2, 3] ;;"}, want: "-: Bool = false"},
		{name: "for all on empty", blocks: []string{"List.forAll f [] ;;"}, want: "-: Bool = true"},
		{name: "fold on empty yields none", blocks: []string{"List.fold (function a b -> (a + b)) 0 [] ;;"}, want: "-: null"},
		{name: "fold on empty ignores function", blocks: []string{"List.fold f 7 [] ;;"}, want: "-: null"},
		{
			name:   "fold passes element then accumulator",
			blocks: []string{"List.fold (function x acc -> List.cons x acc) [] [1, 2, 3] ;;"},
			want:   "-: List = [3,2,1]",
		},
		{
			name:   "list literal tag is not cached across evaluations",
			blocks: []string{"let f x = [x] ;;", "(f 1) ;;", "(f true) ;;"},
			want:   "-: List = [true]",
		},
		{name: "rev", blocks: []string{"List.rev [1, 2, 3] ;;"}, want: "-: List = [3,2,1]"},
		{
			name:   "top-level definitions accumulate",
			blocks: []string{"let x = 40 ;;", "let add a b = (a + b) ;;", "(add x 2) ;;"},
			want:   "-: Int = 42",
		},
		{
			name:   "curried closure",
			blocks: []string{"let k = function x -> function y -> x ;;", "((k 1) 2) ;;"},
			want:   "-: Int = 1",
		},
		{
			name:   "recursive list function",
			blocks: []string{
				"let rec sum l = if List.isEmpty l then 0 else (List.hd l + (sum List.tl l)) ;;",
				"(sum [1, 2, 3, 4]) ;;",
			},
			want: "-: Int = 10",
		},
		{
			name:   "if evaluates only the taken branch",
			blocks: []string{"if true then 1 else (1 / 0) ;;"},
			want:   "-: Int = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := exec(t, tt.blocks...)
			if err != nil {
				t.Fatalf("eval error: %v", err)
			}

			if got := FormatResult(v); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name   string
		blocks []string
		want   error
	}{
		{name: "unbound identifier", blocks: []string{"x ;;"}, want: ErrNoBinding},
		{name: "divide by zero", blocks: []string{"(1 / 0) ;;"}, want: ErrZeroDivide},
		{name: "modulo by zero", blocks: []string{"(1 % 0) ;;"}, want: ErrZeroDivide},
		{name: "add booleans", blocks: []string{"(true + 1) ;;"}, want: ErrTypeMismatch},
		{name: "and integers", blocks: []string{"(1 & 2) ;;"}, want: ErrTypeMismatch},
		{name: "compare booleans", blocks: []string{"(true < false) ;;"}, want: ErrTypeMismatch},
		{name: "mixed equality", blocks: []string{"(1 == true) ;;"}, want: ErrTypeMismatch},
		{name: "list equality", blocks: []string{"([1] == [1]) ;;"}, want: ErrTypeMismatch},
		{name: "not integer", blocks: []string{"! 1 ;;"}, want: ErrTypeMismatch},
		{name: "non-boolean guard", blocks: []string{"if 1 then 2 else 3 ;;"}, want: ErrTypeMismatch},
		{name: "heterogeneous list", blocks: []string{"[1, true] ;;"}, want: ErrTypeMismatch},
		{name: "apply integer", blocks: []string{"(1 2) ;;"}, want: ErrTypeMismatch},
		{name: "arity mismatch", blocks: []string{"((function x y -> x) 1) ;;"}, want: ErrWrongSyntax},
		{name: "parameter not identifier", blocks: []string{"function 1 -> 1 ;;"}, want: ErrTypeMismatch},
		{name: "binder not identifier", blocks: []string{"let 3 = 4 ;;"}, want: ErrTypeMismatch},
		{name: "list operation on integer", blocks: []string{"List.hd 1 ;;"}, want: ErrTypeMismatch},
		{name: "cons wrong type", blocks: []string{"List.cons true [1] ;;"}, want: ErrTypeMismatch},
		{name: "append mismatched lists", blocks: []string{"List.append [true] [1] ;;"}, want: ErrTypeMismatch},
		{name: "filter non-boolean", blocks: []string{"List.filter (function x -> x) [1] ;;"}, want: ErrTypeMismatch},
		{name: "map heterogeneous results", blocks: []string{"List.map (function x -> if (x > 1) then true else x) [1, 2] ;;"}, want: ErrTypeMismatch},
		{name: "fold accumulator type", blocks: []string{"List.fold (function x acc -> true) 0 [1] ;;"}, want: ErrTypeMismatch},
		{name: "none as list element", blocks: []string{"[List.hd []] ;;"}, want: ErrTypeMismatch},
		{name: "none as operand", blocks: []string{"(List.hd [] + 1) ;;"}, want: ErrTypeMismatch},
		{name: "syntax error", blocks: []string{"(1 + ;;"}, want: ErrWrongSyntax},
		{name: "illegal token", blocks: []string{"Foo ;;"}, want: ErrIllegalToken},
		{name: "append to empty list keeps tag", blocks: []string{"List.cons true List.append [1] [] ;;"}, want: ErrTypeMismatch},
		{name: "fold seed evaluated for empty list", blocks: []string{"List.fold f seed [] ;;"}, want: ErrNoBinding},
		{name: "exists applies every element", blocks: []string{"List.exists (function x -> ((10 / x) > 0)) [1, 0] ;;"}, want: ErrZeroDivide},
		{name: "for all applies every element", blocks: []string{"List.forAll (function x -> ((10 / x) < 0)) [1, 0] ;;"}, want: ErrZeroDivide},
		{name: "function argument evaluated for nonempty list", blocks: []string{"List.map f [1] ;;"}, want: ErrNoBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, tt.blocks...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEval_MaxDepth(t *testing.T) {
	s := NewSession(WithMaxDepth(50))

	if _, err := s.Exec(context.Background(), "let rec loop n = (loop n) ;;"); err != nil {
		t.Fatalf("define error: %v", err)
	}

	_, err := s.Exec(context.Background(), "(loop 1) ;;")
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected ErrMaxDepthExceeded, got %v", err)
	}

	v, err := s.Exec(context.Background(),
		"let rec count n = if (n == 0) then 0 else (1 + (count (n - 1))) in (count 40) ;;")
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != Int(40) {
		t.Errorf("expected 40, got %v", v)
	}
}

func TestEval_NilEnv(t *testing.T) {
	v, err := Eval(context.Background(), mustParse(t, "let x = 2 ;;"), nil)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if v != Int(2) {
		t.Errorf("expected 2, got %v", v)
	}
}

func TestEval_DefaultDepthAllowsDeepRecursion(t *testing.T) {
	v, err := exec(t,
		"let rec sum n = if (n == 0) then 0 else (n + (sum (n - 1))) ;;",
		"(sum 20000) ;;",
	)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if want := "-: Int = 200010000"; FormatResult(v) != want {
		t.Errorf("expected %q, got %q", want, FormatResult(v))
	}
}
