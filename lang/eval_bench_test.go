package lang

import (
	"context"
	"testing"
)

const benchFib = "let rec fib n = if (n < 2) then n else ((fib (n - 1)) + (fib (n - 2))) ;;"

// BenchmarkEval_Fib measures recursive application.
func BenchmarkEval_Fib(b *testing.B) {
	s := NewSession()
	ctx := context.Background()

	if _, err := s.Exec(ctx, benchFib); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := s.Exec(ctx, "(fib 15) ;;"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEval_ListOps measures list construction and traversal.
func BenchmarkEval_ListOps(b *testing.B) {
	s := NewSession()
	ctx := context.Background()
	block := "List.fold (function x acc -> (x + acc)) 0 " +
		"List.map (function x -> (x * x)) List.rev [1, 2, 3, 4, 5, 6, 7, 8, 9, 10] ;;"

	for b.Loop() {
		if _, err := s.Exec(ctx, block); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParse_Cached compares cached and uncached parsing of one block.
func BenchmarkParse_Cached(b *testing.B) {
	ctx := context.Background()

	b.Run("cached", func(b *testing.B) {
		cfg := makeConfig()

		for b.Loop() {
			if _, err := parseCached(ctx, benchFib, cfg); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("uncached", func(b *testing.B) {
		for b.Loop() {
			if _, err := ParseBlock(ctx, benchFib); err != nil {
				b.Fatal(err)
			}
		}
	})
}
