// Package lang implements a small eagerly evaluated functional language with
// integers, booleans, homogeneous lists, first-class and recursive functions,
// let-bindings, conditionals, and a fixed library of list operations.
//
// # Pipeline
//
// A program is a sequence of blocks, each ending with ";;". Every block goes
// through three stages:
//
//   - [Tokenize] splits the block into [Token] values.
//   - [Parse] builds a single [Expr] from the tokens.
//   - [Eval] reduces the expression to a [Value] in an [Env].
//
// A [Session] runs the stages for each block against one top-level
// environment, so a binding made without "in" stays visible to the blocks
// that follow it.
//
// # Grammar
//
// Informal EBNF:
//
//	Expr     → INT | BOOL | IDENT | Let | If | Function | Paren | List | ListOp | '!' Expr
//	Let      → 'let' ['rec'] IDENT [Params] '=' Expr ['in' Expr]
//	If       → 'if' Expr 'then' Expr 'else' Expr
//	Function → 'function' Params '->' Expr
//	Paren    → '(' Expr [SYMBOL Expr | Args] ')'
//	List     → '[' Expr* ']'
//	ListOp   → 'List.' NAME Expr* Expr
//	Params   → Expr{1,16}
//
// Binary operators appear only inside parentheses. Commas are whitespace.
//
// # Example
//
//	let rec fact n = if (n <= 1) then 1 else (n * (fact (n - 1))) ;;
//	List.map fact [1, 2, 3, 4, 5] ;;
//	List.fold (function x acc -> (x + acc)) 0 [1, 2, 3] ;;
//
// # Scoping
//
// Environments are persistent. A closure sees the bindings that existed when
// it was created and never those added later. A recursive closure binds its
// own name each time it is applied.
package lang
