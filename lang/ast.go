package lang

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr is a node of the abstract syntax tree produced by [Parse].
//
// The set of node types is closed: only types in this package implement it.
// String renders the node as canonical source text that parses back to an
// equivalent tree.
type Expr interface {
	String() string
	expr()
}

// IntLit is an integer literal.
type IntLit struct{ Value int64 }

// BoolLit is a boolean literal.
type BoolLit struct{ Value bool }

// Ident is a bare identifier.
type Ident struct{ Name string }

// Func is an anonymous function literal.
type Func struct {
	Params []Expr
	Body   Expr
}

// ListLit is a bracketed list literal.
type ListLit struct{ Elems []Expr }

// Binary is a parenthesized binary operation.
type Binary struct {
	Left  Expr
	Right Expr
	Op    string
}

// Unary is a prefix operation. The only operator is "!".
type Unary struct {
	Operand Expr
	Op      string
}

// If is a conditional expression.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

// Let binds Name to Value. When Params is non-empty the value is sugar for a
// function literal over Params. A nil Body extends the enclosing environment
// in place.
type Let struct {
	Name   Expr
	Value  Expr
	Body   Expr
	Params []Expr
}

// LetRec binds Name to a recursive function over Params. A nil Body extends
// the enclosing environment in place.
type LetRec struct {
	Name   Expr
	Value  Expr
	Body   Expr
	Params []Expr
}

// Apply is a function application.
type Apply struct {
	Callee Expr
	Args   []Expr
}

// ListOp is a list library operation. Args holds the leading arguments in
// source order; List is the subject list.
type ListOp struct {
	List Expr
	Args []Expr
	Op   ListOpKind
}

func (*IntLit) expr()  {}
func (*BoolLit) expr() {}
func (*Ident) expr()   {}
func (*Func) expr()    {}
func (*ListLit) expr() {}
func (*Binary) expr()  {}
func (*Unary) expr()   {}
func (*If) expr()      {}
func (*Let) expr()     {}
func (*LetRec) expr()  {}
func (*Apply) expr()   {}
func (*ListOp) expr()  {}

// ListOpKind selects a list library operation.
type ListOpKind int

// List operations.
const (
	OpCons ListOpKind = iota
	OpHd
	OpTl
	OpIsEmpty
	OpLength
	OpAppend
	OpMap
	OpFilter
	OpExists
	OpForAll
	OpFold
	OpRev
)

type listOpInfo struct {
	name  string
	arity int // leading arguments before the subject list
}

var listOps = [...]listOpInfo{
	OpCons:    {"cons", 1},
	OpHd:      {"hd", 0},
	OpTl:      {"tl", 0},
	OpIsEmpty: {"isEmpty", 0},
	OpLength:  {"length", 0},
	OpAppend:  {"append", 1},
	OpMap:     {"map", 1},
	OpFilter:  {"filter", 1},
	OpExists:  {"exists", 1},
	OpForAll:  {"forAll", 1},
	OpFold:    {"fold", 2},
	OpRev:     {"rev", 0},
}

// ListOpNames returns the selector names in declaration order.
func ListOpNames() []string {
	names := make([]string, len(listOps))
	for i, info := range listOps {
		names[i] = info.name
	}

	return names
}

// ListOpArity returns the number of leading arguments taken by the list
// operation with the given selector name, and whether the name exists.
func ListOpArity(name string) (int, bool) {
	op, ok := lookupListOp(name)
	if !ok {
		return 0, false
	}

	return op.Arity(), true
}

// lookupListOp returns the operation named by a selector such as "map".
func lookupListOp(name string) (ListOpKind, bool) {
	for i, info := range listOps {
		if info.name == name {
			return ListOpKind(i), true
		}
	}

	return 0, false
}

// String returns the selector name, e.g. "fold".
func (k ListOpKind) String() string {
	if k >= 0 && int(k) < len(listOps) {
		return listOps[k].name
	}

	return "unknown"
}

// Arity returns the number of leading arguments the operation takes.
func (k ListOpKind) Arity() int {
	if k >= 0 && int(k) < len(listOps) {
		return listOps[k].arity
	}

	return 0
}

func (e *IntLit) String() string { return strconv.FormatInt(e.Value, 10) }

func (e *BoolLit) String() string { return strconv.FormatBool(e.Value) }

func (e *Ident) String() string { return e.Name }

func (e *Func) String() string {
	return "function " + join(e.Params, " ") + " -> " + e.Body.String()
}

func (e *ListLit) String() string { return enclose("[", join(e.Elems, ", "), "]") }

func (e *Binary) String() string {
	return enclose("(", e.Left.String()+" "+e.Op+" "+e.Right.String(), ")")
}

func (e *Unary) String() string { return e.Op + " " + e.Operand.String() }

func (e *If) String() string {
	return "if " + e.Cond.String() +
		" then " + e.Then.String() +
		" else " + e.Else.String()
}

func (e *Let) String() string {
	return formatLet("let ", e.Name, e.Params, e.Value, e.Body)
}

func (e *LetRec) String() string {
	return formatLet("let rec ", e.Name, e.Params, e.Value, e.Body)
}

func (e *Apply) String() string {
	return enclose("(", e.Callee.String()+" "+join(e.Args, " "), ")")
}

func (e *ListOp) String() string {
	var sb strings.Builder

	sb.WriteString("List.")
	sb.WriteString(e.Op.String())

	for _, arg := range e.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(e.List.String())

	return sb.String()
}

func formatLet(keyword string, name Expr, params []Expr, value, body Expr) string {
	var sb strings.Builder

	sb.WriteString(keyword)
	sb.WriteString(name.String())

	if len(params) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(join(params, " "))
	}

	sb.WriteString(" = ")
	sb.WriteString(value.String())

	if body != nil {
		sb.WriteString(" in ")
		sb.WriteString(body.String())
	}

	return sb.String()
}

// enclose glues brackets to inner text when the tokenizer can peel them off
// again, and pads them with spaces otherwise (e.g. around "-1"). Words are
// tokenized independently, so only the first and last words of inner need
// checking.
func enclose(open, inner, closing string) string {
	var ok bool

	if i := strings.IndexFunc(inner, isWordSep); i >= 0 {
		j := strings.LastIndexFunc(inner, isWordSep)
		_, size := utf8.DecodeRuneInString(inner[j:])
		ok = glues(open, inner[:i]) && glues(inner[j+size:], closing)
	} else {
		ok = glues(open, inner, closing)
	}

	if !ok {
		return open + " " + inner + " " + closing
	}

	return open + inner + closing
}

// glues reports whether parts written without spaces tokenize the same as
// parts separated by spaces.
func glues(parts ...string) bool {
	want, err := Tokenize(strings.Join(parts, " "))
	if err != nil {
		return false
	}

	got, err := Tokenize(strings.Join(parts, ""))

	return err == nil && slices.Equal(got, want)
}

func join(exprs []Expr, sep string) string {
	part := make([]string, len(exprs))
	for i, e := range exprs {
		part[i] = e.String()
	}

	return strings.Join(part, sep)
}
