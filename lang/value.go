package lang

import (
	"strconv"
	"strings"
)

// Tag is the runtime type of a [Value].
type Tag int

// Runtime type tags. Closures and recursive closures share TagFunc.
const (
	TagNone Tag = iota
	TagInt
	TagBool
	TagFunc
	TagList
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNone:
		return "None"
	case TagInt:
		return "Int"
	case TagBool:
		return "Bool"
	case TagFunc:
		return "Function"
	case TagList:
		return "List"
	default:
		return "Unknown"
	}
}

// Value is a runtime value produced by [Eval].
//
// The set of value types is closed. String renders the value the way results
// are printed: literals as source text, functions as opaque placeholders.
type Value interface {
	Tag() Tag
	String() string
	value()
}

// Int is an integer value.
type Int int64

// Bool is a boolean value.
type Bool bool

// Closure is a function value together with the environment it was created
// in.
type Closure struct {
	Body   Expr
	Env    *Env
	Params []string
}

// RecClosure is a closure that binds its own Name when applied.
type RecClosure struct {
	Body   Expr
	Env    *Env
	Name   string
	Params []string
}

// List is a homogeneous list. Elem is the tag shared by every element, or
// TagNone for a list that never held an element.
type List struct {
	Elems []Value
	Elem  Tag
}

type none struct{}

// None is the result of List.hd and List.tl on an empty list.
var None Value = none{}

func (Int) value()         {}
func (Bool) value()        {}
func (*Closure) value()    {}
func (*RecClosure) value() {}
func (*List) value()       {}
func (none) value()        {}

func (Int) Tag() Tag         { return TagInt }
func (Bool) Tag() Tag        { return TagBool }
func (*Closure) Tag() Tag    { return TagFunc }
func (*RecClosure) Tag() Tag { return TagFunc }
func (*List) Tag() Tag       { return TagList }
func (none) Tag() Tag        { return TagNone }

func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Bool) String() string { return strconv.FormatBool(bool(v)) }

func (*Closure) String() string    { return "<fun>" }
func (*RecClosure) String() string { return "<rec>" }
func (none) String() string        { return "null" }

func (v *List) String() string {
	part := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		part[i] = e.String()
	}

	return "[" + strings.Join(part, ",") + "]"
}

// TypeName returns the name printed for v in a result line.
func TypeName(v Value) string {
	switch v.(type) {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case *Closure:
		return "Closure"
	case *RecClosure:
		return "RecClosure"
	case *List:
		return "List"
	default:
		return "null"
	}
}

// FormatResult renders v as a result line, e.g. "-: Int = 3" or "-: null".
func FormatResult(v Value) string {
	if v == nil || v.Tag() == TagNone {
		return "-: null"
	}

	return "-: " + TypeName(v) + " = " + v.String()
}

// Equal reports whether a and b are structurally equal. Functions are equal
// only to themselves.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}

		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}

		return true

	default:
		return a == b
	}
}
