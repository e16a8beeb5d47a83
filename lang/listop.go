package lang

import (
	"log/slog"
	"slices"
)

// check verifies that v may be added to l, fixing the element tag if l has
// none yet.
func (l *List) check(v Value) error {
	switch v.Tag() {
	case TagInt, TagBool, TagFunc, TagList:
	default:
		return ErrTypeMismatch.
			With(slog.String("found", v.Tag().String())).
			Detail("invalid list element of type '%s'", v.Tag())
	}

	if l.Elem == TagNone {
		l.Elem = v.Tag()

		return nil
	}

	return typecheck(v, l.Elem)
}

// takesFunc reports whether the first leading argument is applied to each
// element.
func (k ListOpKind) takesFunc() bool {
	switch k {
	case OpMap, OpFilter, OpExists, OpForAll, OpFold:
		return true
	default:
		return false
	}
}

// evalListOp evaluates the subject list, then the leading arguments in
// source order, and dispatches on the operation. A function argument is not
// evaluated when the list is empty.
func (ev *evaluator) evalListOp(e *ListOp, env *Env) (Value, error) {
	v, err := ev.eval(e.List, env)
	if err != nil {
		return nil, err
	}

	list, err := asList(v)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, arg := range e.Args {
		if i == 0 && e.Op.takesFunc() && len(list.Elems) == 0 {
			continue
		}

		if args[i], err = ev.eval(arg, env); err != nil {
			return nil, err
		}
	}

	if len(args) != e.Op.Arity() {
		return nil, ErrUnknownCommand.
			With(slog.String("operation", e.Op.String()), slog.Int("args", len(args))).
			Detail("malformed list operation 'List.%s'", e.Op)
	}

	switch e.Op {
	case OpCons:
		out := &List{Elem: list.Elem, Elems: make([]Value, 0, len(list.Elems)+1)}
		if err := out.check(args[0]); err != nil {
			return nil, err
		}

		out.Elems = append(append(out.Elems, args[0]), list.Elems...)

		return out, nil

	case OpHd:
		if len(list.Elems) == 0 {
			return None, nil
		}

		return list.Elems[0], nil

	case OpTl:
		if len(list.Elems) == 0 {
			return None, nil
		}

		return &List{Elem: list.Elem, Elems: slices.Clone(list.Elems[1:])}, nil

	case OpIsEmpty:
		return Bool(len(list.Elems) == 0), nil

	case OpLength:
		return Int(len(list.Elems)), nil

	case OpAppend:
		return appendLists(list, args[0])

	case OpMap:
		return ev.mapList(args[0], list)

	case OpFilter:
		return ev.filterList(args[0], list)

	case OpExists:
		return ev.quantify(args[0], list, false)

	case OpForAll:
		return ev.quantify(args[0], list, true)

	case OpFold:
		return ev.foldList(args[0], args[1], list)

	case OpRev:
		out := &List{Elem: list.Elem, Elems: slices.Clone(list.Elems)}
		slices.Reverse(out.Elems)

		return out, nil

	default:
		return nil, ErrUnknownCommand.
			With(slog.String("operation", e.Op.String())).
			Detail("unknown list operation 'List.%s'", e.Op)
	}
}

// appendLists returns the elements of front followed by those of list.
// front is the leading argument of List.append, so the subject list comes
// last.
func appendLists(list *List, arg Value) (Value, error) {
	front, err := asList(arg)
	if err != nil {
		return nil, err
	}

	if len(front.Elems) > 0 && len(list.Elems) > 0 && front.Elem != list.Elem {
		return nil, ErrTypeMismatch.
			With(slog.String("expected", front.Elem.String()), slog.String("found", list.Elem.String())).
			Detail("cannot append list of '%s' to list of '%s'", list.Elem, front.Elem)
	}

	elem := front.Elem
	if elem == TagNone {
		elem = list.Elem
	}

	return &List{Elem: elem, Elems: slices.Concat(front.Elems, list.Elems)}, nil
}

func (ev *evaluator) mapList(fn Value, list *List) (Value, error) {
	out := &List{Elems: make([]Value, 0, len(list.Elems))}

	for _, elem := range list.Elems {
		v, err := ev.call(fn, elem)
		if err != nil {
			return nil, err
		}

		if err := out.check(v); err != nil {
			return nil, err
		}

		out.Elems = append(out.Elems, v)
	}

	return out, nil
}

func (ev *evaluator) filterList(fn Value, list *List) (Value, error) {
	out := &List{Elem: list.Elem, Elems: make([]Value, 0, len(list.Elems))}

	for _, elem := range list.Elems {
		v, err := ev.call(fn, elem)
		if err != nil {
			return nil, err
		}

		keep, err := asBool(v)
		if err != nil {
			return nil, err
		}

		if keep {
			out.Elems = append(out.Elems, elem)
		}
	}

	return out, nil
}

// quantify applies fn to every element, without stopping early, and reports
// whether all results equal all (forAll) or any result differs from all
// (exists).
func (ev *evaluator) quantify(fn Value, list *List, all bool) (Value, error) {
	result := all

	for _, elem := range list.Elems {
		v, err := ev.call(fn, elem)
		if err != nil {
			return nil, err
		}

		b, err := asBool(v)
		if err != nil {
			return nil, err
		}

		if b != all {
			result = !all
		}
	}

	return Bool(result), nil
}

// foldList applies fn(element, accumulator) from the left, starting with
// seed. Each accumulator must have the same type as seed. Folding an empty
// list yields [None], not the seed.
func (ev *evaluator) foldList(fn, seed Value, list *List) (Value, error) {
	if len(list.Elems) == 0 {
		return None, nil
	}

	acc := seed

	for _, elem := range list.Elems {
		v, err := ev.call(fn, elem, acc)
		if err != nil {
			return nil, err
		}

		if err := typecheck(v, seed.Tag()); err != nil {
			return nil, err
		}

		acc = v
	}

	return acc, nil
}
