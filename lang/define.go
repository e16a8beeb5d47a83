package lang

import (
	"context"
	"log/slog"
	"math"
	"reflect"

	"github.com/expr-lang/expr"
)

// DefineExpr evaluates a host expression and binds its result to name in the
// top-level environment.
//
// The expression uses expr-lang syntax, e.g. "2 * 21" or "1..5". Integer,
// boolean, and list bindings already in the session are visible to it by
// name. The result must be an integer, a boolean, or a homogeneous array of
// those.
func (s *Session) DefineExpr(ctx context.Context, name, source string) (Value, error) {
	if _, keyword := keywords[name]; keyword || !reIdent.MatchString(name) {
		return nil, ErrInvalidDefine.
			With(slog.String("name", name)).
			Detail("'%s' is not an identifier", name)
	}

	env := s.native()

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrInvalidDefine.Wrap(err).
			With(slog.String("name", name), slog.String("source", source))
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrInvalidDefine.Wrap(err).
			With(slog.String("name", name), slog.String("source", source))
	}

	v, err := FromNative(out)
	if err != nil {
		return nil, WrapError(err).
			With(slog.String("name", name), slog.String("source", source))
	}

	s.cfg.logger.DebugContext(ctx, "host definition",
		slog.String("name", name),
		slog.String("source", source),
		slog.String("value", v.String()))

	s.Define(name, v)

	return v, nil
}

// native returns the visible scalar and list bindings as Go values.
func (s *Session) native() map[string]any {
	env := make(map[string]any)

	for name := range s.env.Names() {
		v, _ := s.env.Lookup(name)
		if n, ok := ToNative(v); ok {
			env[name] = n
		}
	}

	return env
}

// ToNative converts a value to its Go representation: int, bool, or []any.
// Functions and None have no representation.
func ToNative(v Value) (any, bool) {
	switch v := v.(type) {
	case Int:
		return int(v), true

	case Bool:
		return bool(v), true

	case *List:
		out := make([]any, 0, len(v.Elems))

		for _, elem := range v.Elems {
			n, ok := ToNative(elem)
			if !ok {
				return nil, false
			}

			out = append(out, n)
		}

		return out, true

	default:
		return nil, false
	}
}

// FromNative converts a Go integer, boolean, or slice of those to a value.
func FromNative(x any) (Value, error) {
	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt64 {
			return nil, ErrInvalidDefine.Detail("integer %d out of range", rv.Uint())
		}

		return Int(int64(rv.Uint())), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, ErrInvalidDefine.Detail("%v is not an integer", f)
		}

		return Int(int64(f)), nil

	case reflect.Slice, reflect.Array:
		list := &List{Elems: make([]Value, 0, rv.Len())}

		for i := range rv.Len() {
			v, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}

			if err := list.check(v); err != nil {
				return nil, ErrInvalidDefine.Wrap(err)
			}

			list.Elems = append(list.Elems, v)
		}

		return list, nil

	default:
		return nil, ErrInvalidDefine.Detail("unsupported value of type %T", x)
	}
}
