package lang

import (
	"context"
	"log/slog"
)

// Eval evaluates e in env.
//
// A let binding without a body at the top of e is added to env itself; every
// other binding extends a new environment that is discarded once its scope
// ends.
func Eval(ctx context.Context, e Expr, env *Env, opts ...Option) (Value, error) {
	cfg := makeConfig(opts...)

	if env == nil {
		env = NewEnv()
	}

	ev := &evaluator{ctx: ctx, cfg: cfg}

	return ev.eval(e, env)
}

// evaluator holds the state of one evaluation.
type evaluator struct {
	ctx   context.Context
	cfg   config
	depth int
}

func (ev *evaluator) eval(e Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *IntLit:
		return Int(e.Value), nil

	case *BoolLit:
		return Bool(e.Value), nil

	case *Ident:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return nil, ErrNoBinding.
				With(slog.String("name", e.Name)).
				Detail("variable '%s' is not bound in scope", e.Name)
		}

		return v, nil

	case *Func:
		params, err := binders(e.Params)
		if err != nil {
			return nil, err
		}

		return &Closure{Params: params, Body: e.Body, Env: env.snapshot()}, nil

	case *ListLit:
		return ev.evalList(e, env)

	case *Binary:
		return ev.evalBinary(e, env)

	case *Unary:
		v, err := ev.eval(e.Operand, env)
		if err != nil {
			return nil, err
		}

		b, err := asBool(v)
		if err != nil {
			return nil, err
		}

		return Bool(!b), nil

	case *If:
		v, err := ev.eval(e.Cond, env)
		if err != nil {
			return nil, err
		}

		cond, err := asBool(v)
		if err != nil {
			return nil, err
		}

		if cond {
			return ev.eval(e.Then, env)
		}

		return ev.eval(e.Else, env)

	case *Let:
		return ev.evalLet(e, env)

	case *LetRec:
		return ev.evalLetRec(e, env)

	case *Apply:
		return ev.evalApply(e, env)

	case *ListOp:
		return ev.evalListOp(e, env)

	default:
		return nil, ErrUnknownCommand.Detail("unknown expression %T", e)
	}
}

func (ev *evaluator) evalList(e *ListLit, env *Env) (Value, error) {
	list := &List{Elems: make([]Value, 0, len(e.Elems))}

	for _, elem := range e.Elems {
		v, err := ev.eval(elem, env)
		if err != nil {
			return nil, err
		}

		if err := list.check(v); err != nil {
			return nil, err
		}

		list.Elems = append(list.Elems, v)
	}

	return list, nil
}

func (ev *evaluator) evalLet(e *Let, env *Env) (Value, error) {
	name, err := binder(e.Name)
	if err != nil {
		return nil, err
	}

	value := e.Value
	if len(e.Params) > 0 {
		value = &Func{Params: e.Params, Body: e.Value}
	}

	v, err := ev.eval(value, env)
	if err != nil {
		return nil, err
	}

	return ev.bind(name, v, e.Body, env)
}

func (ev *evaluator) evalLetRec(e *LetRec, env *Env) (Value, error) {
	name, err := binder(e.Name)
	if err != nil {
		return nil, err
	}

	params, err := binders(e.Params)
	if err != nil {
		return nil, err
	}

	rec := &RecClosure{
		Name:   name,
		Params: params,
		Body:   e.Value,
		Env:    env.snapshot(),
	}

	return ev.bind(name, rec, e.Body, env)
}

// bind evaluates body with name bound to v, or defines name in env when
// there is no body.
func (ev *evaluator) bind(name string, v Value, body Expr, env *Env) (Value, error) {
	if body == nil {
		env.Define(name, v)

		ev.cfg.logger.TraceContext(ev.ctx, "define",
			slog.String("name", name),
			slog.String("type", TypeName(v)))

		return v, nil
	}

	return ev.eval(body, env.Extend(name, v))
}

func (ev *evaluator) evalApply(e *Apply, env *Env) (Value, error) {
	callee, err := ev.eval(e.Callee, env)
	if err != nil {
		return nil, err
	}

	if err := checkCall(callee, len(e.Args)); err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))

	for i, arg := range e.Args {
		if args[i], err = ev.eval(arg, env); err != nil {
			return nil, err
		}
	}

	return ev.call(callee, args...)
}

// checkCall fails unless callee is a function taking n arguments.
func checkCall(callee Value, n int) error {
	var params []string

	switch fn := callee.(type) {
	case *Closure:
		params = fn.Params
	case *RecClosure:
		params = fn.Params
	default:
		return ErrTypeMismatch.
			With(slog.String("found", callee.Tag().String())).
			Detail("not a functional value passed")
	}

	if len(params) != n {
		return ErrWrongSyntax.
			With(slog.Int("expected", len(params)), slog.Int("got", n)).
			Detail("functional application parameters do not match the function signature")
	}

	return nil
}

// call applies a function to evaluated arguments. A recursive closure is
// bound to its own name before its parameters.
func (ev *evaluator) call(callee Value, args ...Value) (Value, error) {
	if err := checkCall(callee, len(args)); err != nil {
		return nil, err
	}

	ev.depth++
	defer func() { ev.depth-- }()

	if ev.cfg.maxDepth > 0 && ev.depth > ev.cfg.maxDepth {
		return nil, ErrMaxDepthExceeded.
			With(slog.Int("max_depth", ev.cfg.maxDepth))
	}

	var (
		scope  *Env
		params []string
		body   Expr
	)

	switch fn := callee.(type) {
	case *Closure:
		scope, params, body = fn.Env, fn.Params, fn.Body
	case *RecClosure:
		scope, params, body = fn.Env.Extend(fn.Name, fn), fn.Params, fn.Body
	}

	for i, name := range params {
		scope = scope.Extend(name, args[i])
	}

	return ev.eval(body, scope)
}

// binder returns the name of a binding target, which must be an identifier.
func binder(e Expr) (string, error) {
	id, ok := e.(*Ident)
	if !ok {
		return "", ErrTypeMismatch.
			With(slog.String("binder", e.String())).
			Detail("expected identifier but found '%s'", e)
	}

	return id.Name, nil
}

func binders(exprs []Expr) ([]string, error) {
	names := make([]string, len(exprs))

	for i, e := range exprs {
		name, err := binder(e)
		if err != nil {
			return nil, err
		}

		names[i] = name
	}

	return names, nil
}

// typecheck fails unless v has the expected tag.
func typecheck(v Value, want Tag) error {
	if v.Tag() != want {
		return ErrTypeMismatch.
			With(slog.String("expected", want.String()), slog.String("found", v.Tag().String())).
			Detail("expected type '%s' but found type '%s'", want, v.Tag())
	}

	return nil
}

func asInt(v Value) (int64, error) {
	if err := typecheck(v, TagInt); err != nil {
		return 0, err
	}

	return int64(v.(Int)), nil
}

func asBool(v Value) (bool, error) {
	if err := typecheck(v, TagBool); err != nil {
		return false, err
	}

	return bool(v.(Bool)), nil
}

func asList(v Value) (*List, error) {
	if err := typecheck(v, TagList); err != nil {
		return nil, err
	}

	return v.(*List), nil
}
