package lang

import "log/slog"

// evalBinary evaluates both operands, left then right, before checking them
// against the operator.
func (ev *evaluator) evalBinary(e *Binary, env *Env) (Value, error) {
	left, err := ev.eval(e.Left, env)
	if err != nil {
		return nil, err
	}

	right, err := ev.eval(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "+", "-", "*", "/", "%":
		return arith(e.Op, left, right)

	case "&", "|":
		a, err := asBool(left)
		if err != nil {
			return nil, err
		}

		b, err := asBool(right)
		if err != nil {
			return nil, err
		}

		if e.Op == "&" {
			return Bool(a && b), nil
		}

		return Bool(a || b), nil

	case ">", "<", ">=", "<=":
		return compare(e.Op, left, right)

	case "^", "==", "!=":
		return equality(e.Op, left, right)

	default:
		return nil, ErrUnknownCommand.
			With(slog.String("operator", e.Op)).
			Detail("unknown operator '%s'", e.Op)
	}
}

func arith(op string, left, right Value) (Value, error) {
	a, err := asInt(left)
	if err != nil {
		return nil, err
	}

	b, err := asInt(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case "+":
		return Int(a + b), nil
	case "-":
		return Int(a - b), nil
	case "*":
		return Int(a * b), nil
	}

	if b == 0 {
		return nil, ErrZeroDivide.
			With(slog.String("operator", op), slog.Int64("dividend", a))
	}

	if op == "/" {
		return Int(a / b), nil
	}

	return Int(a % b), nil
}

func compare(op string, left, right Value) (Value, error) {
	a, err := asInt(left)
	if err != nil {
		return nil, err
	}

	b, err := asInt(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case ">":
		return Bool(a > b), nil
	case "<":
		return Bool(a < b), nil
	case ">=":
		return Bool(a >= b), nil
	default:
		return Bool(a <= b), nil
	}
}

// equality implements "^", "==", and "!=" over two values of the same scalar
// type. On integers "^" is bitwise exclusive or; on booleans it is logical.
func equality(op string, left, right Value) (Value, error) {
	if left.Tag() != right.Tag() ||
		(left.Tag() != TagInt && left.Tag() != TagBool) {
		return nil, ErrTypeMismatch.
			With(
				slog.String("operator", op),
				slog.String("left", left.Tag().String()),
				slog.String("right", right.Tag().String()),
			).
			Detail("cannot apply '%s' to '%s' and '%s'", op, left.Tag(), right.Tag())
	}

	switch op {
	case "==":
		return Bool(left == right), nil
	case "!=":
		return Bool(left != right), nil
	}

	if a, ok := left.(Int); ok {
		return a ^ right.(Int), nil
	}

	return Bool(left.(Bool) != right.(Bool)), nil
}
