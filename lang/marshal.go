package lang

import "encoding/json"

// ToMap converts an expression to a native Go map keyed by node kind, e.g.
// {"binary": {"op": "+", "left": {"int": 1}, "right": {"int": 2}}}.
func ToMap(e Expr) map[string]any {
	switch e := e.(type) {
	case *IntLit:
		return map[string]any{"int": e.Value}

	case *BoolLit:
		return map[string]any{"bool": e.Value}

	case *Ident:
		return map[string]any{"ident": e.Name}

	case *Func:
		return map[string]any{"function": map[string]any{
			"params": toMaps(e.Params),
			"body":   ToMap(e.Body),
		}}

	case *ListLit:
		return map[string]any{"list": toMaps(e.Elems)}

	case *Binary:
		return map[string]any{"binary": map[string]any{
			"op":    e.Op,
			"left":  ToMap(e.Left),
			"right": ToMap(e.Right),
		}}

	case *Unary:
		return map[string]any{"unary": map[string]any{
			"op":      e.Op,
			"operand": ToMap(e.Operand),
		}}

	case *If:
		return map[string]any{"if": map[string]any{
			"cond": ToMap(e.Cond),
			"then": ToMap(e.Then),
			"else": ToMap(e.Else),
		}}

	case *Let:
		return map[string]any{"let": letMap(e.Name, e.Params, e.Value, e.Body)}

	case *LetRec:
		return map[string]any{"let rec": letMap(e.Name, e.Params, e.Value, e.Body)}

	case *Apply:
		return map[string]any{"apply": map[string]any{
			"callee": ToMap(e.Callee),
			"args":   toMaps(e.Args),
		}}

	case *ListOp:
		m := map[string]any{"list": ToMap(e.List)}
		if len(e.Args) > 0 {
			m["args"] = toMaps(e.Args)
		}

		return map[string]any{"List." + e.Op.String(): m}

	default:
		return nil
	}
}

func letMap(name Expr, params []Expr, value, body Expr) map[string]any {
	m := map[string]any{
		"name":  ToMap(name),
		"value": ToMap(value),
	}

	if len(params) > 0 {
		m["params"] = toMaps(params)
	}

	if body != nil {
		m["body"] = ToMap(body)
	}

	return m
}

func toMaps(exprs []Expr) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		out[i] = ToMap(e)
	}

	return out
}

// MarshalJSON implements json.Marshaler for Program.
func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToNative())
}

// ToNative converts every block of the program with [ToMap].
func (p Program) ToNative() []any {
	return toMaps(p)
}
