package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// maxParams bounds parameter and argument lists.
const maxParams = 16

// Parse builds the expression of a single block from its tokens.
//
// The tokens must hold exactly one expression followed by the block
// terminator ";;". Any failure is reported as [ErrWrongSyntax].
func Parse(ctx context.Context, tokens []Token, opts ...Option) (Expr, error) {
	cfg := makeConfig(opts...)

	if len(tokens) == 0 {
		return nil, ErrWrongSyntax.Detail("no tokens found")
	}

	p := &parser{tokens: tokens}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindEnd); err != nil {
		return nil, err
	}

	if p.pos < len(p.tokens) {
		rest := make([]string, 0, len(p.tokens)-p.pos)
		for _, t := range p.tokens[p.pos:] {
			rest = append(rest, t.Text)
		}

		return nil, ErrWrongSyntax.
			With(slog.Int("position", p.pos)).
			Detail("unexpected tokens out of scope: %s", strings.Join(rest, " "))
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("token_count", len(tokens)),
		slog.String("expr", fmt.Sprintf("%T", e)))

	return e, nil
}

// parser holds the parser state.
type parser struct {
	tokens []Token
	pos    int
}

// peek returns the next token without consuming it.
func (p *parser) peek() (Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}

	return Token{}, false
}

// next consumes and returns the next token.
func (p *parser) next() Token {
	t := p.tokens[p.pos]
	p.pos++

	return t
}

// expect consumes the next token if it has the given kind.
func (p *parser) expect(kind Kind) error {
	t, ok := p.peek()
	if !ok {
		return ErrWrongSyntax.Detail("expected '%s' but found none", kind)
	}

	if t.Kind != kind {
		return ErrWrongSyntax.
			With(slog.Int("position", p.pos)).
			Detail("expected '%s' but found '%s'", kind, t.Text)
	}

	p.pos++

	return nil
}

// parseExpr dispatches on the next token.
func (p *parser) parseExpr() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, ErrWrongSyntax.Detail("expected expression but found none")
	}

	switch t.Kind {
	case KindInt:
		return p.parseInt()

	case KindBool:
		p.next()

		return &BoolLit{Value: t.Text == "true"}, nil

	case KindIdent:
		p.next()

		return &Ident{Name: t.Text}, nil

	case KindLet:
		return p.parseLet()

	case KindIf:
		return p.parseIf()

	case KindFunction:
		return p.parseFunction()

	case KindLParen:
		return p.parseParen()

	case KindLBracket:
		return p.parseList()

	case KindListOp:
		return p.parseListOp()

	case KindNot:
		p.next()

		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		return &Unary{Op: t.Text, Operand: operand}, nil

	default:
		return nil, ErrWrongSyntax.
			With(slog.Int("position", p.pos)).
			Detail("unexpected token '%s'", t.Text)
	}
}

func (p *parser) parseInt() (Expr, error) {
	t := p.next()

	n, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return nil, ErrWrongSyntax.
			With(slog.String("literal", t.Text)).
			Detail("integer literal '%s' out of range", t.Text)
	}

	return &IntLit{Value: n}, nil
}

// parseLet parses: "let" ["rec"] name [params] "=" value ["in" body].
func (p *parser) parseLet() (Expr, error) {
	if err := p.expect(KindLet); err != nil {
		return nil, err
	}

	if t, ok := p.peek(); ok && t.Kind == KindRec {
		return p.parseLetRec()
	}

	name, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var params []Expr

	if t, ok := p.peek(); !ok || t.Kind != KindEq {
		if params, err = p.parseExprs(KindEq); err != nil {
			return nil, err
		}
	}

	if err := p.expect(KindEq); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseLetBody()
	if err != nil {
		return nil, err
	}

	return &Let{Name: name, Params: params, Value: value, Body: body}, nil
}

// parseLetRec parses the remainder of "let rec" name params "=" value
// ["in" body].
func (p *parser) parseLetRec() (Expr, error) {
	if err := p.expect(KindRec); err != nil {
		return nil, err
	}

	name, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	params, err := p.parseExprs(KindEq)
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindEq); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	body, err := p.parseLetBody()
	if err != nil {
		return nil, err
	}

	return &LetRec{Name: name, Params: params, Value: value, Body: body}, nil
}

// parseLetBody returns nil when the binding ends the block, otherwise it
// requires "in" and a body expression.
func (p *parser) parseLetBody() (Expr, error) {
	if t, ok := p.peek(); ok && t.Kind == KindEnd {
		return nil, nil
	}

	if err := p.expect(KindIn); err != nil {
		return nil, err
	}

	return p.parseExpr()
}

func (p *parser) parseIf() (Expr, error) {
	if err := p.expect(KindIf); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindThen); err != nil {
		return nil, err
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindElse); err != nil {
		return nil, err
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &If{Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseFunction() (Expr, error) {
	if err := p.expect(KindFunction); err != nil {
		return nil, err
	}

	params, err := p.parseExprs(KindArrow)
	if err != nil {
		return nil, err
	}

	if err := p.expect(KindArrow); err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Func{Params: params, Body: body}, nil
}

// parseParen parses a binary operation, an application, or a plain
// parenthesized expression, depending on what follows the first
// sub-expression.
func (p *parser) parseParen() (Expr, error) {
	if err := p.expect(KindLParen); err != nil {
		return nil, err
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	t, ok := p.peek()

	switch {
	case ok && t.Kind == KindSymbol:
		p.next()

		if !reSymbol.MatchString(t.Text) {
			return nil, ErrWrongSyntax.
				Detail("unexpected operation symbol '%s'", t.Text)
		}

		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expect(KindRParen); err != nil {
			return nil, err
		}

		return &Binary{Op: t.Text, Left: first, Right: right}, nil

	case ok && t.Kind != KindRParen:
		args, err := p.parseExprs(KindRParen)
		if err != nil {
			return nil, err
		}

		if err := p.expect(KindRParen); err != nil {
			return nil, err
		}

		return &Apply{Callee: first, Args: args}, nil

	default:
		if err := p.expect(KindRParen); err != nil {
			return nil, err
		}

		return first, nil
	}
}

func (p *parser) parseList() (Expr, error) {
	if err := p.expect(KindLBracket); err != nil {
		return nil, err
	}

	elems := make([]Expr, 0)

	for {
		t, ok := p.peek()
		if !ok || t.Kind == KindRBracket {
			break
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		elems = append(elems, e)
	}

	if err := p.expect(KindRBracket); err != nil {
		return nil, err
	}

	return &ListLit{Elems: elems}, nil
}

// parseListOp parses a selector, its leading arguments, and the subject list.
func (p *parser) parseListOp() (Expr, error) {
	t := p.next()

	op, ok := lookupListOp(strings.TrimPrefix(t.Text, "List."))
	if !ok {
		return nil, ErrWrongSyntax.
			With(slog.String("selector", t.Text)).
			Detail("invalid list operation '%s'", t.Text)
	}

	args := make([]Expr, 0, op.Arity())

	for range op.Arity() {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	list, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ListOp{Op: op, Args: args, List: list}, nil
}

// parseExprs parses expressions up to, but not including, a token of kind
// stop. The list must hold between 1 and maxParams expressions.
func (p *parser) parseExprs(stop Kind) ([]Expr, error) {
	list := make([]Expr, 0)

	for {
		t, ok := p.peek()
		if !ok {
			return nil, ErrWrongSyntax.Detail("expected '%s' but found none", stop)
		}

		if t.Kind == stop {
			break
		}

		if len(list) == maxParams {
			return nil, ErrWrongSyntax.
				With(slog.Int("limit", maxParams)).
				Detail("too many parameters passed to function")
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, ErrWrongSyntax.
				With(slog.String("stop", stop.String())).
				Wrap(fmt.Errorf("expected '%s' to delimit list of parameters: %w", stop, err))
		}

		list = append(list, e)
	}

	if len(list) == 0 {
		return nil, ErrWrongSyntax.Detail("no parameters passed to function")
	}

	return list, nil
}
