package repl

import (
	"strings"
	"unicode"

	"github.com/ardnew/miniml/lang"
)

// listOpParams names the arguments of each list operation, the subject list
// last.
var listOpParams = map[string][]string{
	"cons":    {"elem", "list"},
	"hd":      {"list"},
	"tl":      {"list"},
	"isEmpty": {"list"},
	"length":  {"list"},
	"append":  {"front", "list"},
	"map":     {"f", "list"},
	"filter":  {"pred", "list"},
	"exists":  {"pred", "list"},
	"forAll":  {"pred", "list"},
	"fold":    {"f", "seed", "list"},
	"rev":     {"list"},
}

// application is the function application enclosing the cursor.
type application struct {
	name     string // applied function, e.g. "List.fold" or a bound name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if the cursor is in the argument list
}

// detectApplication finds the application whose arguments the cursor is
// typing. Applications are juxtaposition: the first term of the innermost
// open parenthesis or bracket (or of the whole line) is the function, and
// each later term is an argument. A parenthesized group counts as one term.
// Keywords, operators and commas start a new term sequence.
func detectApplication(input string, cursor int) application {
	if cursor > len(input) {
		cursor = len(input)
	}

	text := input[:cursor]
	start := 0
	depth := 0

scan:
	for i := len(text) - 1; i >= 0; i-- {
		switch text[i] {
		case ')', ']':
			depth++
		case '(', '[':
			if depth == 0 {
				start = i + 1

				break scan
			}

			depth--
		}
	}

	seg := text[start:]
	terms := splitTerms(seg)

	for i := len(terms) - 1; i >= 0; i-- {
		if isTermSeparator(terms[i]) {
			terms = terms[i+1:]

			break
		}
	}

	if len(terms) == 0 {
		return application{}
	}

	args := len(terms) - 1

	trailing := strings.TrimRightFunc(seg, unicode.IsSpace) != seg
	if !trailing {
		if args == 0 {
			// still typing the function name
			return application{}
		}

		args--
	}

	return application{name: terms[0], argIndex: args, inCall: true}
}

// splitTerms splits s on whitespace and commas outside of parentheses and
// brackets. Each comma is kept as its own term.
func splitTerms(s string) []string {
	var (
		terms []string
		cur   strings.Builder
		depth int
	)

	flush := func() {
		if cur.Len() > 0 {
			terms = append(terms, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && unicode.IsSpace(r):
			flush()

			continue
		case depth == 0 && r == ',':
			flush()
			terms = append(terms, ",")

			continue
		}

		cur.WriteRune(r)
	}

	flush()

	return terms
}

// isTermSeparator reports whether term ends an application: a keyword other
// than a boolean literal, a comma, a block terminator, or an operator.
func isTermSeparator(term string) bool {
	switch term {
	case "let", "rec", "in", "if", "then", "else", "function", ",", ";;":
		return true
	}

	return strings.Trim(term, "+-*/%^<>=!&|") == ""
}

// signatureOf returns the parameter names of the function called name: a
// list operation ("List.map") or a closure bound in env.
func signatureOf(env *lang.Env, name string) (params []string, ok bool) {
	if op, found := strings.CutPrefix(name, listPrefix); found {
		params, ok = listOpParams[op]

		return params, ok
	}

	v, found := env.Lookup(name)
	if !found {
		return nil, false
	}

	switch fn := v.(type) {
	case *lang.Closure:
		return fn.Params, true
	case *lang.RecClosure:
		return fn.Params, true
	default:
		return nil, false
	}
}

// renderSignatureHint renders "name p1 p2 ..." with the parameter at
// argIndex highlighted. Arguments past the last parameter highlight
// nothing.
func renderSignatureHint(name string, params []string, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))

	for i, p := range params {
		b.WriteString(" ")

		if i == argIndex {
			b.WriteString(currentParamStyle.Render(p))
		} else {
			b.WriteString(signatureStyle.Render(p))
		}
	}

	return b.String()
}
