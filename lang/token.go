package lang

import (
	"slices"
	"unicode"
)

// Kind classifies a [Token].
type Kind int

// Token kinds.
const (
	KindInt Kind = iota
	KindBool
	KindLet
	KindRec
	KindEq
	KindIn
	KindIf
	KindThen
	KindElse
	KindFunction
	KindArrow
	KindEnd
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindListOp
	KindNot
	KindSymbol
	KindIdent
)

var kindNames = [...]string{
	KindInt:      "int",
	KindBool:     "bool",
	KindLet:      "let",
	KindRec:      "rec",
	KindEq:       "=",
	KindIn:       "in",
	KindIf:       "if",
	KindThen:     "then",
	KindElse:     "else",
	KindFunction: "function",
	KindArrow:    "->",
	KindEnd:      ";;",
	KindLParen:   "(",
	KindRParen:   ")",
	KindLBracket: "[",
	KindRBracket: "]",
	KindListOp:   "list operation",
	KindNot:      "!",
	KindSymbol:   "symbol",
	KindIdent:    "identifier",
}

// String returns the literal text of keyword and punctuation kinds, or a
// descriptive name for the others.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "unknown"
}

// keywords maps the fixed keyword and punctuation words to their kinds.
var keywords = map[string]Kind{
	"let":      KindLet,
	"rec":      KindRec,
	"=":        KindEq,
	"in":       KindIn,
	"if":       KindIf,
	"then":     KindThen,
	"else":     KindElse,
	"function": KindFunction,
	"->":       KindArrow,
	";;":       KindEnd,
	"!":        KindNot,
}

// Keywords returns the reserved words of the language in sorted order,
// including the boolean literals.
func Keywords() []string {
	words := []string{"true", "false"}

	for word := range keywords {
		if unicode.IsLetter(rune(word[0])) {
			words = append(words, word)
		}
	}

	slices.Sort(words)

	return words
}

// Token is a classified word of source text.
type Token struct {
	Text string `json:"text" yaml:"text"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// String returns the token's source text.
func (t Token) String() string { return t.Text }

// MarshalText renders a kind by name for JSON and YAML token dumps.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
