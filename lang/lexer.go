package lang

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"
)

var (
	reInt    = regexp.MustCompile(`^(?:-[0-9]+|[0-9]+)$`)
	reBool   = regexp.MustCompile(`^(?:true|false)$`)
	reListOp = regexp.MustCompile(`^List\.[a-z]\w*$`)
	reSymbol = regexp.MustCompile(`^(?:\+|-|\*|/|&|\||>|<|>=|<=|%|\^|==|!=)$`)
	reIdent  = regexp.MustCompile(`^[a-z]\w*$`)
)

// runs maps a bracket character to the kind of each token in a glued run of
// that character, e.g. "(((" or "]]".
var runs = map[byte]Kind{
	'(': KindLParen,
	')': KindRParen,
	'[': KindLBracket,
	']': KindRBracket,
}

// peel describes how a word with glued punctuation is split into pieces,
// each of which is classified independently.
type peel struct {
	re    *regexp.Regexp
	split func(w string) []string
}

// peels are tried in order after the single-category rules fail.
var peels = []peel{
	{
		re:    regexp.MustCompile(`^![\w().]+$`),
		split: func(w string) []string { return []string{w[:1], w[1:]} },
	},
	{
		re:    regexp.MustCompile(`^\(+[\w\[\].]+$`),
		split: leading('('),
	},
	{
		re:    regexp.MustCompile(`^[\w\[\].]+\)+$`),
		split: trailing(')'),
	},
	{
		re:    regexp.MustCompile(`^\(+[\w\[\].]+\)+$`),
		split: wrapped('(', ')'),
	},
	{
		re:    regexp.MustCompile(`^\[+[\w().]+$`),
		split: leading('['),
	},
	{
		re:    regexp.MustCompile(`^[\w().]+\]+$`),
		split: trailing(']'),
	},
	{
		re:    regexp.MustCompile(`^\[+[\w().]*\]+$`),
		split: wrapped('[', ']'),
	},
}

// leading splits after the last occurrence of open.
func leading(open byte) func(string) []string {
	return func(w string) []string {
		i := strings.LastIndexByte(w, open) + 1

		return []string{w[:i], w[i:]}
	}
}

// trailing splits before the first occurrence of closing.
func trailing(closing byte) func(string) []string {
	return func(w string) []string {
		i := strings.IndexByte(w, closing)

		return []string{w[:i], w[i:]}
	}
}

// wrapped splits a leading run of open and a trailing run of closing from
// the text between them.
func wrapped(open, closing byte) func(string) []string {
	return func(w string) []string {
		i := strings.LastIndexByte(w, open) + 1
		j := strings.IndexByte(w, closing)

		return []string{w[:i], w[i:j], w[j:]}
	}
}

// Tokenize splits a block of source text into tokens.
//
// Words are separated by whitespace and commas. Punctuation glued to a word,
// such as "(List.hd" or "x)))", is peeled off and classified separately.
func Tokenize(block string) ([]Token, error) {
	words := strings.FieldsFunc(block, isWordSep)

	tokens := make([]Token, 0, len(words))

	for _, word := range words {
		var err error
		if tokens, err = appendWord(tokens, word); err != nil {
			return nil, err
		}
	}

	return tokens, nil
}

func appendWord(tokens []Token, word string) ([]Token, error) {
	if strings.TrimSpace(word) == "" {
		return tokens, nil
	}

	if kind, ok := classify(word); ok {
		return append(tokens, Token{Text: word, Kind: kind}), nil
	}

	if kind, ok := runs[word[0]]; ok && isRun(word) {
		for i := range len(word) {
			tokens = append(tokens, Token{Text: word[i : i+1], Kind: kind})
		}

		return tokens, nil
	}

	for _, p := range peels {
		if !p.re.MatchString(word) {
			continue
		}

		var err error

		for _, piece := range p.split(word) {
			if tokens, err = appendWord(tokens, piece); err != nil {
				return nil, err
			}
		}

		return tokens, nil
	}

	if reSymbol.MatchString(word) {
		return append(tokens, Token{Text: word, Kind: KindSymbol}), nil
	}

	if reIdent.MatchString(word) {
		return append(tokens, Token{Text: word, Kind: KindIdent}), nil
	}

	return nil, ErrIllegalToken.
		With(slog.String("word", word)).
		Detail("'%s' detected, spacing in between might help", word)
}

// isWordSep reports whether r separates words.
func isWordSep(r rune) bool { return r == ',' || unicode.IsSpace(r) }

// classify matches the single-token categories that take precedence over
// punctuation peeling.
func classify(word string) (Kind, bool) {
	switch {
	case reInt.MatchString(word):
		return KindInt, true
	case reBool.MatchString(word):
		return KindBool, true
	case reListOp.MatchString(word):
		return KindListOp, true
	}

	kind, ok := keywords[word]

	return kind, ok
}

// isRun reports whether word consists of a single repeated byte.
func isRun(word string) bool {
	return strings.Count(word, word[:1]) == len(word)
}
