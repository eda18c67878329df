// Package tokenize splits the text of a syntax node into sub-word tokens.
package tokenize

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokenizer splits text into an ordered sequence of tokens. An empty result
// is allowed; callers substitute a placeholder.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Func adapts an ordinary function to the Tokenizer interface.
type Func func(text string) ([]string, error)

// Tokenize calls f(text).
func (f Func) Tokenize(text string) ([]string, error) {
	return f(text)
}

// Whole treats the entire text as a single token.
type Whole struct{}

// Tokenize returns text as the only token, or nothing for empty text.
func (Whole) Tokenize(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}

// SubWord splits on whitespace and punctuation, then on snake_case and
// camelCase boundaries. Punctuation runs are kept as tokens of their own so
// operators survive ("+=" stays "+=").
type SubWord struct {
	// Lower folds every token to lower case.
	Lower bool
}

// Tokenize never fails.
func (s SubWord) Tokenize(text string) ([]string, error) {
	var out []string
	for _, field := range strings.Fields(text) {
		for _, piece := range splitPunct(field) {
			for _, w := range splitCase(piece) {
				if s.Lower {
					w = strings.ToLower(w)
				}
				out = append(out, w)
			}
		}
	}
	return out, nil
}

// splitPunct separates runs of letters/digits from runs of other symbols.
// Underscores act as separators and are dropped.
func splitPunct(s string) []string {
	var out []string
	var cur strings.Builder
	curWord := false

	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		if r == '_' {
			flush()
			continue
		}
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if cur.Len() > 0 && word != curWord {
			flush()
		}
		curWord = word
		cur.WriteRune(r)
	}
	flush()
	return out
}

// splitCase breaks a camelCase or PascalCase word; "HTTPServer" becomes
// "HTTP", "Server" and "parseV2" becomes "parse", "V2".
func splitCase(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return []string{s}
	}
	var out []string
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur)
		if !boundary && i+1 < len(runes) {
			boundary = unicode.IsUpper(prev) && unicode.IsUpper(cur) && unicode.IsLower(runes[i+1])
		}
		if boundary {
			out = append(out, string(runes[start:i]))
			start = i
		}
	}
	return append(out, string(runes[start:]))
}

// ByName resolves a configured tokenizer name. The empty name and "none"
// resolve to nil, meaning one token per node without sub-word splitting.
func ByName(name string) (Tokenizer, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return nil, nil
	case "whole":
		return Whole{}, nil
	case "subword":
		return SubWord{}, nil
	case "subword-lower":
		return SubWord{Lower: true}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer: %q", name)
	}
}
