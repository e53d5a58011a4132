// Package grammar holds the EBNF description of the language and a
// recognizer for its lexical productions.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Start is the production a source file must match.
const Start = "TranslationUnit"

//go:embed minijava.ebnf
var source []byte

// Source returns the grammar text.
func Source() []byte {
	return slices.Clone(source)
}

// Load parses the grammar and verifies that every production is defined
// and reachable from Start.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("minijava.ebnf", bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// IsLexical reports whether name is a lexical production.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// Terminals returns the sorted literal tokens of the syntactic productions:
// the keywords and punctuators a lexer has to recognize.
func Terminals(g ebnf.Grammar) []string {
	seen := make(map[string]bool)
	for name, prod := range g {
		if IsLexical(name) {
			continue
		}
		collectTokens(prod.Expr, seen)
	}
	out := make([]string, 0, len(seen))
	for tok := range seen {
		out = append(out, tok)
	}
	slices.Sort(out)
	return out
}

func collectTokens(expr ebnf.Expression, seen map[string]bool) {
	switch e := expr.(type) {
	case *ebnf.Token:
		seen[e.String] = true
	case ebnf.Sequence:
		for _, item := range e {
			collectTokens(item, seen)
		}
	case ebnf.Alternative:
		for _, alt := range e {
			collectTokens(alt, seen)
		}
	case *ebnf.Group:
		collectTokens(e.Body, seen)
	case *ebnf.Option:
		collectTokens(e.Body, seen)
	case *ebnf.Repetition:
		collectTokens(e.Body, seen)
	}
}
