package grammar

import (
	"golang.org/x/exp/ebnf"
)

// TokenProductions are the lexical productions that form whole tokens.
var TokenProductions = []string{"identifier", "intConst", "charConst", "stringConst"}

const noMatch = -1

type memoKey struct {
	name   string
	offset int
}

// Matcher matches input prefixes against lexical productions. Repetitions
// are greedy and alternatives take the longest match, which is enough for
// the token productions of this grammar.
type Matcher struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar) *Matcher {
	return &Matcher{grammar: g}
}

// Match returns the length of the longest prefix of input matched by the
// named production, or -1 if it does not match at all.
func (m *Matcher) Match(production string, input []byte) int {
	m.input = input
	m.memo = make(map[memoKey]int)
	m.visiting = make(map[memoKey]bool)
	return m.matchName(production, 0)
}

// Classify tries every token production at the start of input and returns
// the one with the longest match. It returns "" and 0 when none applies.
func (m *Matcher) Classify(input []byte) (string, int) {
	var best string
	bestLen := 0
	for _, name := range TokenProductions {
		if n := m.Match(name, input); n > bestLen {
			best, bestLen = name, n
		}
	}
	return best, bestLen
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		end := offset + len(e.String)
		if end > len(m.input) || string(m.input[offset:end]) != e.String {
			return noMatch
		}
		return len(e.String)

	case *ebnf.Range:
		if offset >= len(m.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return noMatch
		}
		c := m.input[offset]
		if c < e.Begin.String[0] || c > e.End.String[0] {
			return noMatch
		}
		return 1

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			best = max(best, m.match(alt, offset))
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return max(0, m.match(e.Body, offset))

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return noMatch
}

// matchName memoizes per offset and treats a left-recursive reference as a
// failed match.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name, offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.visiting[key] {
		return noMatch
	}
	prod, ok := m.grammar[name]
	if !ok {
		return noMatch
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}
