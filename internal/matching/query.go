package matching

import (
	"fmt"
	"strings"
)

// Mode selects how the tokens of a Query combine.
type Mode int

const (
	// MatchAny is satisfied by any single token. Recommendations use it so a
	// partial keyword overlap still surfaces candidates.
	MatchAny Mode = iota
	// MatchAll requires every token.
	MatchAll
)

// ParseMode maps the API spelling ("any", "all") to a Mode. Empty means any.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return MatchAny, nil
	case "all":
		return MatchAll, nil
	default:
		return MatchAny, fmt.Errorf("unknown match mode %q", s)
	}
}

func (m Mode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// Query is a boolean text query built from one free-text field.
type Query struct {
	Mode   Mode
	Tokens []string
}

// NewQuery tokenizes text into a query of the given mode. Empty text yields
// the NoMatchToken placeholder, never an empty query.
func NewQuery(text string, mode Mode) Query {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		tokens = []string{NoMatchToken}
	}
	return Query{Mode: mode, Tokens: tokens}
}

// AnyOf builds an OR-style query.
func AnyOf(text string) Query { return NewQuery(text, MatchAny) }

// AllOf builds an AND-style query.
func AllOf(text string) Query { return NewQuery(text, MatchAll) }

// IsPlaceholder reports whether the query came from empty text.
func (q Query) IsPlaceholder() bool {
	return len(q.Tokens) == 1 && q.Tokens[0] == NoMatchToken
}

// TSQuery renders the query for PostgreSQL to_tsquery: "a & b" or "a | b".
func (q Query) TSQuery() string {
	sep := " | "
	if q.Mode == MatchAll {
		sep = " & "
	}
	return strings.Join(q.tokens(), sep)
}

func (q Query) tokens() []string {
	if len(q.Tokens) == 0 {
		return []string{NoMatchToken}
	}
	return q.Tokens
}
