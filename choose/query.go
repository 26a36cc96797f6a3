// Package choose implements the fuzzy-picker surface spec.md §6.1 exposes
// as `choose(header, items, options) -> Option<Vec<Item>>`: a query
// language layered over github.com/junegunn/fzf's scoring engine, and a
// small full-screen picker UI built on the buffer/input packages.
//
// Query grounded on the teacher's fzf.go query parser/scorer, scoring plain
// string candidates and renamed to this package's own vocabulary; the
// underlying github.com/junegunn/fzf/src/algo matchers are
// unchanged.
package choose

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	algo.Init("default")
}

var matchSlab = util.MakeSlab(100*1024, 2048)

// termKind selects which fzf matcher a term uses.
type termKind int

const (
	termFuzzy termKind = iota
	termExact
	termPrefix
	termSuffix
)

// term is one atomic piece of a query: a pattern, its matcher kind, and
// whether it's negated.
type term struct {
	pattern  string
	runes    []rune
	kind     termKind
	negate   bool
	caseSens bool
}

// andGroup is a space-separated set of terms, all of which must match
// (logical AND).
type andGroup struct {
	terms []term
}

// Query is a parsed, reusable query: OR-groups of AND-terms, following the
// syntax " a b " (AND), "a | b" (OR), leading "!" (negate), leading "'"
// (exact), leading "^" (prefix), trailing "$" (suffix).
type Query struct {
	groups []andGroup
}

// ParseQuery parses raw into a Query ready for repeated Score calls.
func ParseQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}
	}
	var q Query
	for _, part := range strings.Split(raw, " | ") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if g := parseAndGroup(part); len(g.terms) > 0 {
			q.groups = append(q.groups, g)
		}
	}
	return q
}

// Empty reports whether the query has no terms (so every candidate is
// accepted unscored).
func (q Query) Empty() bool { return len(q.groups) == 0 }

func parseAndGroup(part string) andGroup {
	var g andGroup
	start := -1
	for i := 0; i <= len(part); i++ {
		atBoundary := i == len(part) || part[i] == ' ' || part[i] == '\t'
		switch {
		case !atBoundary && start < 0:
			start = i
		case atBoundary && start >= 0:
			g.terms = append(g.terms, parseTerm(part[start:i]))
			start = -1
		}
	}
	return g
}

func parseTerm(tok string) term {
	t := term{kind: termFuzzy}
	if len(tok) > 1 && tok[0] == '!' {
		t.negate = true
		tok = tok[1:]
	}
	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind = termExact
		tok = tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind = termPrefix
		tok = tok[1:]
	case len(tok) > 1 && tok[len(tok)-1] == '$':
		t.kind = termSuffix
		tok = tok[:len(tok)-1]
	}

	t.caseSens = containsUpper(tok)
	if !t.caseSens {
		tok = strings.ToLower(tok)
	}
	t.pattern = tok
	t.runes = []rune(tok)
	return t
}

func containsUpper(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsUpper(r) {
			return true
		}
		i += size
	}
	return false
}

// Score scores candidate against q, returning the best-matching OR-group's
// total score and whether anything matched at all. An empty query matches
// everything with score 0.
func (q Query) Score(candidate string) (score int, matched bool) {
	if q.Empty() {
		return 0, true
	}
	best := -1
	found := false
	for _, g := range q.groups {
		if s, ok := g.score(candidate); ok && s > best {
			best, found = s, true
		}
	}
	return best, found
}

func (g andGroup) score(candidate string) (int, bool) {
	total := 0
	for _, t := range g.terms {
		s, ok := t.score(candidate)
		if !ok {
			return 0, false
		}
		total += s
	}
	return total, true
}

func (t term) score(candidate string) (int, bool) {
	chars := util.ToChars([]byte(candidate))
	var match func(bool, bool, bool, *util.Chars, []rune, bool, *util.Slab) (algo.Result, *[]int)
	switch t.kind {
	case termExact:
		match = algo.ExactMatchNaive
	case termPrefix:
		match = algo.PrefixMatch
	case termSuffix:
		match = algo.SuffixMatch
	default:
		match = algo.FuzzyMatchV2
	}

	result, _ := match(t.caseSens, false, true, &chars, t.runes, false, matchSlab)
	matched := result.Start >= 0
	if t.negate {
		return 0, !matched
	}
	if !matched {
		return 0, false
	}
	return result.Score, true
}
