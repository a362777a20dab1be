package grammar

import (
	"fmt"
	"slices"

	"golang.org/x/exp/ebnf"
)

// LexicalError reports a lexical production that refers to a syntactic
// one. Trivia is set when the reference was found while checking the
// productions reachable from a trivia production.
type LexicalError struct {
	Production string
	Ref        string
	Trivia     bool
}

func (e *LexicalError) Error() string {
	if e.Trivia {
		return fmt.Sprintf("trivia production %q refers to syntactic production %q", e.Production, e.Ref)
	}
	return fmt.Sprintf("lexical production %q refers to syntactic production %q", e.Production, e.Ref)
}

// References returns the productions expr refers to, in order of
// appearance.
func References(expr ebnf.Expression) []string {
	var names []string
	var walk func(ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case *ebnf.Name:
			names = append(names, e.String)
		case ebnf.Sequence:
			for _, item := range e {
				walk(item)
			}
		case ebnf.Alternative:
			for _, alt := range e {
				walk(alt)
			}
		case *ebnf.Option:
			walk(e.Body)
		case *ebnf.Repetition:
			walk(e.Body)
		case *ebnf.Group:
			walk(e.Body)
		}
	}
	walk(expr)
	return names
}

// CheckLexical returns a *LexicalError if a lexical production refers to
// a syntactic production. Undefined references are left to Verify.
func CheckLexical(g Grammar) error {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if !IsLexical(name) {
			continue
		}
		for _, ref := range References(g[name].Expr) {
			if _, ok := g[ref]; ok && !IsLexical(ref) {
				return &LexicalError{Production: name, Ref: ref}
			}
		}
	}
	return nil
}

// CheckTrivia returns a *LexicalError if the trivia production, or any
// production it reaches, refers to a syntactic production. Syntactic
// productions skip trivia themselves, so such a grammar would recurse
// without end.
func CheckTrivia(g Grammar, trivia string) error {
	if !IsLexical(trivia) {
		return &LexicalError{Production: trivia, Ref: trivia, Trivia: true}
	}
	seen := map[string]bool{trivia: true}
	queue := []string{trivia}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		prod, ok := g[name]
		if !ok {
			continue
		}
		for _, ref := range References(prod.Expr) {
			if _, ok := g[ref]; !ok || seen[ref] {
				continue
			}
			if !IsLexical(ref) {
				return &LexicalError{Production: trivia, Ref: ref, Trivia: true}
			}
			seen[ref] = true
			queue = append(queue, ref)
		}
	}
	return nil
}
