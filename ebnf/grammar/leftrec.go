package grammar

import (
	"slices"
	"strings"

	"golang.org/x/exp/ebnf"
)

// LeftRecursionError reports a chain of productions that can reach the
// first of them again without consuming input.
type LeftRecursionError struct {
	Cycle []string
}

func (e *LeftRecursionError) Error() string {
	return "left recursion: " + strings.Join(e.Cycle, " -> ")
}

// CheckLeftRecursion returns a *LeftRecursionError if any production of g
// is left-recursive, directly or through other productions. Combinator
// parsers built from such a grammar would never terminate.
func CheckLeftRecursion(g Grammar) error {
	nullable := Nullable(g)

	edges := make(map[string][]string, len(g))
	for name, prod := range g {
		edges[name] = leftNames(prod.Expr, nullable)
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(g))
	var stack []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = visiting
		stack = append(stack, name)
		for _, next := range edges[name] {
			if _, defined := g[next]; !defined {
				continue
			}
			switch state[next] {
			case visiting:
				i := slices.Index(stack, next)
				return append(slices.Clone(stack[i:]), next)
			case unvisited:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if state[name] != unvisited {
			continue
		}
		if cycle := visit(name); cycle != nil {
			return &LeftRecursionError{Cycle: cycle}
		}
	}
	return nil
}

// Nullable returns the set of productions that can match the empty input.
func Nullable(g Grammar) map[string]bool {
	nullable := make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for name, prod := range g {
			if !nullable[name] && nullableExpr(prod.Expr, nullable) {
				nullable[name] = true
				changed = true
			}
		}
	}
	return nullable
}

func nullableExpr(expr ebnf.Expression, nullable map[string]bool) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *ebnf.Token:
		return e.String == ""
	case *ebnf.Range:
		return false
	case *ebnf.Name:
		return nullable[e.String]
	case ebnf.Sequence:
		for _, item := range e {
			if !nullableExpr(item, nullable) {
				return false
			}
		}
		return true
	case ebnf.Alternative:
		for _, alt := range e {
			if nullableExpr(alt, nullable) {
				return true
			}
		}
		return false
	case *ebnf.Option, *ebnf.Repetition:
		return true
	case *ebnf.Group:
		return nullableExpr(e.Body, nullable)
	default:
		return false
	}
}

// leftNames returns the productions expr can invoke before consuming any
// input.
func leftNames(expr ebnf.Expression, nullable map[string]bool) []string {
	switch e := expr.(type) {
	case *ebnf.Name:
		return []string{e.String}
	case ebnf.Sequence:
		var names []string
		for _, item := range e {
			names = append(names, leftNames(item, nullable)...)
			if !nullableExpr(item, nullable) {
				break
			}
		}
		return names
	case ebnf.Alternative:
		var names []string
		for _, alt := range e {
			names = append(names, leftNames(alt, nullable)...)
		}
		return names
	case *ebnf.Option:
		return leftNames(e.Body, nullable)
	case *ebnf.Repetition:
		return leftNames(e.Body, nullable)
	case *ebnf.Group:
		return leftNames(e.Body, nullable)
	default:
		return nil
	}
}
