// Package grammar loads and checks EBNF grammars written in the notation of
// golang.org/x/exp/ebnf.
package grammar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// Grammar is a set of productions indexed by name.
type Grammar = ebnf.Grammar

// Load reads and parses a grammar file.
func Load(filename string) (Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return Parse(filename, f)
}

// Parse parses a grammar from src. filename is only used in error
// positions.
func Parse(filename string, src io.Reader) (Grammar, error) {
	g, err := ebnf.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production used is defined, that every
// production is reachable from start and that lexical productions only
// refer to lexical productions.
func Verify(g Grammar, start string) error {
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// Errors splits an error returned by Parse or Verify into the individual
// problems the ebnf package reported.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Slice {
			continue
		}
		list := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := v.Index(i).Interface().(error); ok {
				list = append(list, item)
			}
		}
		return list
	}
	return []error{err}
}

// IsLexical reports whether name denotes a lexical production. As in the
// Go specification, lexical productions start with a lower-case letter
// (number, identifier) and syntactic ones with an upper-case letter
// (Expression). No whitespace is skipped inside lexical productions.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}
