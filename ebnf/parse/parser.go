package parse

import (
	"errors"

	"github.com/dhamidi/cmb/cmb"
	"github.com/dhamidi/cmb/ebnf/grammar"
)

// Parser parses input with a compiled grammar.
type Parser struct {
	start string
	root  cmb.Parser[byte, *Node]
	top   cmb.Parser[byte, *Node]
}

// NewParser loads the grammar in filename and compiles it for start.
func NewParser(filename, start string, opts ...Option) (*Parser, error) {
	g, err := grammar.Load(filename)
	if err != nil {
		return nil, err
	}
	return Compile(g, start, opts...)
}

// Start returns the name of the start production.
func (p *Parser) Start() string {
	return p.start
}

// Root returns the combinator for the start production. It matches a
// prefix of its input and does not skip trailing trivia.
func (p *Parser) Root() cmb.Parser[byte, *Node] {
	return p.root
}

// Parse parses all of src and returns the tree of the start production.
// On failure the error is a *SyntaxError at the furthest position reached.
func (p *Parser) Parse(filename string, src []byte) (*Node, error) {
	node, err := cmb.Run(p.top, cmb.Bytes(src))
	var perr *cmb.ParseError
	if errors.As(err, &perr) {
		return nil, newSyntaxError(filename, src, perr.Furthest)
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}
