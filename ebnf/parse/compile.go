package parse

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dhamidi/cmb/cmb"
	"github.com/dhamidi/cmb/ebnf/grammar"
	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

// nodes is what every compiled expression produces: the nodes it matched,
// in source order.
type nodes = cmb.Parser[byte, []*Node]

// Option configures Compile.
type Option func(*compiler)

// WithSkip replaces the trivia skipped before terminals in syntactic
// productions. The default skips ASCII whitespace.
func WithSkip[S any](trivia cmb.Parser[byte, S]) Option {
	return func(c *compiler) {
		c.skip = cmb.Map(trivia, func(S) struct{} { return struct{}{} })
	}
}

// WithTriviaProduction uses the named lexical production of the grammar as
// trivia, e.g. one that matches whitespace and comments.
func WithTriviaProduction(name string) Option {
	return func(c *compiler) {
		c.triviaName = name
	}
}

// WithLogger traces every production through log at debug level.
func WithLogger(log commonlog.Logger) Option {
	return func(c *compiler) {
		c.log = log
	}
}

type compiler struct {
	g          grammar.Grammar
	rules      map[string]cmb.Parser[byte, *Node] // references, resolved lazily
	bodies     map[string]cmb.Parser[byte, *Node] // compiled productions
	skip       cmb.Parser[byte, struct{}]
	triviaName string
	log        commonlog.Logger
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Compile turns the productions of g into combinator parsers and returns a
// Parser for start. Productions are compiled eagerly; references between
// them are resolved on first use, so the result is safe for concurrent
// use.
//
// Left-recursive grammars are rejected with a *grammar.LeftRecursionError,
// and lexical or trivia productions that refer to syntactic ones with a
// *grammar.LexicalError.
func Compile(g grammar.Grammar, start string, opts ...Option) (*Parser, error) {
	if _, ok := g[start]; !ok {
		return nil, fmt.Errorf("start production %q not found in grammar", start)
	}
	if err := grammar.CheckLeftRecursion(g); err != nil {
		return nil, err
	}

	c := &compiler{
		g:      g,
		rules:  make(map[string]cmb.Parser[byte, *Node], len(g)),
		bodies: make(map[string]cmb.Parser[byte, *Node], len(g)),
		skip:   cmb.Map(cmb.Satisfy(isSpace), func(byte) struct{} { return struct{}{} }),
	}
	for _, opt := range opts {
		opt(c)
	}

	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
		c.rules[name] = c.reference(name)
	}
	slices.Sort(names)

	if c.triviaName != "" {
		rule, ok := c.rules[c.triviaName]
		if !ok {
			return nil, fmt.Errorf("trivia production %q not found in grammar", c.triviaName)
		}
		if !grammar.IsLexical(c.triviaName) {
			return nil, fmt.Errorf("trivia production %q must be lexical", c.triviaName)
		}
		if err := grammar.CheckTrivia(g, c.triviaName); err != nil {
			return nil, err
		}
		c.skip = cmb.Map(rule, func(*Node) struct{} { return struct{}{} })
	}
	if err := grammar.CheckLexical(g); err != nil {
		return nil, err
	}

	for _, name := range names {
		body, err := c.production(name, g[name])
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		c.bodies[name] = body
	}

	root := c.rules[start]
	return &Parser{
		start: start,
		root:  root,
		top:   cmb.Left(root, cmb.Parser[byte, []struct{}](cmb.Many0(c.skip))),
	}, nil
}

func (c *compiler) reference(name string) cmb.Parser[byte, *Node] {
	return cmb.Lazy(func() cmb.Parser[byte, *Node] {
		return c.bodies[name]
	})
}

func (c *compiler) production(name string, prod *ebnf.Production) (cmb.Parser[byte, *Node], error) {
	lexical := grammar.IsLexical(name)
	body, err := c.expr(prod.Expr, lexical)
	if err != nil {
		return nil, err
	}

	var p cmb.Parser[byte, *Node] = cmb.Map(
		cmb.Parser[byte, cmb.Spanned[[]*Node]](cmb.WithSpan(body)),
		func(s cmb.Spanned[[]*Node]) *Node {
			return newProductionNode(name, lexical, s)
		},
	)
	if c.log != nil {
		p = cmb.Trace(name, p, c.log)
	}
	return p, nil
}

func newProductionNode(name string, lexical bool, s cmb.Spanned[[]*Node]) *Node {
	if lexical {
		var text strings.Builder
		for _, child := range s.Value {
			text.WriteString(child.Text)
		}
		return NewTerminal(name, text.String(), s.Start, s.End)
	}

	node := NewNonTerminal(name)
	for _, child := range s.Value {
		node.AddChild(child)
	}
	if len(node.Children) == 0 {
		node.Span = Span{Start: s.Start, End: s.End}
	}
	return node
}

// expr compiles an expression. lexical tells whether it belongs to a
// lexical production; outside of those trivia is skipped before every
// terminal and every reference to a lexical production.
func (c *compiler) expr(expr ebnf.Expression, lexical bool) (nodes, error) {
	switch e := expr.(type) {
	case nil:
		return cmb.Pure[byte, []*Node](nil), nil

	case *ebnf.Token:
		return c.terminal(cmb.Literal([]byte(e.String)...), lexical), nil

	case *ebnf.Range:
		lo, hi := e.Begin.String, e.End.String
		if len(lo) != 1 || len(hi) != 1 {
			return nil, fmt.Errorf("%s: range %q … %q: only single-byte bounds are supported", e.Pos(), lo, hi)
		}
		in := cmb.Satisfy(func(b byte) bool { return b >= lo[0] && b <= hi[0] })
		return c.terminal(cmb.Map(in, func(b byte) []byte { return []byte{b} }), lexical), nil

	case *ebnf.Name:
		rule, ok := c.rules[e.String]
		if !ok {
			return nil, fmt.Errorf("%s: undefined production %q", e.Pos(), e.String)
		}
		var p nodes = cmb.Map(rule, func(n *Node) []*Node { return []*Node{n} })
		if !lexical && grammar.IsLexical(e.String) {
			p = c.skipped(p)
		}
		return p, nil

	case ebnf.Sequence:
		parts, err := c.exprs(e, lexical)
		if err != nil {
			return nil, err
		}
		return cmb.Map(cmb.Parser[byte, [][]*Node](cmb.Seq(parts...)), flatten), nil

	case ebnf.Alternative:
		parts, err := c.exprs(e, lexical)
		if err != nil {
			return nil, err
		}
		return cmb.Alt(parts...), nil

	case *ebnf.Option:
		body, err := c.expr(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return cmb.Map(cmb.Parser[byte, cmb.Option[[]*Node]](cmb.Opt(body)), func(o cmb.Option[[]*Node]) []*Node {
			return o.Value
		}), nil

	case *ebnf.Repetition:
		body, err := c.expr(e.Body, lexical)
		if err != nil {
			return nil, err
		}
		return cmb.Map(cmb.Parser[byte, [][]*Node](cmb.Many0(body)), flatten), nil

	case *ebnf.Group:
		return c.expr(e.Body, lexical)

	case *ebnf.Bad:
		return nil, fmt.Errorf("%s: %s", e.Pos(), e.Error)

	default:
		return nil, fmt.Errorf("unexpected expression type %T", expr)
	}
}

func (c *compiler) exprs(list []ebnf.Expression, lexical bool) ([]nodes, error) {
	parts := make([]nodes, 0, len(list))
	for _, item := range list {
		p, err := c.expr(item, lexical)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// terminal turns a matcher into a leaf node.
func (c *compiler) terminal(match cmb.Parser[byte, []byte], lexical bool) nodes {
	var p nodes = cmb.Map(
		cmb.Parser[byte, cmb.Spanned[[]byte]](cmb.WithSpan(match)),
		func(s cmb.Spanned[[]byte]) []*Node {
			text := string(s.Value)
			return []*Node{NewTerminal(strconv.Quote(text), text, s.Start, s.End)}
		},
	)
	if lexical {
		return p
	}
	return c.skipped(p)
}

func (c *compiler) skipped(p nodes) nodes {
	return cmb.Skip(c.skip, p)
}

func flatten(lists [][]*Node) []*Node {
	var out []*Node
	for _, list := range lists {
		out = append(out, list...)
	}
	return out
}
