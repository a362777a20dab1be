// Package parse compiles EBNF grammars into combinator parsers that produce
// concrete syntax trees.
package parse

import (
	"fmt"
	"strings"
)

// Span represents a range of byte offsets in the source, End exclusive.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Node represents a node in the concrete syntax tree.
// Terminals and lexical productions carry Text and no Children; syntactic
// productions carry Children.
type Node struct {
	Kind     string  `json:"kind"`               // Production name, or the quoted literal of a terminal
	Children []*Node `json:"children,omitempty"` // Child nodes (nil for terminals)
	Text     string  `json:"text,omitempty"`     // Matched text of terminals
	Span     Span    `json:"span"`               // Source span covering this node
}

// IsTerminal returns true if this is a leaf node.
func (n *Node) IsTerminal() bool {
	return n.Children == nil
}

// AddChild appends a child node and updates the span.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if len(n.Children) == 1 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
}

// NewTerminal creates a terminal node.
func NewTerminal(kind, text string, start, end int) *Node {
	return &Node{
		Kind: kind,
		Text: text,
		Span: Span{Start: start, End: end},
	}
}

// NewNonTerminal creates a non-terminal node without children.
func NewNonTerminal(kind string) *Node {
	return &Node{
		Kind:     kind,
		Children: make([]*Node, 0),
	}
}

// Find returns the first node of the given kind in a pre-order walk, or nil.
func (n *Node) Find(kind string) *Node {
	if n.Kind == kind {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// String renders the tree, one node per line, children indented.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if n.IsTerminal() {
		fmt.Fprintf(sb, "%s %q [%d,%d)\n", n.Kind, n.Text, n.Span.Start, n.Span.End)
		return
	}
	fmt.Fprintf(sb, "%s [%d,%d)\n", n.Kind, n.Span.Start, n.Span.End)
	for _, child := range n.Children {
		child.write(sb, depth+1)
	}
}
