package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/cmb/ebnf/parse"
)

// LineEncoder writes one tab separated line per terminal, in source order:
//
//	position	kind	text
type LineEncoder struct {
	w        io.Writer
	filename string
	src      []byte
	node     *parse.Node
}

func NewLineEncoder(w io.Writer, filename string, src []byte) *LineEncoder {
	return &LineEncoder{w: w, filename: filename, src: src}
}

func (e *LineEncoder) Encode(node *parse.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if e.node != nil {
		e.writeTerminals(&sb, e.node)
	}
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeTerminals(sb *strings.Builder, n *parse.Node) {
	if n.IsTerminal() {
		pos := parse.PositionAt(e.filename, e.src, n.Span.Start)
		fmt.Fprintf(sb, "%s\t%s\t%s\n", pos, n.Kind, strconv.Quote(n.Text))
		return
	}
	for _, child := range n.Children {
		e.writeTerminals(sb, child)
	}
}
