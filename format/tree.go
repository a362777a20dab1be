package format

import (
	"io"

	"github.com/dhamidi/cmb/ebnf/parse"
)

// TreeEncoder writes the indented form of Node.String.
type TreeEncoder struct {
	w    io.Writer
	node *parse.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(node *parse.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.node == nil {
		return nil, nil
	}
	return []byte(e.node.String()), nil
}
