package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cmb/ebnf/parse"
)

type JSONEncoder struct {
	w        io.Writer
	filename string
	src      []byte
	node     *parse.Node
}

func NewJSONEncoder(w io.Writer, filename string, src []byte) *JSONEncoder {
	return &JSONEncoder{w: w, filename: filename, src: src}
}

func (e *JSONEncoder) Encode(node *parse.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	if e.node == nil {
		return []byte("null"), nil
	}
	return json.MarshalIndent(e.nodeToJSON(e.node), "", "  ")
}

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     jsonSpan    `json:"span"`
	Text     string      `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *JSONEncoder) position(offset int) jsonPosition {
	pos := parse.PositionAt(e.filename, e.src, offset)
	return jsonPosition{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func (e *JSONEncoder) nodeToJSON(n *parse.Node) *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind,
		Span: jsonSpan{
			Start: e.position(n.Span.Start),
			End:   e.position(n.Span.End),
		},
	}

	if n.IsTerminal() {
		jn.Text = n.Text
		return jn
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}

	return jn
}
