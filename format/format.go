// Package format renders concrete syntax trees produced by ebnf/parse.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/cmb/ebnf/parse"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node *parse.Node) error
}

// New returns the encoder registered under name: "tree", "json" or
// "lines". src is the input the tree was parsed from; encoders use it to
// turn offsets into line and column numbers.
func New(name string, w io.Writer, filename string, src []byte) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "json":
		return NewJSONEncoder(w, filename, src), nil
	case "lines":
		return NewLineEncoder(w, filename, src), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}
