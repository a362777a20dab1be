package parse

import (
	"fmt"
	"unicode/utf8"
)

// Position represents a location in source code. Line and Column are
// 1-based; Column counts bytes.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionAt converts a byte offset in src to a Position. Offsets past the
// end are clamped to len(src).
func PositionAt(filename string, src []byte, offset int) Position {
	offset = max(0, min(offset, len(src)))

	pos := Position{Filename: filename, Offset: offset, Line: 1, Column: 1}
	for _, ch := range src[:offset] {
		if ch == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// SyntaxError reports the furthest position a parse reached before it
// failed.
type SyntaxError struct {
	Position Position
	// Unexpected is the character found at Position, empty at end of input.
	Unexpected string
}

func newSyntaxError(filename string, src []byte, offset int) *SyntaxError {
	err := &SyntaxError{Position: PositionAt(filename, src, offset)}
	if offset < len(src) {
		r, size := utf8.DecodeRune(src[offset:])
		if r == utf8.RuneError && size <= 1 {
			err.Unexpected = string(src[offset : offset+1])
		} else {
			err.Unexpected = string(r)
		}
	}
	return err
}

func (e *SyntaxError) Error() string {
	if e.Unexpected == "" {
		return fmt.Sprintf("%s: syntax error: unexpected end of input", e.Position)
	}
	return fmt.Sprintf("%s: syntax error: unexpected %q", e.Position, e.Unexpected)
}
