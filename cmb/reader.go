package cmb

import "fmt"

// Reader is a cursor over a Source. The cursor always satisfies
// 0 <= Cursor() <= Source().Len().
type Reader[E any] struct {
	src    Source[E]
	cursor int
}

// NewReader returns a reader positioned at the start of src.
func NewReader[E any](src Source[E]) Reader[E] {
	if src == nil {
		panic("cmb: NewReader called with a nil source")
	}
	return Reader[E]{src: src}
}

// FromSlice returns a reader over the elements of s.
func FromSlice[E any](s []E) Reader[E] {
	return NewReader[E](Slice[E](s))
}

// FromString returns a reader over the bytes of s.
func FromString(s string) Reader[byte] {
	return NewReader[byte](Bytes(s))
}

func (r Reader[E]) Source() Source[E] { return r.src }
func (r Reader[E]) Cursor() int       { return r.cursor }

// Len returns the length of the underlying source.
func (r Reader[E]) Len() int { return r.src.Len() }

// IsEnd reports whether the cursor is at the end of the source.
func (r Reader[E]) IsEnd() bool {
	return r.cursor == r.src.Len()
}

// Current returns the element under the cursor. It panics at the end of
// the source.
func (r Reader[E]) Current() E {
	if r.IsEnd() {
		panic("cmb: Current called at end of input")
	}
	return r.src.At(r.cursor)
}

// Seek moves the cursor to idx. It panics unless 0 <= idx <= Len().
func (r *Reader[E]) Seek(idx int) {
	if idx < 0 || idx > r.src.Len() {
		panic(fmt.Sprintf("cmb: Seek(%d) out of bounds [0, %d]", idx, r.src.Len()))
	}
	r.cursor = idx
}

// Next advances the cursor by one element. It panics at the end of the
// source.
func (r *Reader[E]) Next() {
	if r.IsEnd() {
		panic("cmb: Next called at end of input")
	}
	r.Seek(r.cursor + 1)
}

// At returns a copy of r positioned at idx, with the same bounds check as
// Seek.
func (r Reader[E]) At(idx int) Reader[E] {
	r.Seek(idx)
	return r
}
