package cmb

// Source is random-access input for a parse. A Source must not change while
// a parse over it is running.
type Source[E any] interface {
	// At returns the element at index i, 0 <= i < Len().
	At(i int) E
	// Len returns the number of elements.
	Len() int
}

// Slice adapts a Go slice to a Source.
type Slice[E any] []E

func (s Slice[E]) At(i int) E { return s[i] }
func (s Slice[E]) Len() int   { return len(s) }

// Bytes adapts a string (or converted byte slice) to a byte Source.
type Bytes string

func (b Bytes) At(i int) byte { return b[i] }
func (b Bytes) Len() int      { return len(b) }

// Runes returns a rune Source over the decoded contents of s.
func Runes(s string) Slice[rune] {
	return Slice[rune]([]rune(s))
}
