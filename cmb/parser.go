package cmb

// Parser is the capability every combinator has: it can be invoked at a
// reader position and it has a stable identity.
//
// Parse must not mutate state observable by another invocation. On success
// the remaining cursor is at or after r.Cursor(); on failure the furthest
// position is at or after r.Cursor().
type Parser[E, T any] interface {
	Parse(r Reader[E]) Result[T]
	ID() ID
}

// Func adapts a plain function to a Parser with its own id.
type Func[E, T any] struct {
	base
	fn func(Reader[E]) Result[T]
}

// ParserFunc wraps fn as a Parser.
func ParserFunc[E, T any](fn func(Reader[E]) Result[T]) Func[E, T] {
	if fn == nil {
		panic("cmb: ParserFunc called with a nil function")
	}
	return Func[E, T]{base: newBase(), fn: fn}
}

func (p Func[E, T]) Parse(r Reader[E]) Result[T] {
	return p.fn(r)
}
