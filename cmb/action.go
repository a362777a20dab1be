package cmb

// Action runs a wrapped parser and maps its produced value. Failures pass
// through unchanged and never reach the transform.
type Action[E, T, U any] struct {
	base
	p  Parser[E, T]
	fn func(T) U
}

// Map attaches fn to p. The returned Action owns what it is given: pass a
// parser value to move a copy into it, or a pointer to share the parser.
func Map[E, T, U any](p Parser[E, T], fn func(T) U) Action[E, T, U] {
	if p == nil {
		panic("cmb: Map called with a nil parser")
	}
	if fn == nil {
		panic("cmb: Map called with a nil function")
	}
	return Action[E, T, U]{base: newBase(), p: p, fn: fn}
}

// Parse invokes the wrapped parser once. fn is called exactly once per
// success.
func (a Action[E, T, U]) Parse(r Reader[E]) Result[U] {
	res := a.p.Parse(r)
	if res.IsFailure() {
		return propagate[U](res)
	}
	s := res.Success()
	return mapped(s, a.fn(s.Value()))
}

// Inner returns the wrapped parser.
func (a Action[E, T, U]) Inner() Parser[E, T] { return a.p }
