package cmb

// EqParser matches one element equal to a wanted value.
type EqParser[E comparable] struct {
	base
	want E
}

// Eq matches a single element equal to want and produces it. It fails at
// the start cursor on a mismatch or at the end of input.
func Eq[E comparable](want E) EqParser[E] {
	return EqParser[E]{base: newBase(), want: want}
}

func (p EqParser[E]) Parse(r Reader[E]) Result[E] {
	if r.IsEnd() || r.Current() != p.want {
		return Failed[E](r.Cursor())
	}
	return Succeeded(r.Current(), r.Cursor()+1)
}

// SatisfyParser matches one element accepted by a predicate.
type SatisfyParser[E any] struct {
	base
	pred func(E) bool
}

// Satisfy matches a single element for which pred returns true.
func Satisfy[E any](pred func(E) bool) SatisfyParser[E] {
	if pred == nil {
		panic("cmb: Satisfy called with a nil predicate")
	}
	return SatisfyParser[E]{base: newBase(), pred: pred}
}

// Any matches any single element.
func Any[E any]() SatisfyParser[E] {
	return Satisfy(func(E) bool { return true })
}

func (p SatisfyParser[E]) Parse(r Reader[E]) Result[E] {
	if r.IsEnd() {
		return Failed[E](r.Cursor())
	}
	if v := r.Current(); p.pred(v) {
		return Succeeded(v, r.Cursor()+1)
	}
	return Failed[E](r.Cursor())
}

// LiteralParser matches a fixed run of elements.
type LiteralParser[E comparable] struct {
	base
	want []E
}

// Literal matches the elements of want in order and produces a copy of
// them. On a mismatch it fails at the first element that differs.
func Literal[E comparable](want ...E) LiteralParser[E] {
	return LiteralParser[E]{base: newBase(), want: append([]E(nil), want...)}
}

func (p LiteralParser[E]) Parse(r Reader[E]) Result[[]E] {
	for _, w := range p.want {
		if r.IsEnd() || r.Current() != w {
			return Failed[[]E](r.Cursor())
		}
		r.Next()
	}
	got := make([]E, len(p.want))
	copy(got, p.want)
	return Succeeded(got, r.Cursor())
}

// EndParser matches the end of input.
type EndParser[E any] struct {
	base
}

// End succeeds without consuming anything iff the reader is at the end.
func End[E any]() EndParser[E] {
	return EndParser[E]{base: newBase()}
}

func (p EndParser[E]) Parse(r Reader[E]) Result[struct{}] {
	if !r.IsEnd() {
		return Failed[struct{}](r.Cursor())
	}
	return Succeeded(struct{}{}, r.Cursor())
}

// PureParser produces a value without consuming input.
type PureParser[E, T any] struct {
	base
	value T
}

// Pure succeeds with value at the start cursor.
func Pure[E, T any](value T) PureParser[E, T] {
	return PureParser[E, T]{base: newBase(), value: value}
}

func (p PureParser[E, T]) Parse(r Reader[E]) Result[T] {
	return Succeeded(p.value, r.Cursor())
}

// NeverParser always fails at its start cursor.
type NeverParser[E, T any] struct {
	base
}

// Never fails without looking at the input.
func Never[E, T any]() NeverParser[E, T] {
	return NeverParser[E, T]{base: newBase()}
}

func (p NeverParser[E, T]) Parse(r Reader[E]) Result[T] {
	return Failed[T](r.Cursor())
}
