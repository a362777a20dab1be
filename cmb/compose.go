package cmb

import (
	"fmt"
	"sync"
)

// SeqParser runs parsers one after another and collects their values.
type SeqParser[E, T any] struct {
	base
	ps []Parser[E, T]
}

// Seq matches each of ps in order. When one of them does not match, the
// failure reports the furthest position any of them reached.
func Seq[E, T any](ps ...Parser[E, T]) SeqParser[E, T] {
	return SeqParser[E, T]{base: newBase(), ps: append([]Parser[E, T](nil), ps...)}
}

func (p SeqParser[E, T]) Parse(r Reader[E]) Result[[]T] {
	values := make([]T, 0, len(p.ps))
	furthest := r.Cursor()
	for _, q := range p.ps {
		res := q.Parse(r).Reaching(furthest)
		if res.IsFailure() {
			return propagate[[]T](res)
		}
		v, rem := res.Unwrap()
		values = append(values, v)
		furthest = res.Furthest()
		r.Seek(rem)
	}
	return FromSuccess(NewSuccess(values, r.Cursor()).Reaching(furthest))
}

// Tuple holds the values of a Pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// PairParser runs two parsers of different produced types in order.
type PairParser[E, A, B any] struct {
	base
	a Parser[E, A]
	b Parser[E, B]
}

// Pair matches a then b and produces both values.
func Pair[E, A, B any](a Parser[E, A], b Parser[E, B]) PairParser[E, A, B] {
	return PairParser[E, A, B]{base: newBase(), a: a, b: b}
}

func (p PairParser[E, A, B]) Parse(r Reader[E]) Result[Tuple[A, B]] {
	ra := p.a.Parse(r)
	if ra.IsFailure() {
		return propagate[Tuple[A, B]](ra)
	}
	va, rem := ra.Unwrap()
	r.Seek(rem)
	rb := p.b.Parse(r).Reaching(ra.Furthest())
	if rb.IsFailure() {
		return propagate[Tuple[A, B]](rb)
	}
	return mapped(rb.Success(), Tuple[A, B]{First: va, Second: rb.Success().Value()})
}

// Left matches a then b and keeps the value of a.
func Left[E, A, B any](a Parser[E, A], b Parser[E, B]) Action[E, Tuple[A, B], A] {
	return Map(Parser[E, Tuple[A, B]](Pair(a, b)), func(t Tuple[A, B]) A { return t.First })
}

// Right matches a then b and keeps the value of b.
func Right[E, A, B any](a Parser[E, A], b Parser[E, B]) Action[E, Tuple[A, B], B] {
	return Map(Parser[E, Tuple[A, B]](Pair(a, b)), func(t Tuple[A, B]) B { return t.Second })
}

// AltParser tries alternatives in order.
type AltParser[E, T any] struct {
	base
	ps []Parser[E, T]
}

// Alt returns the result of the first of ps that matches, each tried from
// the same start. When all fail, the failure that got furthest is
// reported. A match still carries the reach of the alternatives that
// failed before it.
func Alt[E, T any](ps ...Parser[E, T]) AltParser[E, T] {
	return AltParser[E, T]{base: newBase(), ps: append([]Parser[E, T](nil), ps...)}
}

func (p AltParser[E, T]) Parse(r Reader[E]) Result[T] {
	failure := NewFailure(r.Cursor())
	for _, q := range p.ps {
		res := q.Parse(r)
		if res.IsSuccess() {
			return res.Reaching(failure.Furthest())
		}
		failure = Merge(failure, res.Failure())
	}
	return FromFailure[T](failure)
}

// ManyParser repeats a parser between a minimum and maximum count.
type ManyParser[E, T any] struct {
	base
	p        Parser[E, T]
	min, max int
}

// Many matches p greedily at least min and at most max times; a negative
// max means no upper bound. The loop also ends when p matches without
// consuming anything, since it would match the same way forever: such a
// match fills up the remaining minimum. The attempt that ended the loop
// counts towards the furthest position of the match.
func Many[E, T any](p Parser[E, T], min, max int) ManyParser[E, T] {
	if min < 0 || (max >= 0 && max < min) {
		panic(fmt.Sprintf("cmb: Many called with invalid bounds [%d, %d]", min, max))
	}
	return ManyParser[E, T]{base: newBase(), p: p, min: min, max: max}
}

// Many0 matches p zero or more times.
func Many0[E, T any](p Parser[E, T]) ManyParser[E, T] { return Many(p, 0, -1) }

// Many1 matches p one or more times.
func Many1[E, T any](p Parser[E, T]) ManyParser[E, T] { return Many(p, 1, -1) }

func (p ManyParser[E, T]) Parse(r Reader[E]) Result[[]T] {
	var values []T
	furthest := r.Cursor()
	for p.max < 0 || len(values) < p.max {
		res := p.p.Parse(r).Reaching(furthest)
		furthest = res.Furthest()
		if res.IsFailure() {
			if len(values) < p.min {
				return propagate[[]T](res)
			}
			break
		}
		v, rem := res.Unwrap()
		values = append(values, v)
		if rem == r.Cursor() {
			for len(values) < p.min {
				values = append(values, v)
			}
			break
		}
		r.Seek(rem)
	}
	return FromSuccess(NewSuccess(values, r.Cursor()).Reaching(furthest))
}

// Option is the value produced by Opt.
type Option[T any] struct {
	Value T
	Valid bool
}

// OptParser makes a parser optional.
type OptParser[E, T any] struct {
	base
	p Parser[E, T]
}

// Opt matches p if possible and otherwise succeeds without consuming,
// keeping the position the failed attempt reached.
func Opt[E, T any](p Parser[E, T]) OptParser[E, T] {
	return OptParser[E, T]{base: newBase(), p: p}
}

func (p OptParser[E, T]) Parse(r Reader[E]) Result[Option[T]] {
	res := p.p.Parse(r)
	if res.IsFailure() {
		return Succeeded(Option[T]{}, r.Cursor()).Reaching(res.Furthest())
	}
	s := res.Success()
	return mapped(s, Option[T]{Value: s.Value(), Valid: true})
}

// LazyParser defers construction of a parser until its first use.
type LazyParser[E, T any] struct {
	base
	once    sync.Once
	resolve func() Parser[E, T]
	p       Parser[E, T]
}

// Lazy returns a parser that calls resolve on first use and delegates to
// the parser it returns from then on. It is how recursive grammars refer
// to rules that are not built yet.
func Lazy[E, T any](resolve func() Parser[E, T]) *LazyParser[E, T] {
	if resolve == nil {
		panic("cmb: Lazy called with a nil function")
	}
	return &LazyParser[E, T]{base: newBase(), resolve: resolve}
}

func (p *LazyParser[E, T]) Parse(r Reader[E]) Result[T] {
	p.once.Do(func() {
		p.p = p.resolve()
	})
	if p.p == nil {
		panic("cmb: Lazy resolved to a nil parser")
	}
	return p.p.Parse(r)
}

// Spanned is a value together with the input range it was parsed from.
type Spanned[T any] struct {
	Value      T
	Start, End int
}

// SpanParser records the range a parser consumed.
type SpanParser[E, T any] struct {
	base
	p Parser[E, T]
}

// WithSpan wraps p so that its value is reported with the cursor range it
// covered.
func WithSpan[E, T any](p Parser[E, T]) SpanParser[E, T] {
	return SpanParser[E, T]{base: newBase(), p: p}
}

func (p SpanParser[E, T]) Parse(r Reader[E]) Result[Spanned[T]] {
	res := p.p.Parse(r)
	if res.IsFailure() {
		return propagate[Spanned[T]](res)
	}
	s := res.Success()
	return mapped(s, Spanned[T]{Value: s.Value(), Start: r.Cursor(), End: s.Remaining()})
}

// Skip matches any number of trivia elements before p and keeps the value
// of p.
func Skip[E, S, T any](trivia Parser[E, S], p Parser[E, T]) Action[E, Tuple[[]S, T], T] {
	return Right(Parser[E, []S](Many0(trivia)), p)
}
