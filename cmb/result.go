package cmb

// Success is the outcome of a parser that matched. Remaining is the cursor
// immediately after the consumed input. Furthest is the deepest position
// reached on the way, including failed attempts that optional or repeated
// parts gave up on; it is never less than Remaining.
type Success[T any] struct {
	value     T
	remaining int
	furthest  int
}

// NewSuccess returns a success that reached no further than remaining.
func NewSuccess[T any](value T, remaining int) Success[T] {
	return Success[T]{value: value, remaining: remaining, furthest: remaining}
}

func (s Success[T]) Value() T       { return s.value }
func (s Success[T]) Remaining() int { return s.remaining }
func (s Success[T]) Furthest() int  { return s.furthest }

// Reaching returns s with its furthest position raised to at least pos.
func (s Success[T]) Reaching(pos int) Success[T] {
	s.furthest = max(s.furthest, pos)
	return s
}

// Failure is the outcome of a parser that did not match. Furthest is the
// deepest cursor position any attempt reached before giving up.
type Failure struct {
	furthest int
}

// NewFailure returns a failure that reached furthest.
func NewFailure(furthest int) Failure {
	return Failure{furthest: furthest}
}

func (f Failure) Furthest() int { return f.furthest }

// Merge combines the failures of two alternatives tried from the same
// start. The one that got further wins.
func Merge(a, b Failure) Failure {
	if b.furthest > a.furthest {
		return b
	}
	return a
}

type resultKind uint8

const (
	resultInvalid resultKind = iota
	resultSuccess
	resultFailure
)

// Result holds exactly one of a Success or a Failure. The zero Result is not
// valid; build results with Succeeded, Failed, FromSuccess or FromFailure.
type Result[T any] struct {
	kind    resultKind
	success Success[T]
	failure Failure
}

// FromSuccess wraps s in a Result.
func FromSuccess[T any](s Success[T]) Result[T] {
	return Result[T]{kind: resultSuccess, success: s}
}

// FromFailure wraps f in a Result producing T.
func FromFailure[T any](f Failure) Result[T] {
	return Result[T]{kind: resultFailure, failure: f}
}

// Succeeded is shorthand for FromSuccess(NewSuccess(value, remaining)).
func Succeeded[T any](value T, remaining int) Result[T] {
	return FromSuccess(NewSuccess(value, remaining))
}

// Failed is shorthand for FromFailure[T](NewFailure(furthest)).
func Failed[T any](furthest int) Result[T] {
	return FromFailure[T](NewFailure(furthest))
}

func (r Result[T]) IsSuccess() bool {
	r.mustBeValid()
	return r.kind == resultSuccess
}

func (r Result[T]) IsFailure() bool {
	r.mustBeValid()
	return r.kind == resultFailure
}

// Success returns the success payload. It panics if r is a failure.
func (r Result[T]) Success() Success[T] {
	if !r.IsSuccess() {
		panic("cmb: Success called on a failed result")
	}
	return r.success
}

// Failure returns the failure payload. It panics if r is a success.
func (r Result[T]) Failure() Failure {
	if !r.IsFailure() {
		panic("cmb: Failure called on a successful result")
	}
	return r.failure
}

// Unwrap returns the produced value and remaining cursor of a success. It
// panics if r is a failure.
func (r Result[T]) Unwrap() (T, int) {
	s := r.Success()
	return s.value, s.remaining
}

// Furthest returns the furthest position of either variant.
func (r Result[T]) Furthest() int {
	if r.IsSuccess() {
		return r.success.furthest
	}
	return r.failure.furthest
}

// Reaching raises the furthest position of either variant to at least pos.
// Combinators use it to carry the reach of earlier attempts forward.
func (r Result[T]) Reaching(pos int) Result[T] {
	if r.IsSuccess() {
		r.success = r.success.Reaching(pos)
	} else {
		r.failure.furthest = max(r.failure.furthest, pos)
	}
	return r
}

func (r Result[T]) mustBeValid() {
	if r.kind == resultInvalid {
		panic("cmb: use of a zero Result")
	}
}

// propagate converts a failed result to another produced type.
func propagate[U, T any](r Result[T]) Result[U] {
	return FromFailure[U](r.Failure())
}

// mapped returns a success with value in place of the value of s, keeping
// its cursor and reach.
func mapped[U, T any](s Success[T], value U) Result[U] {
	return FromSuccess(Success[U]{value: value, remaining: s.remaining, furthest: s.furthest})
}
