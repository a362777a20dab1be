package cmb

import "fmt"

// ParseError reports that Run could not parse its whole input. Furthest is
// the deepest position reached by any attempt, or the end of a match that
// stopped short of the end of input if nothing got further.
type ParseError struct {
	Furthest int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse failed at offset %d", e.Furthest)
}

// Run parses all of src with p.
func Run[E, T any](p Parser[E, T], src Source[E]) (T, error) {
	res := p.Parse(NewReader(src))
	if res.IsFailure() {
		var zero T
		return zero, &ParseError{Furthest: res.Failure().Furthest()}
	}
	v, rem := res.Unwrap()
	if rem != src.Len() {
		var zero T
		return zero, &ParseError{Furthest: res.Furthest()}
	}
	return v, nil
}
