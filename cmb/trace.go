package cmb

import "github.com/tliron/commonlog"

// TraceParser logs every invocation of a wrapped parser.
type TraceParser[E, T any] struct {
	base
	name string
	p    Parser[E, T]
	log  commonlog.Logger
}

// Trace wraps p so that each invocation is logged at debug level under
// name and the wrapped parser's id. The result is passed through as is.
func Trace[E, T any](name string, p Parser[E, T], log commonlog.Logger) TraceParser[E, T] {
	if log == nil {
		log = commonlog.GetLogger("cmb.trace")
	}
	return TraceParser[E, T]{base: newBase(), name: name, p: p, log: log}
}

func (p TraceParser[E, T]) Parse(r Reader[E]) Result[T] {
	if !p.log.AllowLevel(commonlog.Debug) {
		return p.p.Parse(r)
	}

	p.log.Debugf("enter %s#%d at %d", p.name, p.p.ID(), r.Cursor())
	res := p.p.Parse(r)
	if res.IsSuccess() {
		p.log.Debugf("match %s#%d %d..%d", p.name, p.p.ID(), r.Cursor(), res.Success().Remaining())
	} else {
		p.log.Debugf("fail  %s#%d at %d, furthest %d", p.name, p.p.ID(), r.Cursor(), res.Failure().Furthest())
	}
	return res
}
