package cmb

import "sync/atomic"

// ID identifies a parser instance for the lifetime of the process.
type ID uint64

// idRegistry hands out parser ids. There is exactly one, created when the
// package is initialized; it is never reset.
type idRegistry struct {
	last atomic.Uint64
}

var ids idRegistry

func (r *idRegistry) allocate() ID {
	return ID(r.last.Add(1))
}

// NextID allocates a fresh parser id. Ids start at 1 and increase
// monotonically; NextID is safe for concurrent use.
func NextID() ID {
	return ids.allocate()
}

// base is embedded by every parser in this package to carry its id.
type base struct {
	id ID
}

func newBase() base {
	return base{id: NextID()}
}

func (b base) ID() ID { return b.id }
