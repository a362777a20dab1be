// Package cmb provides generic parser combinators over indexable input.
//
// # Overview
//
// A parser is any value implementing [Parser]: it is invoked with a [Reader]
// positioned somewhere in a [Source] and returns a [Result]. A successful
// result carries the produced value and the cursor right after the consumed
// input; a failed result carries the furthest cursor position reached before
// giving up.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Reader    │────▶│   Parser    │──▶ Result[T]
//	│ (elements)  │     │  (cursor)   │     │             │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// Readers are small values. Parsers take them by value and never mutate a
// shared cursor, so backtracking is simply invoking another parser with the
// same reader again.
//
// # Composition
//
// [Map] attaches a transform to any parser and yields an [Action]:
//
//	digit := cmb.Satisfy(func(b byte) bool { return b >= '0' && b <= '9' })
//	value := cmb.Map(digit, func(b byte) int { return int(b - '0') })
//
//	res := value.Parse(cmb.FromString("7"))
//	if res.IsSuccess() {
//	    fmt.Println(res.Success().Value()) // 7
//	}
//
// [Seq], [Pair], [Alt], [Many] and [Opt] build larger grammars; [Lazy]
// allows recursive ones. [Run] parses an entire source and turns a failure
// into a [*ParseError].
//
// # Failures
//
// Failures are ordinary values. When alternatives all fail, their failures
// are combined with [Merge], which keeps the position that got furthest.
// Misusing the API (reading past the end, seeking out of bounds, querying
// the wrong result variant) is a programmer error and panics.
//
// # Identity
//
// Every constructed parser receives a process-wide unique [ID] from
// [NextID]. Ids increase in construction order; copying a parser value keeps
// its id. Layers such as [Trace] use the id to tell parser instances apart.
package cmb
