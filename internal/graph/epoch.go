package graph

// Epoch primitives. Every accumulator write in the engine goes through one of
// these three; together they replace whole-graph zeroing with at most one
// lazy clear per (node, slot, pass).
//
// The protocol is sequential within a pass: it does not make concurrent
// writers to the same slot safe. Disjoint graphs may run in parallel.

// Touch marks a slot live for the current pass without writing a value.
// Used by nullary nodes whose value was set out of band.
func Touch(tag *uint64, cur uint64) {
	*tag = cur
}

// Set unconditionally writes v and marks the slot live.
// Used for produced (non-accumulated) outputs.
func Set(slot *float64, tag *uint64, cur uint64, v float64) {
	*slot = v
	*tag = cur
}

// EnsureZero clears the slot if it is stale, marks it live, and returns it
// for accumulation. This is the left-hand side of every "+=" in the engine.
func EnsureZero(slot *float64, tag *uint64, cur uint64) *float64 {
	if *tag != cur {
		*slot = 0
		*tag = cur
	}
	return slot
}
