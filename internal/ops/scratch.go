package ops

import (
	"sync"
)

// scratch holds the growable buffers the n-ary rules (multiply, softmax)
// need per invocation: input values, input tangents, prefix/suffix product
// tables, and normalized softmax components.
//
// Buffers are pooled and reused across invocations, growing monotonically to
// the largest arity seen. A scratch is never shared between goroutines and
// never held across an invocation boundary.
type scratch struct {
	vals []float64
	dots []float64
	pre  []float64
	suf  []float64
	y    []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratch{} },
}

func getScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func putScratch(s *scratch) {
	scratchPool.Put(s)
}

// grown returns buf with length m, reusing capacity when possible.
func grown(buf []float64, m int) []float64 {
	if cap(buf) < m {
		return make([]float64, m)
	}
	return buf[:m]
}
