package ops

import (
	"math"

	"github.com/born-ml/scalargrad/internal/graph"
)

// Arity predicates. A node that fails its predicate is malformed (a builder
// bug); every pass body returns without touching any slot, so previously
// written slots stay intact and nothing becomes non-live spuriously.

func unaryOK(n *graph.Node) bool {
	return len(n.Inputs) == 1 && n.Inputs[0] != nil
}

func binaryOK(n *graph.Node) bool {
	return len(n.Inputs) == 2 && n.Inputs[0] != nil && n.Inputs[1] != nil
}

func naryOK(n *graph.Node) bool {
	if len(n.Inputs) == 0 {
		return false
	}
	for _, in := range n.Inputs {
		if in == nil {
			return false
		}
	}
	return true
}

// safeDiv returns a/b, or 0 when b == 0. The divide and log/tan rules clamp
// at singularities instead of propagating NaN/Inf.
func safeDiv(a, b float64) float64 {
	if b != 0 {
		return a / b
	}
	return 0
}

// sigmoid is the numerically stable logistic function.
//
// Branching on the sign keeps the exponent non-positive, so exp never
// overflows for large |x|.
func sigmoid(x float64) float64 {
	if x >= 0 {
		z := math.Exp(-x)
		return 1 / (1 + z)
	}
	z := math.Exp(x)
	return z / (1 + z)
}
