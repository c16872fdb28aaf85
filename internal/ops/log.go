package ops

import (
	"math"

	"github.com/born-ml/scalargrad/internal/graph"
)

// logRule guards the derivative at x = 0: df and d2 clamp to 0 instead of
// returning ±Inf. The custom tangent computes ẋ/x directly in one guarded
// division (0 at x = 0).
var logRule = unaryRule{
	f: math.Log,
	df: func(x float64) float64 {
		if x != 0 {
			return 1 / x
		}
		return 0
	},
	d2: func(x float64) float64 {
		if x != 0 {
			return -1 / (x * x)
		}
		return 0
	},
	dot: func(n *graph.Node, g *graph.Graph) {
		a := n.Inputs[0]
		x := a.Value
		graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, safeDiv(a.Dot, x))
		graph.Touch(&n.ValEpoch, g.CurValEpoch)
	},
}
