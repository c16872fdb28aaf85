package ops

import (
	"math"

	"github.com/born-ml/scalargrad/internal/graph"
)

// tanRule: df = sec²x, d2 = 2 sin x / cos³x, both clamped to 0 where
// cos x = 0. The custom tangent reuses the single cos evaluation.
var tanRule = unaryRule{
	f: math.Tan,
	df: func(x float64) float64 {
		c := math.Cos(x)
		if c != 0 {
			return 1 / (c * c)
		}
		return 0
	},
	d2: func(x float64) float64 {
		s, c := math.Sin(x), math.Cos(x)
		if c != 0 {
			return 2 * s / (c * c * c)
		}
		return 0
	},
	dot: func(n *graph.Node, g *graph.Graph) {
		a := n.Inputs[0]
		c := math.Cos(a.Value)
		graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, safeDiv(a.Dot, c*c))
		graph.Touch(&n.ValEpoch, g.CurValEpoch)
	},
}
