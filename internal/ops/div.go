package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// divRule: f = a/b with every partial gated on b ≠ 0 (clamped to 0 at the
// singularity). The custom tangent is the quotient rule in one expression:
// (ȧ·b - a·ḃ)/b².
var divRule = binaryRule{
	f:   safeDiv,
	dfa: func(a, b float64) float64 { return safeDiv(1, b) },
	dfb: func(a, b float64) float64 {
		if b != 0 {
			return -a / (b * b)
		}
		return 0
	},
	d2aa: func(a, b float64) float64 { return 0 },
	d2ab: func(a, b float64) float64 {
		if b != 0 {
			return -1 / (b * b)
		}
		return 0
	},
	d2bb: func(a, b float64) float64 {
		if b != 0 {
			return 2 * a / (b * b * b)
		}
		return 0
	},
	dot: func(n *graph.Node, g *graph.Graph) {
		a, b := n.Inputs[0], n.Inputs[1]
		d := b.Value
		graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch,
			safeDiv(a.Dot*d-a.Value*b.Dot, d*d))
		graph.Touch(&n.ValEpoch, g.CurValEpoch)
	},
}
