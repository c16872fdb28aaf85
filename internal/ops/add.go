package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// addRule is the binary fallback: f = a + b, all partials trivial.
var addRule = binaryRule{
	f:    func(a, b float64) float64 { return a + b },
	dfa:  func(a, b float64) float64 { return 1 },
	dfb:  func(a, b float64) float64 { return 1 },
	d2aa: func(a, b float64) float64 { return 0 },
	d2ab: func(a, b float64) float64 { return 0 },
	d2bb: func(a, b float64) float64 { return 0 },
}

// N-ary sum. The binary rule handles arity 2; any other arity takes the
// n-ary loops. Forward sums values, the tangent sums tangents, and the
// backward passes broadcast the node's adjoint (and grad-tangent) to every
// input unchanged.

func addForward(n *graph.Node, g *graph.Graph) {
	if len(n.Inputs) == 2 {
		addRule.forward(n, g)
		return
	}
	if !naryOK(n) {
		return
	}
	s := 0.0
	for _, a := range n.Inputs {
		s += a.Value
	}
	graph.Set(&n.Value, &n.ValEpoch, g.CurValEpoch, s)
}

func addForwardDot(n *graph.Node, g *graph.Graph) {
	if len(n.Inputs) == 2 {
		addRule.forwardDot(n, g)
		return
	}
	if !naryOK(n) {
		return
	}
	sd := 0.0
	for _, a := range n.Inputs {
		sd += a.Dot
	}
	graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, sd)
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

func addBackward(n *graph.Node, g *graph.Graph) {
	if len(n.Inputs) == 2 {
		addRule.backward(n, g)
		return
	}
	if !naryOK(n) {
		return
	}
	for _, a := range n.Inputs {
		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += n.Gradient
	}
}

func addHVPBackward(n *graph.Node, g *graph.Graph) {
	if len(n.Inputs) == 2 {
		addRule.hvpBackward(n, g)
		return
	}
	if !naryOK(n) {
		return
	}
	for _, a := range n.Inputs {
		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += n.Gradient
		*graph.EnsureZero(&a.GradDot, &a.GdotEpoch, g.CurGdotEpoch) += n.GradDot
	}
}
