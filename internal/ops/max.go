package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// Binary max, nonsmooth. The tangent and the adjoints route entirely to the
// winning input; ties go to the first. No smoothing — this is a subgradient
// choice.

func maxForward(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0].Value, n.Inputs[1].Value
	v := b
	if a >= b { // tie -> a
		v = a
	}
	graph.Set(&n.Value, &n.ValEpoch, g.CurValEpoch, v)
}

func maxForwardDot(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	d := b.Dot
	if a.Value >= b.Value {
		d = a.Dot
	}
	graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, d)
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

func maxBackward(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	win := b
	if a.Value >= b.Value {
		win = a
	}
	*graph.EnsureZero(&win.Gradient, &win.GradEpoch, g.CurGradEpoch) += n.Gradient
}

func maxHVPBackward(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	win := b
	if a.Value >= b.Value {
		win = a
	}
	*graph.EnsureZero(&win.Gradient, &win.GradEpoch, g.CurGradEpoch) += n.Gradient
	*graph.EnsureZero(&win.GradDot, &win.GdotEpoch, g.CurGdotEpoch) += n.GradDot
}
