package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// unaryRule derives the four pass bodies for a unary operator from three
// pure scalar functions:
//
//	f(x)  - primal
//	df(x) - first derivative
//	d2(x) - second derivative (HVP only)
//
// A rule may set dot to replace the generic df(x)*ẋ tangent when it can
// share subexpressions or needs a domain guard (log, tan).
type unaryRule struct {
	f   func(x float64) float64
	df  func(x float64) float64
	d2  func(x float64) float64
	dot func(n *graph.Node, g *graph.Graph)
}

func (r *unaryRule) forward(n *graph.Node, g *graph.Graph) {
	if !unaryOK(n) {
		return
	}
	a := n.Inputs[0]
	graph.Set(&n.Value, &n.ValEpoch, g.CurValEpoch, r.f(a.Value))
}

func (r *unaryRule) forwardDot(n *graph.Node, g *graph.Graph) {
	if !unaryOK(n) {
		return
	}
	if r.dot != nil {
		r.dot(n, g)
		return
	}
	a := n.Inputs[0]
	graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, r.df(a.Value)*a.Dot)
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

func (r *unaryRule) backward(n *graph.Node, g *graph.Graph) {
	if !unaryOK(n) {
		return
	}
	a := n.Inputs[0]
	*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += n.Gradient * r.df(a.Value)
}

func (r *unaryRule) hvpBackward(n *graph.Node, g *graph.Graph) {
	if !unaryOK(n) {
		return
	}
	a := n.Inputs[0]
	gacc := graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch)
	gdacc := graph.EnsureZero(&a.GradDot, &a.GdotEpoch, g.CurGdotEpoch)

	x, xdot := a.Value, a.Dot
	df, d2 := r.df(x), r.d2(x)

	*gacc += n.Gradient * df
	*gdacc += n.GradDot*df + n.Gradient*d2*xdot
}
