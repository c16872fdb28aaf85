package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// binaryRule derives the four pass bodies for a binary operator from the
// primal, its first partials and its second partials:
//
//	f(a,b)
//	dfa = ∂f/∂a      dfb = ∂f/∂b
//	d2aa = ∂²f/∂a²   d2ab = ∂²f/∂a∂b   d2bb = ∂²f/∂b²
//
// dot, when set, replaces the generic dfa·ȧ + dfb·ḃ tangent (divide uses
// this to evaluate the quotient rule in one expression).
type binaryRule struct {
	f    func(a, b float64) float64
	dfa  func(a, b float64) float64
	dfb  func(a, b float64) float64
	d2aa func(a, b float64) float64
	d2ab func(a, b float64) float64
	d2bb func(a, b float64) float64
	dot  func(n *graph.Node, g *graph.Graph)
}

func (r *binaryRule) forward(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	graph.Set(&n.Value, &n.ValEpoch, g.CurValEpoch, r.f(a.Value, b.Value))
}

func (r *binaryRule) forwardDot(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	if r.dot != nil {
		r.dot(n, g)
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	A, B := a.Value, b.Value
	graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, r.dfa(A, B)*a.Dot+r.dfb(A, B)*b.Dot)
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

func (r *binaryRule) backward(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	A, B, w := a.Value, b.Value, n.Gradient
	*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += w * r.dfa(A, B)
	*graph.EnsureZero(&b.Gradient, &b.GradEpoch, g.CurGradEpoch) += w * r.dfb(A, B)
}

func (r *binaryRule) hvpBackward(n *graph.Node, g *graph.Graph) {
	if !binaryOK(n) {
		return
	}
	a, b := n.Inputs[0], n.Inputs[1]
	A, B, Ad, Bd := a.Value, b.Value, a.Dot, b.Dot
	w, wd := n.Gradient, n.GradDot

	ga := graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch)
	gb := graph.EnsureZero(&b.Gradient, &b.GradEpoch, g.CurGradEpoch)
	gda := graph.EnsureZero(&a.GradDot, &a.GdotEpoch, g.CurGdotEpoch)
	gdb := graph.EnsureZero(&b.GradDot, &b.GdotEpoch, g.CurGdotEpoch)

	*ga += w * r.dfa(A, B)
	*gb += w * r.dfb(A, B)

	// ġᵢ += ẇ·dfᵢ + w·(Hᵢₐ·ȧ + Hᵢᵦ·ḃ)
	*gda += wd*r.dfa(A, B) + w*(r.d2aa(A, B)*Ad+r.d2ab(A, B)*Bd)
	*gdb += wd*r.dfb(A, B) + w*(r.d2ab(A, B)*Ad+r.d2bb(A, B)*Bd)
}
