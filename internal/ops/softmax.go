package ops

import (
	"math"

	"github.com/born-ml/scalargrad/internal/graph"
)

// Softmax, single component: the node's value is softmax(x)[0], where x is
// the vector of all input values and the first input is the component of
// interest. Gradients and HVP terms propagate to every input.
//
// All passes use a max-shift before exponentiation so large inputs cannot
// overflow. The Z ≤ 0 → 1 denominator guard is unreachable for finite
// inputs (after the shift at least one summand is exactly 1) and only
// protects against degenerate upstream state.

// loadSoftmax fills s.y with the normalized components and, when dots is
// true, s.dots with the input tangents.
func loadSoftmax(s *scratch, n *graph.Node, dots bool) {
	m := len(n.Inputs)
	s.vals = grown(s.vals, m)
	xmax := math.Inf(-1)
	for i, a := range n.Inputs {
		s.vals[i] = a.Value
		if s.vals[i] > xmax {
			xmax = s.vals[i]
		}
	}
	if dots {
		s.dots = grown(s.dots, m)
		for i, a := range n.Inputs {
			s.dots[i] = a.Dot
		}
	}

	s.y = grown(s.y, m)
	z := 0.0
	for i := 0; i < m; i++ {
		s.y[i] = math.Exp(s.vals[i] - xmax)
		z += s.y[i]
	}
	if z <= 0 {
		z = 1
	}
	for i := 0; i < m; i++ {
		s.y[i] /= z
	}
}

func softmaxForward(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	s := getScratch()
	defer putScratch(s)
	loadSoftmax(s, n, false)
	graph.Set(&n.Value, &n.ValEpoch, g.CurValEpoch, s.y[0])
}

// softmaxForwardDot: with sₓ = Σⱼ yⱼ·ẋⱼ, the component tangent is
// ẏ₀ = y₀·(ẋ₀ - sₓ).
func softmaxForwardDot(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	s := getScratch()
	defer putScratch(s)
	loadSoftmax(s, n, true)

	sdot := 0.0
	for j := range s.y {
		sdot += s.y[j] * s.dots[j]
	}
	graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, s.y[0]*(s.dots[0]-sdot))
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

// softmaxBackward: ∂y₀/∂xₖ = y₀·(δ₀ₖ - yₖ).
func softmaxBackward(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	s := getScratch()
	defer putScratch(s)
	loadSoftmax(s, n, false)

	y0, w := s.y[0], n.Gradient
	for k, a := range n.Inputs {
		dfk := -y0 * s.y[k]
		if k == 0 {
			dfk += y0
		}
		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += w * dfk
	}
}

// softmaxHVPBackward adds the Hessian-vector column of y₀ on top of the
// first-order term:
//
//	(H·ẋ)₀ = y₀·(1 - 2y₀)·(ẋ₀ - sₓ)
//	(H·ẋ)ₖ = y₀·yₖ·(2sₓ - ẋ₀ - ẋₖ)   for k ≠ 0
func softmaxHVPBackward(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	s := getScratch()
	defer putScratch(s)
	loadSoftmax(s, n, true)

	y0, w, wd := s.y[0], n.Gradient, n.GradDot

	sdot := 0.0
	for j := range s.y {
		sdot += s.y[j] * s.dots[j]
	}

	for k, a := range n.Inputs {
		dfk := -y0 * s.y[k]
		if k == 0 {
			dfk += y0
		}

		var hvk float64
		if k == 0 {
			hvk = y0 * (1 - 2*y0) * (s.dots[0] - sdot)
		} else {
			hvk = y0 * s.y[k] * (2*sdot - s.dots[0] - s.dots[k])
		}

		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += w * dfk
		*graph.EnsureZero(&a.GradDot, &a.GdotEpoch, g.CurGdotEpoch) += wd*dfk + w*hvk
	}
}
