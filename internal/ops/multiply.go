package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// N-ary multiply.
//
// The "product of all but index i" that every derivative needs is read off
// prefix/suffix product tables instead of dividing the total product by
// vᵢ — division would turn any zero factor into 0/0:
//
//	pre[0] = 1,  pre[i+1] = pre[i]·vᵢ
//	suf[m] = 1,  suf[i]   = suf[i+1]·vᵢ
//	Πⱼ≠ᵢ vⱼ = pre[i]·suf[i+1]

// buildPrefixSuffix fills pre and suf (both length m+1) from vals.
func buildPrefixSuffix(vals, pre, suf []float64) {
	m := len(vals)
	pre[0] = 1
	for i := 0; i < m; i++ {
		pre[i+1] = pre[i] * vals[i]
	}
	suf[m] = 1
	for i := m - 1; i >= 0; i-- {
		suf[i] = suf[i+1] * vals[i]
	}
}

// loadMul copies input values (and tangents, when dots is true) into the
// scratch buffers and builds the product tables.
func loadMul(s *scratch, n *graph.Node, dots bool) {
	m := len(n.Inputs)
	s.vals = grown(s.vals, m)
	for i, a := range n.Inputs {
		s.vals[i] = a.Value
	}
	if dots {
		s.dots = grown(s.dots, m)
		for i, a := range n.Inputs {
			s.dots[i] = a.Dot
		}
	}
	s.pre = grown(s.pre, m+1)
	s.suf = grown(s.suf, m+1)
	buildPrefixSuffix(s.vals, s.pre, s.suf)
}

func mulForward(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	p := 1.0
	for _, a := range n.Inputs {
		p *= a.Value
	}
	graph.Set(&n.Value, &n.ValEpoch, g.CurValEpoch, p)
}

// mulForwardDot computes ż = Σᵢ ẋᵢ·Πⱼ≠ᵢ vⱼ via the product tables.
func mulForwardDot(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	s := getScratch()
	defer putScratch(s)
	loadMul(s, n, true)

	m := len(n.Inputs)
	ds := 0.0
	for i := 0; i < m; i++ {
		ds += s.dots[i] * s.pre[i] * s.suf[i+1]
	}
	graph.Set(&n.Dot, &n.DotEpoch, g.CurDotEpoch, ds)
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

func mulBackward(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	s := getScratch()
	defer putScratch(s)
	loadMul(s, n, false)

	for i, a := range n.Inputs {
		pwoi := s.pre[i] * s.suf[i+1]
		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += n.Gradient * pwoi
	}
}

func mulHVPBackward(n *graph.Node, g *graph.Graph) {
	if !naryOK(n) {
		return
	}
	m := len(n.Inputs)

	// Binary fast path: z = a·b has the closed form
	//   ġₐ += ẇ·b + w·ḃ,  ġᵦ += ẇ·a + w·ȧ
	if m == 2 {
		a, b := n.Inputs[0], n.Inputs[1]
		A, B := a.Value, b.Value
		Ad, Bd := a.Dot, b.Dot
		w, wd := n.Gradient, n.GradDot

		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += w * B
		*graph.EnsureZero(&b.Gradient, &b.GradEpoch, g.CurGradEpoch) += w * A
		*graph.EnsureZero(&a.GradDot, &a.GdotEpoch, g.CurGdotEpoch) += wd*B + w*Bd
		*graph.EnsureZero(&b.GradDot, &b.GdotEpoch, g.CurGdotEpoch) += wd*A + w*Ad
		return
	}

	s := getScratch()
	defer putScratch(s)
	loadMul(s, n, true)

	for i := 0; i < m; i++ {
		pwoi := s.pre[i] * s.suf[i+1]

		// Cross term: Σₖ≠ᵢ ẋₖ·Πℓ∉{i,k} vℓ. The excluded-pair product is
		// assembled as pre[lo]·(v_{lo+1}…v_{hi-1})·suf[hi+1]; the mid
		// segment is multiplied out directly so a zero factor yields an
		// exact zero instead of the 0/0 a division approach would hit.
		sum := 0.0
		for k := 0; k < m; k++ {
			if k == i {
				continue
			}
			lo, hi := i, k
			if lo > hi {
				lo, hi = hi, lo
			}
			mid := 1.0
			for t := lo + 1; t < hi; t++ {
				mid *= s.vals[t]
				if mid == 0 {
					break
				}
			}
			sum += s.dots[k] * (s.pre[lo] * mid * s.suf[hi+1])
		}

		a := n.Inputs[i]
		*graph.EnsureZero(&a.Gradient, &a.GradEpoch, g.CurGradEpoch) += n.Gradient * pwoi
		*graph.EnsureZero(&a.GradDot, &a.GdotEpoch, g.CurGdotEpoch) += n.GradDot*pwoi + n.Gradient*sum
	}
}
