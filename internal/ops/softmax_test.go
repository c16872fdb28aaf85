package ops

import (
	"math"
	"testing"

	"github.com/born-ml/scalargrad/internal/graph"
)

func buildSoftmax(xs []float64) (*graph.Graph, []*graph.Node, *graph.Node) {
	g := graph.New()
	ins := make([]*graph.Node, len(xs))
	for i, v := range xs {
		ins[i] = g.Variable(v)
	}
	y, _ := g.Softmax(ins...)
	return g, ins, y
}

// softmaxComponent is the reference y₀ used by the finite-difference checks.
func softmaxComponent(xs []float64) float64 {
	xmax := math.Inf(-1)
	for _, v := range xs {
		if v > xmax {
			xmax = v
		}
	}
	z := 0.0
	for _, v := range xs {
		z += math.Exp(v - xmax)
	}
	return math.Exp(xs[0]-xmax) / z
}

// TestSoftmaxForward: softmax([1,2,3])[0] = e/(e+e²+e³).
func TestSoftmaxForward(t *testing.T) {
	g, _, y := buildSoftmax([]float64{1, 2, 3})
	forwardAll(g)

	e1, e2, e3 := math.Exp(1.0), math.Exp(2.0), math.Exp(3.0)
	want := e1 / (e1 + e2 + e3)
	if math.Abs(y.Value-want) > 1e-12 {
		t.Fatalf("value = %v, want %v", y.Value, want)
	}
	if math.Abs(y.Value-0.0900306) > 1e-6 {
		t.Fatalf("value = %v, want ≈ 0.0900306", y.Value)
	}
}

// TestSoftmaxForwardLargeInputs: the max-shift keeps huge logits finite.
func TestSoftmaxForwardLargeInputs(t *testing.T) {
	g, _, y := buildSoftmax([]float64{1000, 1001, 999})
	forwardAll(g)
	if math.IsNaN(y.Value) || math.IsInf(y.Value, 0) {
		t.Fatalf("value = %v, want finite", y.Value)
	}
	want := softmaxComponent([]float64{0, 1, -1}) // shift invariant
	if math.Abs(y.Value-want) > 1e-12 {
		t.Fatalf("value = %v, want %v", y.Value, want)
	}
}

// TestSoftmaxBackward: ∂y₀/∂xₖ = y₀(δ₀ₖ - yₖ).
func TestSoftmaxBackward(t *testing.T) {
	xs := []float64{1, 2, 3}
	g, ins, y := buildSoftmax(xs)
	forwardAll(g)
	backwardAll(g, y, 1)

	e1, e2, e3 := math.Exp(1.0), math.Exp(2.0), math.Exp(3.0)
	z := e1 + e2 + e3
	y0, y1, y2 := e1/z, e2/z, e3/z

	want := []float64{y0 * (1 - y0), -y0 * y1, -y0 * y2}
	for k, in := range ins {
		if math.Abs(in.Gradient-want[k]) > 1e-12 {
			t.Errorf("gradient[%d] = %v, want %v", k, in.Gradient, want[k])
		}
	}

	// Gradients also agree with central differences.
	const h = 1e-5
	for k := range xs {
		bump := func(eps float64) float64 {
			pert := append([]float64(nil), xs...)
			pert[k] += eps
			return softmaxComponent(pert)
		}
		fd := (bump(h) - bump(-h)) / (2 * h)
		if math.Abs(ins[k].Gradient-fd) > 1e-6 {
			t.Errorf("gradient[%d] = %v, finite difference %v", k, ins[k].Gradient, fd)
		}
	}
}

// TestSoftmaxDotMatchesFiniteDifference checks the tangent y₀(ẋ₀ - Σyⱼẋⱼ)
// against a directional difference.
func TestSoftmaxDotMatchesFiniteDifference(t *testing.T) {
	xs := []float64{0.5, -1.2, 2, 0.1}
	dirs := []float64{1, -0.5, 0.25, 2}

	g, ins, y := buildSoftmax(xs)
	for i, in := range ins {
		in.Dot = dirs[i]
	}
	forwardAll(g)
	forwardDotAll(g)

	const h = 1e-6
	shift := func(eps float64) float64 {
		pert := make([]float64, len(xs))
		for i := range xs {
			pert[i] = xs[i] + eps*dirs[i]
		}
		return softmaxComponent(pert)
	}
	fd := (shift(h) - shift(-h)) / (2 * h)
	if math.Abs(y.Dot-fd) > 1e-6 {
		t.Fatalf("dot = %v, finite difference %v", y.Dot, fd)
	}
}

// TestSoftmaxHVPColumn checks the Hessian-vector column against a central
// difference of the analytic gradient along the tangent direction.
func TestSoftmaxHVPColumn(t *testing.T) {
	xs := []float64{0.3, -0.8, 1.4}
	dirs := []float64{0.7, 1.1, -0.4}

	analyticGrad := func(xs []float64) []float64 {
		g, ins, y := buildSoftmax(xs)
		forwardAll(g)
		backwardAll(g, y, 1)
		out := make([]float64, len(ins))
		for i, in := range ins {
			out[i] = in.Gradient
		}
		return out
	}

	g, ins, y := buildSoftmax(xs)
	for i, in := range ins {
		in.Dot = dirs[i]
	}
	forwardAll(g)
	forwardDotAll(g)
	hvpAll(g, y, 1, 0)

	const h = 1e-5
	shifted := func(eps float64) []float64 {
		pert := make([]float64, len(xs))
		for i := range xs {
			pert[i] = xs[i] + eps*dirs[i]
		}
		return analyticGrad(pert)
	}
	gp, gm := shifted(h), shifted(-h)
	for k, in := range ins {
		fd := (gp[k] - gm[k]) / (2 * h)
		if math.Abs(in.GradDot-fd) > 1e-6 {
			t.Errorf("grad_dot[%d] = %v, finite difference %v", k, in.GradDot, fd)
		}
	}
}

// TestSoftmaxSingleInput: softmax of one logit is the constant 1, so every
// derivative vanishes.
func TestSoftmaxSingleInput(t *testing.T) {
	g, ins, y := buildSoftmax([]float64{4.2})
	ins[0].Dot = 1
	forwardAll(g)
	forwardDotAll(g)
	hvpAll(g, y, 1, 0)

	if y.Value != 1 {
		t.Fatalf("value = %v, want 1", y.Value)
	}
	if y.Dot != 0 {
		t.Fatalf("dot = %v, want 0", y.Dot)
	}
	if ins[0].Gradient != 0 || ins[0].GradDot != 0 {
		t.Fatalf("gradient = %v, grad_dot = %v, want 0, 0", ins[0].Gradient, ins[0].GradDot)
	}
}
