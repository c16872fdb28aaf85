package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scalargrad/internal/graph"
)

// TestSinAtQuarterPi: y = sin(x) at π/4 — value, tangent, gradient and
// second derivative are all ±√2/2.
func TestSinAtQuarterPi(t *testing.T) {
	g := graph.New()
	x := g.Variable(math.Pi / 4)
	y := g.Sin(x)

	const want = math.Sqrt2 / 2

	val, err := Eval(g, y)
	require.NoError(t, err)
	assert.InDelta(t, want, val, 1e-8)

	x.Dot = 1
	dot, err := EvalDot(g, y)
	require.NoError(t, err)
	assert.InDelta(t, want, dot, 1e-8)

	require.NoError(t, Backward(g, y, 1))
	assert.InDelta(t, want, x.Gradient, 1e-8)

	require.NoError(t, HVP(g, y, 1, 0))
	assert.InDelta(t, -want, x.GradDot, 1e-8)
}

// TestLogAtZero: ln(0) is -Inf, but the guarded derivative keeps the
// backward pass NaN-free.
func TestLogAtZero(t *testing.T) {
	g := graph.New()
	x := g.Variable(0)
	y := g.Log(x)

	val, err := Eval(g, y)
	require.NoError(t, err)
	assert.True(t, math.IsInf(val, -1))

	require.NoError(t, Backward(g, y, 1))
	assert.Equal(t, 0.0, x.Gradient)

	x.Dot = 1
	dot, err := EvalDot(g, y)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dot)

	require.NoError(t, HVP(g, y, 1, 0))
	assert.Equal(t, 0.0, x.GradDot)
}

// buildComposite assembles a graph exercising most of the operator set:
//
//	y = gelu(a)·tanh(b) + sin(a·b)/(1 + exp(b)) after a max with -10
func buildComposite(av, bv float64) (*graph.Graph, *graph.Node, *graph.Node, *graph.Node) {
	g := graph.New()
	a := g.Variable(av)
	b := g.Variable(bv)

	ab, _ := g.Mul(a, b)
	sinAB := g.Sin(ab)
	prod, _ := g.Mul(g.Gelu(a), g.Tanh(b))
	denom, _ := g.Add(g.Const(1), g.Exp(b))
	frac := g.Div(sinAB, denom)
	sum, _ := g.Add(prod, frac)
	y := g.Max(sum, g.Const(-10))
	return g, a, b, y
}

func compositeValue(av, bv float64) float64 {
	g, _, _, y := buildComposite(av, bv)
	v, _ := Eval(g, y)
	return v
}

// compositeGrad returns (∂y/∂a, ∂y/∂b) via the engine.
func compositeGrad(av, bv float64) (float64, float64) {
	g, a, b, y := buildComposite(av, bv)
	_, _ = Eval(g, y)
	_ = Backward(g, y, 1)
	return a.Gradient, b.Gradient
}

// TestJVPMatchesDirectionalDerivative: forward tangent equals the
// finite-difference directional derivative.
func TestJVPMatchesDirectionalDerivative(t *testing.T) {
	const av, bv = 0.8, -0.6
	const ua, ub = 0.9, -1.7

	g, a, b, y := buildComposite(av, bv)
	_, err := Eval(g, y)
	require.NoError(t, err)
	a.Dot, b.Dot = ua, ub
	dot, err := EvalDot(g, y)
	require.NoError(t, err)

	const h = 1e-5
	fd := (compositeValue(av+h*ua, bv+h*ub) - compositeValue(av-h*ua, bv-h*ub)) / (2 * h)
	assert.InDelta(t, fd, dot, 1e-6)
}

// TestVJPMatchesJVP: with the output seeded by 1, Σᵢ gradientᵢ·ẋᵢ must
// reproduce the forward-computed tangent.
func TestVJPMatchesJVP(t *testing.T) {
	const av, bv = 1.1, 0.4
	const ua, ub = -0.3, 1.25

	g, a, b, y := buildComposite(av, bv)
	_, err := Eval(g, y)
	require.NoError(t, err)

	a.Dot, b.Dot = ua, ub
	dot, err := EvalDot(g, y)
	require.NoError(t, err)

	require.NoError(t, Backward(g, y, 1))
	assert.InDelta(t, dot, a.Gradient*ua+b.Gradient*ub, 1e-12)
}

// TestGradientMatchesFiniteDifference checks both leaf gradients of the
// composite graph against central differences.
func TestGradientMatchesFiniteDifference(t *testing.T) {
	const av, bv = 0.35, 0.95
	ga, gb := compositeGrad(av, bv)

	const h = 1e-5
	fda := (compositeValue(av+h, bv) - compositeValue(av-h, bv)) / (2 * h)
	fdb := (compositeValue(av, bv+h) - compositeValue(av, bv-h)) / (2 * h)
	assert.InDelta(t, fda, ga, 1e-6)
	assert.InDelta(t, fdb, gb, 1e-6)
}

// hvpDirection runs forward-over-reverse along (ua, ub) and returns the
// leaf grad-tangents (H·u).
func hvpDirection(av, bv, ua, ub float64) (float64, float64) {
	g, a, b, y := buildComposite(av, bv)
	_, _ = Eval(g, y)
	a.Dot, b.Dot = ua, ub
	_, _ = EvalDot(g, y)
	_ = HVP(g, y, 1, 0)
	return a.GradDot, b.GradDot
}

// TestHVPSymmetry: uᵀ(H·v) = vᵀ(H·u) for a twice-differentiable output.
func TestHVPSymmetry(t *testing.T) {
	const av, bv = 0.7, -0.2
	u := [2]float64{0.8, -1.3}
	v := [2]float64{-0.45, 0.6}

	hva, hvb := hvpDirection(av, bv, v[0], v[1])
	hua, hub := hvpDirection(av, bv, u[0], u[1])

	uHv := u[0]*hva + u[1]*hvb
	vHu := v[0]*hua + v[1]*hub
	assert.InDelta(t, uHv, vHu, 1e-9)
}

// TestHVPMatchesGradientDifference: H·u equals the central difference of
// the analytic gradient along u.
func TestHVPMatchesGradientDifference(t *testing.T) {
	const av, bv = 0.55, -0.85
	const ua, ub = 1.4, 0.3

	hua, hub := hvpDirection(av, bv, ua, ub)

	const h = 1e-5
	gap, gbp := compositeGrad(av+h*ua, bv+h*ub)
	gam, gbm := compositeGrad(av-h*ua, bv-h*ub)
	assert.InDelta(t, (gap-gam)/(2*h), hua, 1e-5)
	assert.InDelta(t, (gbp-gbm)/(2*h), hub, 1e-5)
}

// TestRepeatedBackwardDoesNotAccumulateAcrossPasses: each pass starts from
// lazily zeroed accumulators, so rerunning backward gives fresh gradients,
// not sums of old ones.
func TestRepeatedBackwardDoesNotAccumulateAcrossPasses(t *testing.T) {
	g := graph.New()
	x := g.Variable(2)
	y := g.Exp(x)

	_, err := Eval(g, y)
	require.NoError(t, err)

	require.NoError(t, Backward(g, y, 1))
	first := x.Gradient
	require.NoError(t, Backward(g, y, 1))
	assert.Equal(t, first, x.Gradient)

	// Different seed scales the fresh result, with no residue of the old.
	require.NoError(t, Backward(g, y, 2))
	assert.InDelta(t, 2*first, x.Gradient, 1e-12)
}

// TestFanOutAccumulatesWithinPass: a node consumed twice receives both
// contributions in one pass (y = x·x ⇒ dy/dx = 2x).
func TestFanOutAccumulatesWithinPass(t *testing.T) {
	g := graph.New()
	x := g.Variable(3)
	y, err := g.Mul(x, x)
	require.NoError(t, err)

	val, err := Eval(g, y)
	require.NoError(t, err)
	assert.Equal(t, 9.0, val)

	require.NoError(t, Backward(g, y, 1))
	assert.Equal(t, 6.0, x.Gradient)

	// HVP along ẋ=1: d²(x²)/dx² = 2.
	x.Dot = 1
	_, err = EvalDot(g, y)
	require.NoError(t, err)
	require.NoError(t, HVP(g, y, 1, 0))
	assert.Equal(t, 2.0, x.GradDot)
}

// TestStaleSiblingOutputDoesNotLeak: with two outputs over one graph, a
// backward pass for one output must treat the other output's adjoint (live
// in a previous pass) as zero, not propagate it.
func TestStaleSiblingOutputDoesNotLeak(t *testing.T) {
	g := graph.New()
	x := g.Variable(0.4)
	y1 := g.Sin(x)
	y2 := g.Exp(x)

	_, err := Eval(g, y2)
	require.NoError(t, err)

	require.NoError(t, Backward(g, y1, 1))
	assert.InDelta(t, math.Cos(0.4), x.Gradient, 1e-12)

	require.NoError(t, Backward(g, y2, 1))
	assert.InDelta(t, math.Exp(0.4), x.Gradient, 1e-12)
}

// TestValueReuseAcrossPasses: gradients can be recomputed after feeding new
// variable values without rebuilding the graph.
func TestValueReuseAcrossPasses(t *testing.T) {
	g := graph.New()
	x := g.Variable(1)
	y := g.Tanh(x)

	_, err := Eval(g, y)
	require.NoError(t, err)
	require.NoError(t, Backward(g, y, 1))
	t1 := math.Tanh(1.0)
	assert.InDelta(t, 1-t1*t1, x.Gradient, 1e-12)

	x.Value = -0.5
	_, err = Eval(g, y)
	require.NoError(t, err)
	require.NoError(t, Backward(g, y, 1))
	t2 := math.Tanh(-0.5)
	assert.InDelta(t, 1-t2*t2, x.Gradient, 1e-12)
}
