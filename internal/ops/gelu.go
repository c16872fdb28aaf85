package ops

import "math"

// GELU, exact erf-based form (no tanh approximation):
//
//	gelu(x) = 0.5·x·(1 + erf(x/√2))
//	d       = 0.5·(1 + erf(x/√2)) + 0.5·x·A
//	d2      = A·(1 - x²/2)
//
// where A = √(2/π)·exp(-x²/2) is the Gaussian density term.
var geluRule = unaryRule{
	f: func(x float64) float64 {
		z := x * math.Sqrt2 / 2
		return 0.5 * x * (1 + math.Erf(z))
	},
	df: func(x float64) float64 {
		z := x * math.Sqrt2 / 2
		A := math.Sqrt(2/math.Pi) * math.Exp(-0.5*x*x)
		return 0.5*(1+math.Erf(z)) + 0.5*x*A
	},
	d2: func(x float64) float64 {
		A := math.Sqrt(2/math.Pi) * math.Exp(-0.5*x*x)
		return A * (1 - 0.5*x*x)
	},
}
