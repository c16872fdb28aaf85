package ops

// SiLU (Swish) activation: y = x·σ(x), with σ the stable sigmoid.
//
// For y = x·σ(x):
//
//	dy/dx  = σ(x)·(1 + x·(1 - σ(x)))
//	d²y/dx² = σ(x)(1-σ(x))·(2 + x·(1 - 2σ(x)))
var siluRule = unaryRule{
	f: func(x float64) float64 {
		return x * sigmoid(x)
	},
	df: func(x float64) float64 {
		s := sigmoid(x)
		return s * (1 + x*(1-s))
	},
	d2: func(x float64) float64 {
		s := sigmoid(x)
		sp := s * (1 - s) // σ'
		return sp * (2 + x*(1-2*s))
	},
}
