package ops

import "math"

// tanhRule: df = sech²x = 1 - tanh²x, d2 = -2 tanh x (1 - tanh²x).
var tanhRule = unaryRule{
	f: math.Tanh,
	df: func(x float64) float64 {
		t := math.Tanh(x)
		return 1 - t*t
	},
	d2: func(x float64) float64 {
		t := math.Tanh(x)
		return -2 * t * (1 - t*t)
	},
}
