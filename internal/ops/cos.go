package ops

import "math"

var cosRule = unaryRule{
	f:  math.Cos,
	df: func(x float64) float64 { return -math.Sin(x) },
	d2: func(x float64) float64 { return -math.Cos(x) },
}
