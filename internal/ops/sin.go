package ops

import "math"

var sinRule = unaryRule{
	f:  math.Sin,
	df: math.Cos,
	d2: func(x float64) float64 { return -math.Sin(x) },
}
