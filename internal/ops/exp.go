package ops

import "math"

var expRule = unaryRule{
	f:  math.Exp,
	df: math.Exp,
	d2: math.Exp,
}
