package ops

// reluRule is nonsmooth at 0; the left subgradient (0) is used there.
var reluRule = unaryRule{
	f: func(x float64) float64 {
		if x > 0 {
			return x
		}
		return 0
	},
	df: func(x float64) float64 {
		if x > 0 {
			return 1
		}
		return 0
	},
	d2: func(x float64) float64 { return 0 },
}
