package ops

var subRule = binaryRule{
	f:    func(a, b float64) float64 { return a - b },
	dfa:  func(a, b float64) float64 { return 1 },
	dfb:  func(a, b float64) float64 { return -1 },
	d2aa: func(a, b float64) float64 { return 0 },
	d2ab: func(a, b float64) float64 { return 0 },
	d2bb: func(a, b float64) float64 { return 0 },
}
