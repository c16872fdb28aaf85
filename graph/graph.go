// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the public computation-graph API for ScalarGrad.
//
// A graph is an arena of scalar nodes built through constructor methods;
// every node carries epoch-tagged accumulators for the four autodiff passes
// (value, tangent, gradient, grad-tangent).
//
// Example:
//
//	import (
//	    "github.com/born-ml/scalargrad/engine"
//	    "github.com/born-ml/scalargrad/graph"
//	)
//
//	func main() {
//	    g := graph.New()
//	    x := g.Variable(math.Pi / 4)
//	    y := g.Sin(x)
//
//	    val, _ := engine.Eval(g, y)        // sin(π/4)
//	    _ = engine.Backward(g, y, 1)       // x.Gradient = cos(π/4)
//	}
package graph

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// Graph is an arena of nodes plus the four pass epoch counters.
type Graph = graph.Graph

// Node is one scalar operation with epoch-tagged accumulator slots.
type Node = graph.Node

// Operator identifies the arithmetic operation a node performs.
type Operator = graph.Operator

// Operator tags.
const (
	Cte      = graph.Cte
	Var      = graph.Var
	Add      = graph.Add
	Subtract = graph.Subtract
	Multiply = graph.Multiply
	Divide   = graph.Divide
	Sin      = graph.Sin
	Cos      = graph.Cos
	Tan      = graph.Tan
	Exp      = graph.Exp
	Log      = graph.Log
	Max      = graph.Max
	Tanh     = graph.Tanh
	Silu     = graph.Silu
	Gelu     = graph.Gelu
	Relu     = graph.Relu
	Softmax  = graph.Softmax
)

// New creates an empty graph.
func New() *Graph {
	return graph.New()
}
