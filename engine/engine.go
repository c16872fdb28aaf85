// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the public pass drivers for ScalarGrad: primal
// evaluation, forward tangents (JVP), reverse gradients (VJP) and
// Hessian-vector products (HVP, forward-over-reverse).
package engine

import (
	"github.com/born-ml/scalargrad/internal/engine"
	"github.com/born-ml/scalargrad/internal/graph"
	"github.com/born-ml/scalargrad/internal/ops"
	"github.com/born-ml/scalargrad/internal/parallel"
)

// Task pairs a graph with its output node for batch evaluation.
type Task = engine.Task

// ParallelConfig controls EvalBatch concurrency.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns CPU-count based defaults.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Eval runs the primal forward pass and returns the output node's value.
func Eval(g *graph.Graph, output *graph.Node) (float64, error) {
	return engine.Eval(g, output)
}

// EvalDot runs the forward tangent pass (JVP) and returns the output
// node's tangent.
func EvalDot(g *graph.Graph, output *graph.Node) (float64, error) {
	return engine.EvalDot(g, output)
}

// Backward runs the reverse gradient pass (VJP) with the given output seed.
func Backward(g *graph.Graph, output *graph.Node, seed float64) error {
	return engine.Backward(g, output, seed)
}

// HVP runs the forward-over-reverse second-order pass with the given
// gradient and grad-tangent seeds (1 and 0 for a plain Hessian-vector
// product).
func HVP(g *graph.Graph, output *graph.Node, seed, seedDot float64) error {
	return engine.HVP(g, output, seed, seedDot)
}

// EvalBatch evaluates independent graphs concurrently.
func EvalBatch(tasks []Task, cfg ParallelConfig) ([]float64, error) {
	return engine.EvalBatch(tasks, cfg)
}

// OpName returns the stable human-readable name for an operator tag.
func OpName(op graph.Operator) string {
	return ops.Name(op)
}
