package engine

import (
	"github.com/pkg/errors"

	"github.com/born-ml/scalargrad/internal/graph"
	"github.com/born-ml/scalargrad/internal/parallel"
)

// Task pairs a graph with its output node for batch evaluation.
type Task struct {
	Graph  *graph.Graph
	Output *graph.Node
}

// EvalBatch evaluates independent graphs concurrently and returns their
// output values. The rule table is sequential within a pass, so parallelism
// is only safe across disjoint graphs; tasks must not share nodes.
func EvalBatch(tasks []Task, cfg parallel.Config) ([]float64, error) {
	vals := make([]float64, len(tasks))
	errs := make([]error, len(tasks))
	parallel.For(len(tasks), func(i int) {
		vals[i], errs[i] = Eval(tasks[i].Graph, tasks[i].Output)
	}, cfg)
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "engine: batch task %d", i)
		}
	}
	return vals, nil
}
