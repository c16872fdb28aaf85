// Package engine drives the four autodiff passes over a computation graph.
//
// Each pass bumps the graph's matching epoch counter, then walks the nodes
// in topological order (forward passes) or reverse topological order
// (backward passes), dispatching on the node's operator. Because a bumped
// counter makes every slot of that pass stale at once, no clearing step is
// needed between evaluations: the cost of a pass is proportional to the
// nodes it touches, not to graph size.
package engine

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/scalargrad/internal/graph"
	"github.com/born-ml/scalargrad/internal/ops"
)

// Eval runs the primal forward pass and returns the output node's value.
func Eval(g *graph.Graph, output *graph.Node) (float64, error) {
	order, err := g.Topo()
	if err != nil {
		return 0, errors.Wrap(err, "engine: eval")
	}
	g.CurValEpoch++
	klog.V(2).Infof("forward pass: %d nodes, epoch %d", len(order), g.CurValEpoch)
	for _, n := range order {
		ops.Forward(n, g)
	}
	return output.Value, nil
}

// EvalDot runs the forward tangent pass (JVP) and returns the output node's
// tangent. Variable tangents (Dot fields of Var leaves) must be fed first.
// The pass derives primal liveness as it goes, so callers typically run
// Eval once and EvalDot for each tangent direction.
func EvalDot(g *graph.Graph, output *graph.Node) (float64, error) {
	order, err := g.Topo()
	if err != nil {
		return 0, errors.Wrap(err, "engine: eval dot")
	}
	g.CurDotEpoch++
	klog.V(2).Infof("tangent pass: %d nodes, epoch %d", len(order), g.CurDotEpoch)
	for _, n := range order {
		ops.ForwardDot(n, g)
	}
	return output.Dot, nil
}

// Backward runs the reverse gradient pass (VJP), seeding the output node's
// adjoint with seed. Leaf gradients are left on the nodes for the caller to
// read. Values must be live (run Eval first).
func Backward(g *graph.Graph, output *graph.Node, seed float64) error {
	order, err := g.Topo()
	if err != nil {
		return errors.Wrap(err, "engine: backward")
	}
	g.CurGradEpoch++
	klog.V(2).Infof("backward pass: %d nodes, epoch %d", len(order), g.CurGradEpoch)
	graph.Set(&output.Gradient, &output.GradEpoch, g.CurGradEpoch, seed)
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		// A node outside the output's ancestor cone has a stale adjoint;
		// it must read as zero before its rule propagates it.
		graph.EnsureZero(&n.Gradient, &n.GradEpoch, g.CurGradEpoch)
		ops.Backward(n, g)
	}
	return nil
}

// HVP runs the forward-over-reverse second-order pass. Values and tangents
// must be live (run Eval and EvalDot first); the output adjoint is seeded
// with seed and its grad-tangent with seedDot (1 and 0 for a plain
// Hessian-vector product). After the pass each leaf holds its gradient and
// the corresponding H·ẋ component in GradDot.
func HVP(g *graph.Graph, output *graph.Node, seed, seedDot float64) error {
	order, err := g.Topo()
	if err != nil {
		return errors.Wrap(err, "engine: hvp")
	}
	g.CurGradEpoch++
	g.CurGdotEpoch++
	klog.V(2).Infof("hvp pass: %d nodes, epochs %d/%d",
		len(order), g.CurGradEpoch, g.CurGdotEpoch)
	graph.Set(&output.Gradient, &output.GradEpoch, g.CurGradEpoch, seed)
	graph.Set(&output.GradDot, &output.GdotEpoch, g.CurGdotEpoch, seedDot)
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		graph.EnsureZero(&n.Gradient, &n.GradEpoch, g.CurGradEpoch)
		graph.EnsureZero(&n.GradDot, &n.GdotEpoch, g.CurGdotEpoch)
		ops.HVPBackward(n, g)
	}
	return nil
}
