// Package ops implements the per-operator differentiation rules for the
// scalar autodiff engine.
//
// Every operator provides four pass bodies, dispatched on the node's tag:
//   - Forward: primal value evaluation
//   - ForwardDot: forward tangent propagation (JVP)
//   - Backward: reverse gradient accumulation (VJP)
//   - HVPBackward: forward-over-reverse second order (HVP)
//
// Forward passes write the node's own slot; backward passes accumulate into
// the inputs' slots. All writes go through the epoch protocol in
// internal/graph, so no pass ever needs a whole-graph zeroing step.
//
// The rules are total on float64: arity mismatches and nil inputs are silent
// no-ops (a builder bug, not a runtime condition), and singular domains
// (log at 0, tan at cos=0, divide by 0) clamp the derivative to 0 instead of
// producing NaN. Callers needing strict IEEE behaviour must not evaluate at
// singular points.
package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// Name returns the stable human-readable name for an operator tag.
func Name(op graph.Operator) string {
	switch op {
	case graph.Cte:
		return "cte"
	case graph.Var:
		return "var"
	case graph.Add:
		return "add"
	case graph.Subtract:
		return "subtract"
	case graph.Multiply:
		return "multiply"
	case graph.Divide:
		return "divide"
	case graph.Sin:
		return "sin"
	case graph.Cos:
		return "cos"
	case graph.Tan:
		return "tan"
	case graph.Exp:
		return "exp"
	case graph.Log:
		return "log"
	case graph.Max:
		return "max"
	case graph.Tanh:
		return "tanh"
	case graph.Silu:
		return "silu"
	case graph.Gelu:
		return "gelu"
	case graph.Relu:
		return "relu"
	case graph.Softmax:
		return "softmax"
	default:
		return "unknown"
	}
}

// Forward evaluates the node's primal value from its inputs' values.
func Forward(n *graph.Node, g *graph.Graph) {
	switch n.Op {
	case graph.Cte, graph.Var:
		nullaryForward(n, g)
	case graph.Add:
		addForward(n, g)
	case graph.Subtract:
		subRule.forward(n, g)
	case graph.Multiply:
		mulForward(n, g)
	case graph.Divide:
		divRule.forward(n, g)
	case graph.Sin:
		sinRule.forward(n, g)
	case graph.Cos:
		cosRule.forward(n, g)
	case graph.Tan:
		tanRule.forward(n, g)
	case graph.Exp:
		expRule.forward(n, g)
	case graph.Log:
		logRule.forward(n, g)
	case graph.Max:
		maxForward(n, g)
	case graph.Tanh:
		tanhRule.forward(n, g)
	case graph.Silu:
		siluRule.forward(n, g)
	case graph.Gelu:
		geluRule.forward(n, g)
	case graph.Relu:
		reluRule.forward(n, g)
	case graph.Softmax:
		softmaxForward(n, g)
	}
	// Unknown tags: no-op; no slot is read or written.
}

// ForwardDot propagates the forward tangent (JVP) through the node.
// It also touches the node's value epoch: a tangent pass asserts primal
// liveness for the slots it derives from.
func ForwardDot(n *graph.Node, g *graph.Graph) {
	switch n.Op {
	case graph.Cte, graph.Var:
		nullaryForwardDot(n, g)
	case graph.Add:
		addForwardDot(n, g)
	case graph.Subtract:
		subRule.forwardDot(n, g)
	case graph.Multiply:
		mulForwardDot(n, g)
	case graph.Divide:
		divRule.forwardDot(n, g)
	case graph.Sin:
		sinRule.forwardDot(n, g)
	case graph.Cos:
		cosRule.forwardDot(n, g)
	case graph.Tan:
		tanRule.forwardDot(n, g)
	case graph.Exp:
		expRule.forwardDot(n, g)
	case graph.Log:
		logRule.forwardDot(n, g)
	case graph.Max:
		maxForwardDot(n, g)
	case graph.Tanh:
		tanhRule.forwardDot(n, g)
	case graph.Silu:
		siluRule.forwardDot(n, g)
	case graph.Gelu:
		geluRule.forwardDot(n, g)
	case graph.Relu:
		reluRule.forwardDot(n, g)
	case graph.Softmax:
		softmaxForwardDot(n, g)
	}
}

// Backward accumulates the node's adjoint into its inputs' gradients (VJP).
func Backward(n *graph.Node, g *graph.Graph) {
	switch n.Op {
	case graph.Add:
		addBackward(n, g)
	case graph.Subtract:
		subRule.backward(n, g)
	case graph.Multiply:
		mulBackward(n, g)
	case graph.Divide:
		divRule.backward(n, g)
	case graph.Sin:
		sinRule.backward(n, g)
	case graph.Cos:
		cosRule.backward(n, g)
	case graph.Tan:
		tanRule.backward(n, g)
	case graph.Exp:
		expRule.backward(n, g)
	case graph.Log:
		logRule.backward(n, g)
	case graph.Max:
		maxBackward(n, g)
	case graph.Tanh:
		tanhRule.backward(n, g)
	case graph.Silu:
		siluRule.backward(n, g)
	case graph.Gelu:
		geluRule.backward(n, g)
	case graph.Relu:
		reluRule.backward(n, g)
	case graph.Softmax:
		softmaxBackward(n, g)
	}
	// Cte/Var: adjoints arriving at leaves stay there for the caller to read.
}

// HVPBackward accumulates both the first-order adjoint and the
// forward-over-reverse second-order term into the inputs.
func HVPBackward(n *graph.Node, g *graph.Graph) {
	switch n.Op {
	case graph.Add:
		addHVPBackward(n, g)
	case graph.Subtract:
		subRule.hvpBackward(n, g)
	case graph.Multiply:
		mulHVPBackward(n, g)
	case graph.Divide:
		divRule.hvpBackward(n, g)
	case graph.Sin:
		sinRule.hvpBackward(n, g)
	case graph.Cos:
		cosRule.hvpBackward(n, g)
	case graph.Tan:
		tanRule.hvpBackward(n, g)
	case graph.Exp:
		expRule.hvpBackward(n, g)
	case graph.Log:
		logRule.hvpBackward(n, g)
	case graph.Max:
		maxHVPBackward(n, g)
	case graph.Tanh:
		tanhRule.hvpBackward(n, g)
	case graph.Silu:
		siluRule.hvpBackward(n, g)
	case graph.Gelu:
		geluRule.hvpBackward(n, g)
	case graph.Relu:
		reluRule.hvpBackward(n, g)
	case graph.Softmax:
		softmaxHVPBackward(n, g)
	}
}
