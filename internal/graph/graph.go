// Package graph defines the computation-graph data model for scalar
// reverse-mode automatic differentiation: nodes with epoch-tagged
// accumulator slots, the graph arena that owns them, and the builder API
// used to grow a DAG of scalar operations.
//
// The differentiation rules themselves live in internal/ops; the pass
// drivers that walk the graph live in internal/engine.
package graph

import (
	"github.com/pkg/errors"
)

// Graph is an arena of nodes plus the four pass counters.
//
// Nodes are appended in construction order, which is already a topological
// order because constructors may only reference nodes that exist. The
// counters are bumped by the engine at the start of the matching pass; a
// node slot whose tag differs from the counter is stale (see EnsureZero).
type Graph struct {
	nodes []*Node

	CurValEpoch  uint64
	CurDotEpoch  uint64
	CurGradEpoch uint64
	CurGdotEpoch uint64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make([]*Node, 0, 64), // Pre-allocate for common case
	}
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Nodes returns the arena in construction (topological) order.
// The slice is owned by the graph; callers must not modify it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// add appends a node to the arena and returns it.
func (g *Graph) add(op Operator, inputs ...*Node) *Node {
	n := &Node{Op: op, Inputs: inputs}
	g.nodes = append(g.nodes, n)
	return n
}

// Const creates a constant leaf with the given value.
// The value is live from the start of every forward pass (the Cte rule
// touches its epoch), so constants never need re-feeding.
func (g *Graph) Const(v float64) *Node {
	n := g.add(Cte)
	n.Value = v
	return n
}

// Variable creates a variable leaf. Its Value (and Dot, for tangent passes)
// is fed by the caller before each evaluation; the Var rule only asserts
// liveness.
func (g *Graph) Variable(v float64) *Node {
	n := g.add(Var)
	n.Value = v
	return n
}

// Unary constructors.

func (g *Graph) Sin(a *Node) *Node  { return g.add(Sin, a) }
func (g *Graph) Cos(a *Node) *Node  { return g.add(Cos, a) }
func (g *Graph) Tan(a *Node) *Node  { return g.add(Tan, a) }
func (g *Graph) Exp(a *Node) *Node  { return g.add(Exp, a) }
func (g *Graph) Log(a *Node) *Node  { return g.add(Log, a) }
func (g *Graph) Tanh(a *Node) *Node { return g.add(Tanh, a) }
func (g *Graph) Silu(a *Node) *Node { return g.add(Silu, a) }
func (g *Graph) Gelu(a *Node) *Node { return g.add(Gelu, a) }
func (g *Graph) Relu(a *Node) *Node { return g.add(Relu, a) }

// Binary constructors.

func (g *Graph) Sub(a, b *Node) *Node { return g.add(Subtract, a, b) }
func (g *Graph) Div(a, b *Node) *Node { return g.add(Divide, a, b) }

// Max creates a binary max node. Ties route derivatives to a.
func (g *Graph) Max(a, b *Node) *Node { return g.add(Max, a, b) }

// N-ary constructors. An empty input list is a builder bug and is rejected.

// Add creates an n-ary sum node.
func (g *Graph) Add(inputs ...*Node) (*Node, error) {
	if len(inputs) == 0 {
		return nil, errors.New("graph: Add requires at least one input")
	}
	return g.add(Add, inputs...), nil
}

// Mul creates an n-ary product node.
func (g *Graph) Mul(inputs ...*Node) (*Node, error) {
	if len(inputs) == 0 {
		return nil, errors.New("graph: Mul requires at least one input")
	}
	return g.add(Multiply, inputs...), nil
}

// Softmax creates a node producing softmax(inputs)[0], the component of the
// first input. Gradients propagate to all inputs.
func (g *Graph) Softmax(inputs ...*Node) (*Node, error) {
	if len(inputs) == 0 {
		return nil, errors.New("graph: Softmax requires at least one input")
	}
	return g.add(Softmax, inputs...), nil
}

// Topo returns the nodes in topological order, verifying that every input
// precedes its consumer. Arena order satisfies this for graphs built through
// the constructors; a violation means nodes from another graph were spliced
// in, which the engine cannot evaluate safely.
func (g *Graph) Topo() ([]*Node, error) {
	pos := make(map[*Node]int, len(g.nodes))
	for i, n := range g.nodes {
		pos[n] = i
	}
	for i, n := range g.nodes {
		for _, in := range n.Inputs {
			if in == nil {
				continue // malformed node; the rule table no-ops on it
			}
			j, ok := pos[in]
			if !ok {
				return nil, errors.Errorf("graph: node %d references an input outside this graph", i)
			}
			if j >= i {
				return nil, errors.Errorf("graph: node %d references a later node %d", i, j)
			}
		}
	}
	return g.nodes, nil
}
