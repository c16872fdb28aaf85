package ops

import (
	"github.com/born-ml/scalargrad/internal/graph"
)

// Constants and variables. Their Value (and Dot, for variables) is fed by
// the builder or the caller's input-feeding step; the forward passes only
// assert liveness by touching the epoch tags. Backward passes are no-ops:
// adjoints accumulated at leaves stay there for the caller to read.

func nullaryForward(n *graph.Node, g *graph.Graph) {
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}

func nullaryForwardDot(n *graph.Node, g *graph.Graph) {
	graph.Touch(&n.DotEpoch, g.CurDotEpoch)
	graph.Touch(&n.ValEpoch, g.CurValEpoch)
}
