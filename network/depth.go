package network

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// MaxActivationDepth returns, over every (Input or Bias, Output) node
// pair, the number of edges on the shortest directed path between them,
// and reports the largest such count, ignoring edge weight and direction
// of recurrence. It is a diagnostic only — Activate's 50-iteration cap is
// the actual runtime guarantee (spec §9).
//
// Depth is computed with Johnson's all-pairs shortest path over a unit-cost
// directed graph of the phenotype's Outgoing edges; every edge costs 1, so
// the cycles that recurrent links introduce have positive weight.
func (n *Network) MaxActivationDepth() (int, error) {
	g := simple.NewWeightedDirectedGraph(1, 0)
	for i := range n.Nodes {
		g.AddNode(simple.Node(i))
	}
	for i, node := range n.Nodes {
		for _, to := range node.Outgoing {
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(to), 1))
		}
	}

	paths, ok := path.JohnsonAllPaths(g)
	if !ok {
		return 0, nil
	}

	maxDepth := 0
	for _, fromIdx := range n.inputs {
		depth := deepestPathTo(n, paths, g, fromIdx)
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	for i, node := range n.Nodes {
		if node.Kind != Bias {
			continue
		}
		depth := deepestPathTo(n, paths, g, i)
		if depth > maxDepth {
			maxDepth = depth
		}
	}
	return maxDepth, nil
}

func deepestPathTo(n *Network, paths path.AllShortest, g graph.Directed, fromIdx int) int {
	best := 0
	for _, outIdx := range n.outputs {
		weight, _ := paths.Weight(int64(fromIdx), int64(outIdx))
		if weight > 0 && int(weight) > best {
			best = int(weight)
		}
	}
	return best
}
