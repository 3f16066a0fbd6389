// Package network implements the phenotype: the activatable neural network
// projected from a genome's topology. A Network owns nothing of the
// genome it was built from beyond the raw NodeSpec/LinkSpec it was
// constructed with — mutation never touches a live Network (spec §9
// "Phenotype as a view of the genome"); a new one is built on each genesis.
package network

import (
	"errors"
	"fmt"

	neatmath "github.com/fenwick-labs/neatcore/neat/math"
)

// NodeKind classifies a node's role in the network, shared between the
// genome's nodes and the phenotype's nodes (spec §3).
type NodeKind uint8

const (
	Hidden NodeKind = iota
	Input
	Output
	Bias
)

func (k NodeKind) String() string {
	switch k {
	case Input:
		return "Input"
	case Output:
		return "Output"
	case Bias:
		return "Bias"
	default:
		return "Hidden"
	}
}

// NodeSpec describes one node to project into a phenotype.
type NodeSpec struct {
	ID             int
	Kind           NodeKind
	ActivationType neatmath.ActivationType
}

// LinkSpec describes one enabled link to project into a phenotype. Only
// enabled genome links should be passed here — disabled links have no
// phenotype representation (matching the teacher's Genesis which skips
// any gene with IsEnabled == false).
type LinkSpec struct {
	FromID, ToID int
	Weight       float64
}

// maxActivationIterations is the hard iteration cap from spec §4.4: a
// deliberate truncation, not a convergence guarantee (spec §9).
const maxActivationIterations = 50

// PhenotypeNode is one index-addressed node of a Network.
type PhenotypeNode struct {
	ID             int
	Kind           NodeKind
	ActivationType neatmath.ActivationType

	// Incoming[i] is the node index a weighted edge arrives from;
	// Weights[i] is the paired weight.
	Incoming []int
	Weights  []float64
	// Outgoing holds the node indices this node feeds, informational only
	// (activation reads from Incoming; Outgoing is kept for diagnostics and
	// for depth/graph analysis).
	Outgoing []int

	Active     bool
	InputSum   float64
	Activation float64
}

// Network is the phenotype built from a Genome: an index-addressed node
// list plus a NodeId -> index lookup (spec §3).
type Network struct {
	Nodes   []*PhenotypeNode
	index   map[int]int
	inputs  []int
	outputs []int
}

// NewNetwork projects a phenotype from the given node and (already
// enabled-filtered) link specs.
func NewNetwork(nodes []NodeSpec, links []LinkSpec) (*Network, error) {
	if len(nodes) == 0 {
		return nil, errors.New("network: no nodes given")
	}
	n := &Network{
		Nodes: make([]*PhenotypeNode, len(nodes)),
		index: make(map[int]int, len(nodes)),
	}
	for i, ns := range nodes {
		if _, exists := n.index[ns.ID]; exists {
			return nil, fmt.Errorf("network: duplicate node id %d", ns.ID)
		}
		n.index[ns.ID] = i
		activation := ns.ActivationType
		n.Nodes[i] = &PhenotypeNode{
			ID:             ns.ID,
			Kind:           ns.Kind,
			ActivationType: activation,
		}
		switch ns.Kind {
		case Input:
			n.inputs = append(n.inputs, i)
		case Output:
			n.outputs = append(n.outputs, i)
		}
	}
	if len(n.outputs) == 0 {
		return nil, errors.New("network: no output nodes")
	}

	for _, ls := range links {
		fromIdx, ok := n.index[ls.FromID]
		if !ok {
			return nil, fmt.Errorf("network: link references unknown from-node %d", ls.FromID)
		}
		toIdx, ok := n.index[ls.ToID]
		if !ok {
			return nil, fmt.Errorf("network: link references unknown to-node %d", ls.ToID)
		}
		to := n.Nodes[toIdx]
		to.Incoming = append(to.Incoming, fromIdx)
		to.Weights = append(to.Weights, ls.Weight)
		n.Nodes[fromIdx].Outgoing = append(n.Nodes[fromIdx].Outgoing, toIdx)
	}

	n.initBiasActivation()
	return n, nil
}

// initBiasActivation sets Bias nodes to their fixed activation of 1.0
// (spec §3 "Bias nodes start with activation=1.0").
func (n *Network) initBiasActivation() {
	for _, node := range n.Nodes {
		if node.Kind == Bias {
			node.Activation = 1.0
			node.Active = true
		}
	}
}

// Flush resets activation state for all non-Bias nodes (spec §4.4).
func (n *Network) Flush() {
	for _, node := range n.Nodes {
		if node.Kind == Bias {
			continue
		}
		node.Active = false
		node.Activation = 0.0
		node.InputSum = 0.0
	}
}

// SetInputs writes activations into the Input nodes, in node order, and
// marks them active.
func (n *Network) SetInputs(values []float64) error {
	if len(values) != len(n.inputs) {
		return fmt.Errorf("network: expected %d input values, got %d", len(n.inputs), len(values))
	}
	for i, idx := range n.inputs {
		node := n.Nodes[idx]
		node.Activation = values[i]
		node.Active = true
	}
	return nil
}

// Activate runs the iterative activation protocol of spec §4.4: up to 50
// rounds, tolerating recurrent links by reading predecessor activations
// from the previous iteration (this is implicit in the two-phase
// scan-then-commit structure below — a node's Activation field is not
// overwritten until every node has computed its new input_sum).
func (n *Network) Activate() (bool, error) {
	type pending struct {
		active   bool
		inputSum float64
	}
	scratch := make([]pending, len(n.Nodes))

	for iter := 0; iter < maxActivationIterations; iter++ {
		for i, node := range n.Nodes {
			if node.Kind == Input || node.Kind == Bias {
				continue
			}
			var sum float64
			active := false
			for k, srcIdx := range node.Incoming {
				src := n.Nodes[srcIdx]
				if src.Kind == Input || src.Kind == Bias || src.Active {
					sum += node.Weights[k] * src.Activation
					active = true
				}
			}
			scratch[i] = pending{active: active, inputSum: sum}
		}

		for i, node := range n.Nodes {
			if node.Kind == Input || node.Kind == Bias {
				continue
			}
			p := scratch[i]
			node.InputSum = p.inputSum
			if p.active {
				node.Active = true
				node.Activation = neatmath.Activate(node.ActivationType, p.inputSum)
			}
		}

		if n.allOutputsActive() {
			return true, nil
		}
	}
	return n.allOutputsActive(), nil
}

func (n *Network) allOutputsActive() bool {
	for _, idx := range n.outputs {
		if !n.Nodes[idx].Active {
			return false
		}
	}
	return true
}

// Outputs returns the activations of the Output nodes, in node order.
func (n *Network) Outputs() []float64 {
	out := make([]float64, len(n.outputs))
	for i, idx := range n.outputs {
		out[i] = n.Nodes[idx].Activation
	}
	return out
}

// Clone copies only activation state (Active/InputSum/Activation), never
// the topology, matching spec §9: "cloning a Network clones only
// activation state". Safe to call concurrently on distinct goroutines as
// long as the source Network is not being mutated.
func (n *Network) Clone() *Network {
	clone := &Network{
		index:   n.index,
		inputs:  n.inputs,
		outputs: n.outputs,
		Nodes:   make([]*PhenotypeNode, len(n.Nodes)),
	}
	for i, node := range n.Nodes {
		c := *node
		c.Incoming = node.Incoming
		c.Weights = node.Weights
		c.Outgoing = node.Outgoing
		clone.Nodes[i] = &c
	}
	return clone
}

// NodeCount returns the number of phenotype nodes.
func (n *Network) NodeCount() int { return len(n.Nodes) }

// LinkCount returns the number of phenotype links (sum of per-node
// incoming edges).
func (n *Network) LinkCount() int {
	count := 0
	for _, node := range n.Nodes {
		count += len(node.Incoming)
	}
	return count
}

// Complexity is the sum of node and link counts, a size measure for
// diagnostics; species ranking does not use it.
func (n *Network) Complexity() int {
	return n.NodeCount() + n.LinkCount()
}
