package genetics

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	neatmath "github.com/fenwick-labs/neatcore/neat/math"
	"github.com/fenwick-labs/neatcore/network"
)

// Genome is the genotype: an unordered set of node genes and an
// innovation-ordered slice of link genes (spec §3). Links are always
// kept sorted ascending by Innovation, which is what lets Compatibility
// and crossover align two genomes in a single linear pass.
type Genome struct {
	ID    int
	Nodes []Node
	Links []Link
}

// NewInitialGenome builds the minimal fully-connected starting genome for
// numInputs inputs, one bias node and numOutputs outputs (spec §4.1): every
// input and the bias node connect to every output, weight 0, enabled,
// non-recurrent. Node ids are assigned inputs first, then bias, then
// outputs; link innovations are assigned in the same nested order,
// outputs outer, (inputs..., bias) inner — reproducing scenario S1 for
// numInputs=2, numOutputs=1: nodes [In:0, In:1, Bias:2, Out:3], links
// (0→3, 1→3, 2→3) with innovations 0, 1, 2.
func NewInitialGenome(id, numInputs, numOutputs int) *Genome {
	g := &Genome{ID: id}

	for i := 0; i < numInputs; i++ {
		g.Nodes = append(g.Nodes, Node{ID: i, Kind: network.Input})
	}
	biasID := numInputs
	g.Nodes = append(g.Nodes, Node{ID: biasID, Kind: network.Bias})

	firstOutputID := numInputs + 1
	for o := 0; o < numOutputs; o++ {
		g.Nodes = append(g.Nodes, Node{ID: firstOutputID + o, Kind: network.Output})
	}

	var innov int64
	for o := 0; o < numOutputs; o++ {
		outID := firstOutputID + o
		for i := 0; i < numInputs; i++ {
			g.Links = append(g.Links, Link{FromID: i, ToID: outID, Weight: 0, Enabled: true, Innovation: innov})
			innov++
		}
		g.Links = append(g.Links, Link{FromID: biasID, ToID: outID, Weight: 0, Enabled: true, Innovation: innov})
		innov++
	}
	return g
}

// NextNodeID returns one past the highest node id currently in the
// genome. This is genome-local and must only be used to seed a
// Population's population-wide node id counter at construction time
// (spec §3); once a population exists, new hidden nodes must draw their
// id from that shared counter, not from any single genome's own max+1,
// or two genomes splitting different links in the same generation could
// mint the same id.
func (g *Genome) NextNodeID() int {
	max := -1
	for _, n := range g.Nodes {
		if n.ID > max {
			max = n.ID
		}
	}
	return max + 1
}

// NextInnovation returns one past the highest innovation number currently
// present in the genome, the starting point for a fresh InnovationRegistry.
func (g *Genome) NextInnovation() int64 {
	var max int64 = -1
	for _, l := range g.Links {
		if l.Innovation > max {
			max = l.Innovation
		}
	}
	return max + 1
}

func (g *Genome) nodeByID(id int) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func (g *Genome) hasLink(from, to int) bool {
	for _, l := range g.Links {
		if l.FromID == from && l.ToID == to {
			return true
		}
	}
	return false
}

// AddLink inserts a new link gene, keeping Links sorted ascending by
// Innovation (spec §4.1 "links are always kept in innovation order").
func (g *Genome) AddLink(l Link) {
	i := sort.Search(len(g.Links), func(i int) bool { return g.Links[i].Innovation >= l.Innovation })
	g.Links = append(g.Links, Link{})
	copy(g.Links[i+1:], g.Links[i:])
	g.Links[i] = l
}

// AddNode appends a new node gene.
func (g *Genome) AddNode(n Node) {
	g.Nodes = append(g.Nodes, n)
}

// Duplicate returns a deep, independent copy of the genome under a new id.
func (g *Genome) Duplicate(newID int) *Genome {
	dup := &Genome{
		ID:    newID,
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Link, len(g.Links)),
	}
	copy(dup.Nodes, g.Nodes)
	for i, l := range g.Links {
		dup.Links[i] = l.duplicate()
	}
	return dup
}

// CompatCoefficients are the three weights of the compatibility distance
// formula (spec §4.1): d = c_disjoint*D + c_excess*E + c_weight*W̄.
type CompatCoefficients struct {
	Disjoint float64
	Excess   float64
	Weight   float64
}

// Compatibility computes the genetic distance between g and other via a
// single ascending-innovation-order pass over both link lists (spec §4.1).
// Matching genes (same innovation in both) contribute to the mean weight
// difference; genes present in only one genome are disjoint if they fall
// within the other genome's innovation range, excess otherwise.
func (g *Genome) Compatibility(other *Genome, c CompatCoefficients) float64 {
	a, b := g.Links, other.Links
	var disjoint, excess, matching int
	var weightDiffSum float64

	maxA := lastInnovation(a)
	maxB := lastInnovation(b)

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Innovation == b[j].Innovation:
			weightDiffSum += absFloat(a[i].Weight - b[j].Weight)
			matching++
			i++
			j++
		case a[i].Innovation < b[j].Innovation:
			if a[i].Innovation > maxB {
				excess++
			} else {
				disjoint++
			}
			i++
		default:
			if b[j].Innovation > maxA {
				excess++
			} else {
				disjoint++
			}
			j++
		}
	}
	for ; i < len(a); i++ {
		excess++
	}
	for ; j < len(b); j++ {
		excess++
	}

	var meanWeightDiff float64
	if matching > 0 {
		meanWeightDiff = weightDiffSum / float64(matching)
	}

	return c.Disjoint*float64(disjoint) + c.Excess*float64(excess) + c.Weight*meanWeightDiff
}

func lastInnovation(links []Link) int64 {
	if len(links) == 0 {
		return -1
	}
	return links[len(links)-1].Innovation
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// IsNewLinkRecurrent reports whether a prospective link from fromID to
// toID would be recurrent: it is recurrent exactly when toID can already
// reach fromID by following enabled, non-recurrent links forward
// (spec §4.2 "recurrence is classified by reachability, not by node
// order"). A self-link (fromID == toID) is always recurrent.
func (g *Genome) IsNewLinkRecurrent(fromID, toID int) bool {
	if fromID == toID {
		return true
	}
	visited := map[int]bool{toID: true}
	stack := []int{toID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == fromID {
			return true
		}
		for _, l := range g.Links {
			if !l.Enabled || l.IsRecurrent || l.FromID != cur {
				continue
			}
			if !visited[l.ToID] {
				visited[l.ToID] = true
				stack = append(stack, l.ToID)
			}
		}
	}
	return false
}

// Verify checks the genome's structural invariants (spec §8, invariants
// 1-4): every link references existing nodes, no duplicate (from, to)
// pair among enabled links, links stay sorted ascending by innovation,
// and every weight is within the clamp bound.
func (g *Genome) Verify() error {
	nodeIDs := make(map[int]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if nodeIDs[n.ID] {
			return errors.Errorf("genome %d: duplicate node id %d", g.ID, n.ID)
		}
		nodeIDs[n.ID] = true
	}

	seen := make(map[[2]int]bool, len(g.Links))
	var lastInnov int64 = -1
	for _, l := range g.Links {
		if !nodeIDs[l.FromID] {
			return errors.Errorf("genome %d: link references unknown from-node %d", g.ID, l.FromID)
		}
		if !nodeIDs[l.ToID] {
			return errors.Errorf("genome %d: link references unknown to-node %d", g.ID, l.ToID)
		}
		if l.Innovation < lastInnov {
			return errors.Errorf("genome %d: links out of innovation order at %d", g.ID, l.Innovation)
		}
		lastInnov = l.Innovation
		if l.Enabled {
			key := [2]int{l.FromID, l.ToID}
			if seen[key] {
				return errors.Errorf("genome %d: duplicate enabled link %d->%d", g.ID, l.FromID, l.ToID)
			}
			seen[key] = true
		}
		if absFloat(l.Weight) > weightClampMagnitude {
			return errors.Errorf("genome %d: link %d->%d weight %f exceeds clamp", g.ID, l.FromID, l.ToID, l.Weight)
		}
	}
	return nil
}

// Genesis projects the genome into an activatable network.Network,
// including only enabled links — disabled genes never reach the
// phenotype (spec §3; matches the teacher's Genesis, which skips any
// gene with IsEnabled == false).
func (g *Genome) Genesis() (*network.Network, error) {
	if len(g.Nodes) == 0 {
		return nil, fmt.Errorf("genome %d: genesis without nodes", g.ID)
	}
	nodes := make([]network.NodeSpec, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = network.NodeSpec{ID: n.ID, Kind: n.Kind, ActivationType: neatmath.TanhActivation}
	}

	var links []network.LinkSpec
	for _, l := range g.Links {
		if !l.Enabled {
			continue
		}
		links = append(links, network.LinkSpec{FromID: l.FromID, ToID: l.ToID, Weight: l.Weight})
	}

	return network.NewNetwork(nodes, links)
}
