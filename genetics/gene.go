// Package genetics implements the genotype layer: nodes and links
// annotated with historical markings, genomes built from them, and the
// mutation, crossover, speciation and reproduction operators that evolve
// a population (spec §4).
package genetics

import (
	"github.com/fenwick-labs/neatcore/network"
)

// weightClampMagnitude bounds every link weight to [-8, 8] (spec §4.2,
// §8 invariant 4), applied after every mutation that touches a weight.
const weightClampMagnitude = 8.0

// Node is a genome-level node: an id and a kind, with no activation
// state of its own (that lives only in the phenotype built by Genesis).
type Node struct {
	ID   int
	Kind network.NodeKind
}

// Link is a genome-level connection gene: an innovation-numbered edge
// between two node ids, carrying a weight, enabled flag and recurrence
// classification (spec §3).
type Link struct {
	FromID, ToID int
	Weight       float64
	Enabled      bool
	IsRecurrent  bool
	Innovation   int64
}

func clampWeight(w float64) float64 {
	if w > weightClampMagnitude {
		return weightClampMagnitude
	}
	if w < -weightClampMagnitude {
		return -weightClampMagnitude
	}
	return w
}

// duplicate returns an independent copy of the link.
func (l Link) duplicate() Link {
	return Link{
		FromID:      l.FromID,
		ToID:        l.ToID,
		Weight:      l.Weight,
		Enabled:     l.Enabled,
		IsRecurrent: l.IsRecurrent,
		Innovation:  l.Innovation,
	}
}
