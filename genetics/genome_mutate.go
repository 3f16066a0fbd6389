package genetics

import (
	"github.com/fenwick-labs/neatcore/neat"
	"github.com/fenwick-labs/neatcore/network"
)

// MutationSettings bundles the mutation-rate tunables a single Mutate call
// reads from neat.Options (spec §4.2, §6).
type MutationSettings struct {
	NewNodeProb            float64
	NewLinkProb            float64
	ChangeLinkWeightsProb  float64
	ChangeLinkWeightsPower float64
	RecurrentLinkProb      float64
	SelfLinkProb           float64
	ToggleEnableProb       float64
	NewLinkTries           int
}

// SettingsFromOptions extracts MutationSettings from a neat.Options.
func SettingsFromOptions(o *neat.Options) MutationSettings {
	return MutationSettings{
		NewNodeProb:            o.NewNodeProb,
		NewLinkProb:            o.NewLinkProb,
		ChangeLinkWeightsProb:  o.ChangeLinkWeightsProb,
		ChangeLinkWeightsPower: o.ChangeLinkWeightsPower,
		RecurrentLinkProb:      o.RecurrentLinkProb,
		SelfLinkProb:           o.SelfLinkProb,
		ToggleEnableProb:       o.ToggleEnableProb,
		NewLinkTries:           o.NewLinkTries,
	}
}

// Mutate applies exactly one structural mutation branch (add-node xor
// add-link) or, failing both rolls, a non-structural pass of independent
// toggle-enable and weight-mutation coin flips over every link (spec
// §4.2; Open Question (a) is resolved in favor of independence rather
// than mutual exclusion between toggle-enable and weight mutation).
// nextNodeID mints the id for a newly split hidden node; callers pass the
// owning Population's global counter (spec §3), never a genome-local one,
// so that two genomes splitting different links in the same generation
// can't mint the same node id.
func Mutate(g *Genome, s MutationSettings, rng neat.RandomSource, registry *InnovationRegistry, nextNodeID func() int) error {
	switch {
	case rng.Float64() < s.NewNodeProb:
		return mutateAddNode(g, rng, registry, nextNodeID)
	case rng.Float64() < s.NewLinkProb:
		return mutateAddLink(g, s, rng, registry)
	default:
		mutateToggleEnable(g, s, rng)
		mutateLinkWeights(g, s, rng)
		return nil
	}
}

// mutateAddNode splits a randomly chosen enabled link in two: the
// original is disabled, a new hidden node is inserted, and two fresh
// links are created — (from, new) with weight 1.0, and (new, to) which
// inherits the original link's weight (spec §4.2; scenario S2). The
// second link is always non-recurrent regardless of the parent link's
// flag (Open Question (b)). nextNodeID must come from the population's
// global counter, not the genome's own max-id+1.
func mutateAddNode(g *Genome, rng neat.RandomSource, registry *InnovationRegistry, nextNodeID func() int) error {
	var enabled []int
	for i, l := range g.Links {
		if l.Enabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		return nil
	}
	idx := enabled[rng.ChooseIndex(len(enabled))]
	old := g.Links[idx]
	g.Links[idx].Enabled = false

	newNodeID, innovIn, innovOut := registry.NodeSplitInnovations(old.FromID, old.ToID, old.Innovation, nextNodeID)
	g.AddNode(Node{ID: newNodeID, Kind: network.Hidden})

	g.AddLink(Link{
		FromID:      old.FromID,
		ToID:        newNodeID,
		Weight:      1.0,
		Enabled:     true,
		IsRecurrent: old.IsRecurrent,
		Innovation:  innovIn,
	})
	g.AddLink(Link{
		FromID:      newNodeID,
		ToID:        old.ToID,
		Weight:      old.Weight,
		Enabled:     true,
		IsRecurrent: false,
		Innovation:  innovOut,
	})
	return nil
}

// mutateAddLink tries up to NewLinkTries random node pairs, looking for
// one that doesn't already have a link between them and whose recurrence
// classification (spec §4.1 IsNewLinkRecurrent) matches a recurrence
// coin flip made once up front (spec §4.2).
func mutateAddLink(g *Genome, s MutationSettings, rng neat.RandomSource, registry *InnovationRegistry) error {
	wantRecurrent := rng.Float64() < s.RecurrentLinkProb

	for try := 0; try < s.NewLinkTries; try++ {
		fromIdx := rng.ChooseIndex(len(g.Nodes))
		toIdx := rng.ChooseIndex(len(g.Nodes))
		from := g.Nodes[fromIdx]
		to := g.Nodes[toIdx]

		if to.Kind == network.Input || to.Kind == network.Bias {
			continue
		}
		if from.ID == to.ID {
			if !wantRecurrent || rng.Float64() >= s.SelfLinkProb {
				continue
			}
		}
		if g.hasLink(from.ID, to.ID) {
			continue
		}
		recurrent := g.IsNewLinkRecurrent(from.ID, to.ID)
		if recurrent != wantRecurrent {
			continue
		}

		innov := registry.LinkAddInnovation(from.ID, to.ID, recurrent)
		g.AddLink(Link{
			FromID:      from.ID,
			ToID:        to.ID,
			Weight:      neat.SignedUniform(rng, 1.0),
			Enabled:     true,
			IsRecurrent: recurrent,
			Innovation:  innov,
		})
		return nil
	}
	return nil
}

// mutateToggleEnable flips a link's Enabled flag with probability
// ToggleEnableProb, skipping a disable that would leave the link's
// from-node with no other enabled outgoing connection (avoids silently
// orphaning a node's only contribution to the phenotype).
func mutateToggleEnable(g *Genome, s MutationSettings, rng neat.RandomSource) {
	for i := range g.Links {
		if rng.Float64() >= s.ToggleEnableProb {
			continue
		}
		l := &g.Links[i]
		if l.Enabled {
			if countEnabledFrom(g, l.FromID) <= 1 {
				continue
			}
			l.Enabled = false
		} else {
			l.Enabled = true
		}
	}
}

func countEnabledFrom(g *Genome, fromID int) int {
	count := 0
	for _, l := range g.Links {
		if l.Enabled && l.FromID == fromID {
			count++
		}
	}
	return count
}

// mutateLinkWeights perturbs or resets each link's weight independently
// with probability ChangeLinkWeightsProb, scaling by ChangeLinkWeightsPower.
// The perturb/reset shares depend on a per-call severity coin flip and on
// the gene's position in the link list: a severe pass perturbs 70% and
// resets 20% of touched genes; otherwise, in a genome of at least 10
// links, genes past the first 80% of the list perturb 50% and reset 20%,
// and all other genes perturb 10% and reset 20%. The reset share is 20% in
// every case, so newer genes are not reset more often than older ones
// (gaussPoint/coldGaussPoint values and the roll ordering below
// are grounded on the original's rand_link_mutation: a roll above the
// higher threshold Perturbates (adds a signed-uniform delta), a roll above
// the lower threshold Resets (replaces with a fresh signed-uniform value),
// otherwise the weight is left untouched). Both Perturbate and Reset draw
// their magnitude from ChangeLinkWeightsPower, not a fixed range. Every
// touched weight is clamped to [-8, 8] (spec §4.2, §8 invariant 4).
func mutateLinkWeights(g *Genome, s MutationSettings, rng neat.RandomSource) {
	severe := rng.Float64() < 0.5
	numLinks := len(g.Links)
	endPart := float64(numLinks) * 0.8

	for i := range g.Links {
		l := &g.Links[i]
		if rng.Float64() >= s.ChangeLinkWeightsProb {
			continue
		}

		var gaussPoint, coldGaussPoint float64
		switch {
		case severe:
			gaussPoint, coldGaussPoint = 0.3, 0.1
		case numLinks >= 10 && float64(i) > endPart:
			gaussPoint, coldGaussPoint = 0.5, 0.3
		default:
			gaussPoint, coldGaussPoint = 0.9, 0.7
		}

		roll := rng.Float64()
		switch {
		case roll > gaussPoint:
			l.Weight = clampWeight(l.Weight + neat.SignedUniform(rng, s.ChangeLinkWeightsPower))
		case roll > coldGaussPoint:
			l.Weight = clampWeight(neat.SignedUniform(rng, s.ChangeLinkWeightsPower))
		}
	}
}
