package genetics

import "github.com/fenwick-labs/neatcore/network"

// Organism pairs a Genome with the phenotype Network built from it, plus
// the fitness bookkeeping the evolutionary loop needs each generation
// (spec §3).
type Organism struct {
	Genome  *Genome
	Network *network.Network

	Fitness    float64
	AdjFitness float64

	// ExpectedOffspring is the fractional offspring share computed during
	// species offspring allotment (spec §4.5.2). It stays fractional;
	// AllotOffspring sums it across the species and takes the integer part
	// of that sum.
	ExpectedOffspring float64

	// Champion marks the single fittest organism of its species for the
	// current generation (spec §4.6 step 4: champions are copied forward
	// unmutated before any other reproduction happens).
	Champion bool

	// IsWinner is set by an Experiment's PostEvaluation when this
	// organism satisfies the experiment's success criterion.
	IsWinner bool
}

// NewOrganism builds an Organism by running Genesis on the given genome.
func NewOrganism(g *Genome) (*Organism, error) {
	net, err := g.Genesis()
	if err != nil {
		return nil, err
	}
	return &Organism{Genome: g, Network: net}, nil
}

// Complexity reports the organism's phenotype size (node count plus link
// count). Species ranking does not use it: members are ordered by fitness
// only.
func (o *Organism) Complexity() int {
	return o.Network.Complexity()
}
