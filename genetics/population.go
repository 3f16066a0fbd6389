package genetics

import (
	"github.com/fenwick-labs/neatcore/neat"
)

// Population owns every organism across every species for the current
// generation, plus the bookkeeping that spans generations: the running
// node/genome id counters and population-wide stagnation tracking used
// to trigger delta-coding (spec §4.6).
type Population struct {
	Generation int
	Species    []*Species
	Organisms  []*Organism

	CompatThreshold float64

	HighestFitnessEver   float64
	TimeSinceImprovement int

	nextGenomeID  int
	nextSpeciesID int
	nextNodeID    int
}

// NewPopulation spawns popSize organisms by mutating copies of a seed
// genome, then speciates them (spec §4.1, §4.6).
func NewPopulation(seed *Genome, popSize int, opts *neat.Options, rng neat.RandomSource, registry *InnovationRegistry) (*Population, error) {
	p := &Population{
		CompatThreshold: opts.CompatThreshold,
		nextGenomeID:    seed.ID + 1,
		nextSpeciesID:   1,
		nextNodeID:      seed.NextNodeID(),
	}

	settings := SettingsFromOptions(opts)
	for i := 0; i < popSize; i++ {
		genome := seed.Duplicate(p.allocGenomeID())
		if err := Mutate(genome, settings, rng, registry, p.allocNodeID); err != nil {
			return nil, err
		}
		org, err := NewOrganism(genome)
		if err != nil {
			return nil, err
		}
		p.Organisms = append(p.Organisms, org)
	}

	coeffs := CompatCoefficients{Disjoint: opts.DisjointCoeff, Excess: opts.ExcessCoeff, Weight: opts.WeightCoeff}
	p.speciate(coeffs)
	return p, nil
}

func (p *Population) allocGenomeID() int {
	id := p.nextGenomeID
	p.nextGenomeID++
	return id
}

func (p *Population) allocSpeciesID() int {
	id := p.nextSpeciesID
	p.nextSpeciesID++
	return id
}

// allocNodeID mints the next population-global hidden-node id (spec §3:
// node ids are "monotonically assigned, unique within a population run").
// All structural mutations that split a link draw their new node's id
// from here rather than from any single genome's own max-id+1, since two
// genomes splitting different links in the same generation must not be
// able to mint the same id.
func (p *Population) allocNodeID() int {
	id := p.nextNodeID
	p.nextNodeID++
	return id
}

// speciate partitions p.Organisms into p.Species using first-fit
// compatibility against each species' representative genome (spec §4.6
// step 7): an organism joins the first species whose representative is
// within CompatThreshold, or founds a new species if none match.
func (p *Population) speciate(coeffs CompatCoefficients) {
	p.Species = nil
	for _, org := range p.Organisms {
		placed := false
		for _, sp := range p.Species {
			if org.Genome.Compatibility(sp.Representative, coeffs) < p.CompatThreshold {
				sp.Members = append(sp.Members, org)
				placed = true
				break
			}
		}
		if !placed {
			p.Species = append(p.Species, NewSpecies(p.allocSpeciesID(), org))
		}
	}
}
