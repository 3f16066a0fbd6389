package genetics

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/fenwick-labs/neatcore/neat"
)

// Epoch advances the population by one generation (spec §4.6): it turns
// this generation's evaluated organisms into the next generation's
// organisms and re-speciates them, in the nine numbered steps below. The
// compatibility-threshold tuning runs last, after re-speciation, so each
// new threshold first applies to the next generation's re-speciation.
// The offspring-count invariant (spec §8
// invariant 6: total next-generation size equals the population size
// given at construction) and the deadband/delta-coding behavior both
// hold as specified.
func (p *Population) Epoch(opts *neat.Options, rng neat.RandomSource) error {
	popSize := len(p.Organisms)

	// Step 1: population-wide stagnation tracking.
	best := p.bestFitness()
	if best > p.HighestFitnessEver {
		p.HighestFitnessEver = best
		p.TimeSinceImprovement = 0
	} else {
		p.TimeSinceImprovement++
	}
	deltaCoding := p.TimeSinceImprovement >= opts.DropOffAge
	if deltaCoding {
		// Entering delta-coding is an emergency restart: give the
		// population a fresh grace period so the next dropoffAge
		// generations aren't all spent re-triggering it (spec §4.6 step 4).
		p.TimeSinceImprovement = 0
	}

	// Step 2: per-species fitness sharing, sorting and stagnation penalty.
	for _, sp := range p.Species {
		sp.PrepareForEpoch(opts.DropOffAge)
	}

	// Step 3: offspring allotment.
	offspringCounts := make(map[int]int, len(p.Species))
	if deltaCoding {
		p.allotDeltaCoding(offspringCounts, popSize)
	} else {
		avgAdj := p.averageAdjFitness()
		var skim float64
		assigned := 0
		for _, sp := range p.Species {
			n := sp.AllotOffspring(avgAdj, &skim)
			offspringCounts[sp.ID] = n
			assigned += n
		}
		p.distributeRoundingRemainder(offspringCounts, popSize, assigned)
	}

	// Step 4: prune each species to its survival-threshold elite before
	// it reproduces.
	for _, sp := range p.Species {
		sp.PruneToElite(opts.SurvivalThreshold)
	}

	// Step 5: reproduction.
	coeffs := CompatCoefficients{Disjoint: opts.DisjointCoeff, Excess: opts.ExcessCoeff, Weight: opts.WeightCoeff}
	reproduceSettings := ReproduceSettings{
		MutationSettings:       SettingsFromOptions(opts),
		MutateOnlyProb:         opts.MutateOnlyProb,
		MutateAfterMatingProb:  opts.MutateAfterMatingProb,
		InterspeciesMatingProb: opts.InterspeciesMatingProb,
		CompatCoefficients:     coeffs,
	}

	registry := NewInnovationRegistry(p.nextInnovationStart())
	var nextGen []*Organism
	for _, sp := range p.Species {
		count := offspringCounts[sp.ID]
		children, err := sp.Reproduce(count, p.Species, reproduceSettings, rng, registry, p.allocGenomeID, p.allocNodeID)
		if err != nil {
			return err
		}
		nextGen = append(nextGen, children...)
	}

	if len(nextGen) != popSize {
		return errors.Errorf("epoch %d: produced %d offspring, want %d", p.Generation, len(nextGen), popSize)
	}

	// Step 6: snapshot representatives before clearing membership, then
	// re-speciate the new generation against them (spec §4.6 step 7).
	representatives := make([]*Genome, len(p.Species))
	for i, sp := range p.Species {
		representatives[i] = sp.Representative
	}
	for _, sp := range p.Species {
		sp.Members = nil
	}

	p.Organisms = nextGen
	for _, org := range p.Organisms {
		placed := false
		for i, sp := range p.Species {
			if org.Genome.Compatibility(representatives[i], coeffs) < p.CompatThreshold {
				sp.Members = append(sp.Members, org)
				placed = true
				break
			}
		}
		if !placed {
			newSp := NewSpecies(p.allocSpeciesID(), org)
			p.Species = append(p.Species, newSp)
			representatives = append(representatives, org.Genome)
		}
	}

	// Step 7: drop species left empty by extinction.
	var survivors []*Species
	for _, sp := range p.Species {
		if len(sp.Members) > 0 {
			survivors = append(survivors, sp)
		}
	}
	p.Species = survivors

	if err := p.assertTotalOrganismCount(popSize); err != nil {
		return err
	}

	// Step 8: deadband-tune the compatibility threshold toward
	// TargetNumSpecies, floored at 0.3 (spec §4.6 step 1: "from generation
	// 1 onward" — skipped the very first time Epoch runs, so tuning never
	// reacts to the initial, unthinned species count).
	if p.Generation > 0 {
		switch {
		case len(p.Species) < opts.TargetNumSpecies:
			p.CompatThreshold -= 0.3
		case len(p.Species) > opts.TargetNumSpecies:
			p.CompatThreshold += 0.3
		}
		if p.CompatThreshold < 0.3 {
			p.CompatThreshold = 0.3
		}
	}

	// Step 9: advance the generation counter.
	p.Generation++
	return nil
}

func (p *Population) bestFitness() float64 {
	var best float64
	for _, o := range p.Organisms {
		if o.Fitness > best {
			best = o.Fitness
		}
	}
	return best
}

func (p *Population) averageAdjFitness() float64 {
	var sum float64
	var n int
	for _, sp := range p.Species {
		sum += sp.SumAdjFitness()
		n += sp.Size()
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// allotDeltaCoding concentrates all offspring on the top one or two
// species by highest member fitness when the whole population has
// stagnated beyond dropoff_age generations (spec §4.6 step 4, emergency
// recovery): with two or more species, the best gets ceil(N/2) and the
// runner-up floor(N/2); with only one species it gets all of N. The
// concentrated species' BestOffspring is raised to match its full
// allotment, so Reproduce mass-clones-with-perturbation the champion(s)
// instead of spending the emergency allotment on ordinary mutate/mate
// reproduction.
func (p *Population) allotDeltaCoding(counts map[int]int, popSize int) {
	ranked := make([]*Species, len(p.Species))
	copy(ranked, p.Species)
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].bestMemberFitness() > ranked[j].bestMemberFitness()
	})

	for _, sp := range ranked {
		counts[sp.ID] = 0
	}
	switch {
	case len(ranked) == 0:
		return
	case len(ranked) == 1:
		counts[ranked[0].ID] = popSize
		ranked[0].BestOffspring = popSize
	default:
		counts[ranked[0].ID] = int(math.Ceil(float64(popSize) / 2))
		counts[ranked[1].ID] = popSize / 2
		ranked[0].BestOffspring = counts[ranked[0].ID]
		ranked[1].BestOffspring = counts[ranked[1].ID]
	}
}

func (s *Species) bestMemberFitness() float64 {
	var best float64
	for _, o := range s.Members {
		if o.Fitness > best {
			best = o.Fitness
		}
	}
	return best
}

// distributeRoundingRemainder hands any offspring left over after integer
// allotment (from floor/skim rounding) to the single fittest species, so
// the next generation always has exactly popSize organisms.
func (p *Population) distributeRoundingRemainder(counts map[int]int, popSize, assigned int) {
	remainder := popSize - assigned
	if remainder == 0 || len(p.Species) == 0 {
		return
	}
	best := p.Species[0]
	for _, sp := range p.Species[1:] {
		if sp.bestMemberFitness() > best.bestMemberFitness() {
			best = sp
		}
	}
	counts[best.ID] += remainder
}

func (p *Population) assertTotalOrganismCount(want int) error {
	total := 0
	for _, sp := range p.Species {
		total += sp.Size()
	}
	if total != len(p.Organisms) || total != want {
		return errors.Errorf("epoch %d: population invariant violated, have %d organisms across species, %d total, want %d", p.Generation, total, len(p.Organisms), want)
	}
	return nil
}

// nextInnovationStart computes the starting innovation number for this
// generation's InnovationRegistry: one past the highest innovation
// present anywhere in the current population (spec §4.2: the registry is
// reset every generation but must never reissue a number already used).
func (p *Population) nextInnovationStart() int64 {
	var max int64 = -1
	for _, o := range p.Organisms {
		if n := o.Genome.NextInnovation() - 1; n > max {
			max = n
		}
	}
	return max + 1
}
