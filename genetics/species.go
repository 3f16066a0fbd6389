package genetics

import (
	"math"
	"sort"

	"github.com/fenwick-labs/neatcore/neat"
)

// Species groups organisms whose genomes are mutually compatible, so that
// reproduction competes within a niche rather than across the whole
// population (spec §4.5).
type Species struct {
	ID      int
	Age     int
	Members []*Organism

	// Representative is the genome new organisms are compared against
	// when deciding whether they belong to this species (spec §4.6 step
	// 7). PrepareForEpoch re-snapshots it to the current best member's
	// genome every epoch (spec §4.5.1), so it tracks the species' niche
	// center instead of staying frozen at its founding genome.
	Representative *Genome

	HighestFitnessEver   float64
	TimeSinceImprovement int

	// BestOffspring is how many of this species' next offspring are
	// direct clones of Representative rather than mutate/mate products
	// (spec §4.5.4 step 1): copy #0 is unmodified, copies 1..BestOffspring-1
	// have their weights perturbed. PrepareForEpoch resets it to 1 every
	// generation; delta-coding (spec §4.6 step 4) raises it to a
	// concentrated species' full offspring allotment, turning its
	// reproduction into mass-cloning-with-perturbation of the champion.
	BestOffspring int

	// Stagnant marks a species whose TimeSinceImprovement has exceeded
	// dropoffAge; PrepareForEpoch applies a fitness penalty to it rather
	// than removing it outright (delta-coding handles emergency recovery
	// at the population level, spec §4.6 step 3).
	Stagnant bool
}

// NewSpecies creates a species whose only member is the founding organism,
// which also becomes its Representative.
func NewSpecies(id int, founder *Organism) *Species {
	return &Species{
		ID:             id,
		Members:        []*Organism{founder},
		Representative: founder.Genome,
		BestOffspring:  1,
	}
}

// Size returns the number of organisms currently in the species.
func (s *Species) Size() int { return len(s.Members) }

// PrepareForEpoch computes adjusted fitness and stagnation bookkeeping
// for every member ahead of offspring allotment (spec §4.5.1):
//  1. every organism's raw fitness is floored at 0.001 so a species of
//     all-zero fitness can still receive a nonzero share;
//  2. adjusted fitness is fitness shared across the species (fitness /
//     |members|), the mechanism that keeps one dominant niche from
//     starving the rest of the population;
//  3. if the species has gone more than dropoffAge generations without
//     improving its best-ever fitness, every member's adjusted fitness is cut to
//     1% as a soft penalty ahead of delta-coding's harder population-
//     level response;
//  4. members are sorted by descending fitness and the species' best
//     member is marked Champion;
//  5. the species' Representative is re-snapshotted to this generation's
//     best genome, and BestOffspring resets to 1 (spec §4.5.1), so long-
//     lived species compare new organisms against their current niche
//     center instead of a frozen founding genome.
func (s *Species) PrepareForEpoch(dropoffAge int) {
	s.Age++
	for _, o := range s.Members {
		if o.Fitness < 0.001 {
			o.Fitness = 0.001
		}
		o.AdjFitness = o.Fitness / float64(len(s.Members))
	}

	sort.SliceStable(s.Members, func(i, j int) bool {
		return s.Members[i].Fitness > s.Members[j].Fitness
	})

	best := s.Members[0].Fitness
	if best > s.HighestFitnessEver {
		s.HighestFitnessEver = best
		s.TimeSinceImprovement = 0
	} else {
		s.TimeSinceImprovement++
	}
	s.Stagnant = s.TimeSinceImprovement > dropoffAge
	if s.Stagnant {
		for _, o := range s.Members {
			o.AdjFitness *= 0.01
		}
	}

	for i, o := range s.Members {
		o.Champion = i == 0
	}

	s.Representative = s.Members[0].Genome
	s.BestOffspring = 1
}

// SumAdjFitness totals adjusted fitness across the species' members, the
// numerator used by AllotOffspring.
func (s *Species) SumAdjFitness() float64 {
	var sum float64
	for _, o := range s.Members {
		sum += o.AdjFitness
	}
	return sum
}

// AllotOffspring computes this species' integer offspring count for the
// next generation (spec §4.5.2): the species' expected-offspring total
// e = sum(adjFitness) / avgAdjFitness is split into an integer part taken
// immediately and a fractional remainder accumulated in skim; whenever
// the accumulated skim crosses 1.0 a bonus offspring is granted and the
// skim is reduced by that whole amount. avgAdjFitness <= 0 yields zero
// offspring for every species, since there is nothing to normalize against.
func (s *Species) AllotOffspring(avgAdjFitness float64, skim *float64) int {
	if avgAdjFitness <= 0 {
		return 0
	}
	var total float64
	for _, o := range s.Members {
		e := o.AdjFitness / avgAdjFitness
		o.ExpectedOffspring = e
		total += e
	}

	intPart := math.Floor(total)
	frac := total - intPart
	*skim += frac

	offspring := int(intPart)
	if *skim >= 1.0 {
		offspring++
		*skim -= 1.0
	}
	return offspring
}

// PruneToElite discards the weakest members, keeping only
// floor(survivalThreshold * |members|) + 1 of the fittest (spec §4.5.3).
// Members must already be sorted descending by fitness (PrepareForEpoch
// guarantees this).
func (s *Species) PruneToElite(survivalThreshold float64) {
	keep := int(math.Floor(survivalThreshold*float64(len(s.Members)))) + 1
	if keep < len(s.Members) {
		s.Members = s.Members[:keep]
	}
}

// ReproduceSettings bundles the reproduction tunables Reproduce needs
// from neat.Options (spec §4.5.4, §6).
type ReproduceSettings struct {
	MutationSettings
	MutateOnlyProb         float64
	MutateAfterMatingProb  float64
	InterspeciesMatingProb float64
	CompatCoefficients     CompatCoefficients
}

// Reproduce generates count offspring organisms for the species (spec
// §4.5.4): the first BestOffspring offspring are clones of Representative
// — copy #0 unmodified, copies 1..BestOffspring-1 with weights perturbed
// but topology untouched — which is how delta-coding's emergency
// concentration actually changes reproduction mode rather than just
// offspring count. Remaining offspring are produced either by asexual
// mutation of a randomly chosen parent (probability MutateOnlyProb), or
// by crossing a randomly chosen parent with a mate — drawn from another
// species with probability InterspeciesMatingProb, otherwise from this
// species — with the child additionally mutated afterward with
// probability MutateAfterMatingProb, or unconditionally if the two
// parents turned out genetically identical (compatibility distance 0,
// since mating alone could produce no change).
func (s *Species) Reproduce(count int, allSpecies []*Species, settings ReproduceSettings, rng neat.RandomSource, registry *InnovationRegistry, nextGenomeID func() int, nextNodeID func() int) ([]*Organism, error) {
	if count == 0 || len(s.Members) == 0 {
		return nil, nil
	}

	offspring := make([]*Organism, 0, count)

	bestOffspring := s.BestOffspring
	if bestOffspring > count {
		bestOffspring = count
	}
	for i := 0; i < bestOffspring; i++ {
		cloneGenome := s.Representative.Duplicate(nextGenomeID())
		if i > 0 {
			mutateLinkWeights(cloneGenome, settings.MutationSettings, rng)
		}
		org, err := NewOrganism(cloneGenome)
		if err != nil {
			return nil, err
		}
		offspring = append(offspring, org)
	}

	for i := bestOffspring; i < count; i++ {
		parent := s.Members[rng.ChooseIndex(len(s.Members))]

		var child *Genome
		if rng.Float64() < settings.MutateOnlyProb || len(s.Members) == 1 {
			child = parent.Genome.Duplicate(nextGenomeID())
			if err := Mutate(child, settings.MutationSettings, rng, registry, nextNodeID); err != nil {
				return nil, err
			}
		} else {
			mate := s.pickMate(allSpecies, settings.InterspeciesMatingProb, rng)
			aFitter := parent.Fitness >= mate.Fitness
			child = Multipoint(parent.Genome, mate.Genome, aFitter, nextGenomeID(), rng)

			dist := parent.Genome.Compatibility(mate.Genome, settings.CompatCoefficients)
			if dist == 0 || rng.Float64() < settings.MutateAfterMatingProb {
				if err := Mutate(child, settings.MutationSettings, rng, registry, nextNodeID); err != nil {
					return nil, err
				}
			}
		}

		org, err := NewOrganism(child)
		if err != nil {
			return nil, err
		}
		offspring = append(offspring, org)
	}
	return offspring, nil
}

// pickMate chooses a mate organism, reaching into a random other species
// with probability interspeciesProb (falling back to this species when
// there is nowhere else to reach, e.g. a single-species population).
func (s *Species) pickMate(allSpecies []*Species, interspeciesProb float64, rng neat.RandomSource) *Organism {
	if rng.Float64() < interspeciesProb {
		var others []*Species
		for _, sp := range allSpecies {
			if sp != s && len(sp.Members) > 0 {
				others = append(others, sp)
			}
		}
		if len(others) > 0 {
			other := others[rng.ChooseIndex(len(others))]
			return other.Members[rng.ChooseIndex(len(other.Members))]
		}
	}
	return s.Members[rng.ChooseIndex(len(s.Members))]
}
