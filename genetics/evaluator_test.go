package genetics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/neatcore/experiment/xor"
	"github.com/fenwick-labs/neatcore/genetics"
	"github.com/fenwick-labs/neatcore/neat"
)

func TestEvaluatePopulationScoresEveryOrganism(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopSize = 30
	rng := neat.NewRandomSource(11)
	seed := genetics.NewInitialGenome(0, 2, 1)
	registry := genetics.NewInnovationRegistry(seed.NextInnovation())

	pop, err := genetics.NewPopulation(seed, opts.PopSize, opts, rng, registry)
	require.NoError(t, err)

	exp := &xor.Experiment{}
	genetics.EvaluatePopulation(pop, exp, 4)

	for _, sp := range pop.Species {
		for _, org := range sp.Members {
			assert.GreaterOrEqual(t, org.Fitness, 0.0)
		}
	}
}

func TestEvaluatePopulationHandlesMoreWorkersThanOrganisms(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopSize = 2
	rng := neat.NewRandomSource(5)
	seed := genetics.NewInitialGenome(0, 2, 1)
	registry := genetics.NewInnovationRegistry(seed.NextInnovation())

	pop, err := genetics.NewPopulation(seed, opts.PopSize, opts, rng, registry)
	require.NoError(t, err)

	exp := &xor.Experiment{}
	assert.NotPanics(t, func() {
		genetics.EvaluatePopulation(pop, exp, 16)
	})
}
