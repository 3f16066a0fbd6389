package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/neatcore/neat"
)

func TestPopulationEpochConservesSize(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopSize = 200
	require.NoError(t, opts.Validate())

	rng := neat.NewRandomSource(42)
	seed := NewInitialGenome(0, 2, 1)
	registry := NewInnovationRegistry(seed.NextInnovation())

	pop, err := NewPopulation(seed, opts.PopSize, opts, rng, registry)
	require.NoError(t, err)
	require.Len(t, pop.Organisms, 200)

	for i, o := range pop.Organisms {
		o.Fitness = float64(i % 7)
	}

	require.NoError(t, pop.Epoch(opts, rng))
	assert.Len(t, pop.Organisms, 200)

	total := 0
	for _, sp := range pop.Species {
		total += sp.Size()
	}
	assert.Equal(t, 200, total)
}

func TestPopulationSpeciatesFreshPopulation(t *testing.T) {
	opts := neat.DefaultOptions()
	opts.PopSize = 50
	rng := neat.NewRandomSource(7)
	seed := NewInitialGenome(0, 3, 2)
	registry := NewInnovationRegistry(seed.NextInnovation())

	pop, err := NewPopulation(seed, opts.PopSize, opts, rng, registry)
	require.NoError(t, err)
	assert.NotEmpty(t, pop.Species)

	count := 0
	for _, sp := range pop.Species {
		count += sp.Size()
	}
	assert.Equal(t, 50, count)
}
