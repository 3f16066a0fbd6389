package xor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-labs/neatcore/genetics"
)

func TestEvaluateMinimalGenomeScoresNonNegative(t *testing.T) {
	exp := &Experiment{}
	g := exp.InitialGenome()

	// Hand-craft weights that approximate XOR isn't required here; this
	// checks the scoring path runs and returns a finite, non-negative score
	// for the minimal fully-connected starting genome.
	net, err := g.Genesis()
	require.NoError(t, err)

	fitness := exp.Evaluate(net, nil)
	assert.GreaterOrEqual(t, fitness, 0.0)
}

func TestPostEvaluationMarksNoWinnerForUnsolvedPopulation(t *testing.T) {
	exp := &Experiment{}
	g := exp.InitialGenome()
	org, err := genetics.NewOrganism(g)
	require.NoError(t, err)
	org.Fitness = 1.0

	sp := genetics.NewSpecies(1, org)
	pop := &genetics.Population{Species: []*genetics.Species{sp}, Organisms: []*genetics.Organism{org}}

	exp.PostEvaluation(pop)
	assert.False(t, org.IsWinner)
}
