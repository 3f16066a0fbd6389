// Package experiment defines the domain boundary a caller of the core
// implements to evolve a population against a concrete fitness function
// (spec §6): the core never knows what problem it is solving, only how
// to call into one.
package experiment

import (
	"github.com/fenwick-labs/neatcore/genetics"
)

// Experiment is the full contract a caller supplies to drive a
// population through generations (spec §6). It embeds genetics.Evaluator
// so any Experiment can be handed directly to genetics.EvaluatePopulation.
type Experiment interface {
	genetics.Evaluator

	// InitialGenome returns the seed genome new populations are spawned
	// from (spec §4.1).
	InitialGenome() *genetics.Genome
	// NodeNames optionally names a genome's nodes for reporting; may
	// return nil.
	NodeNames() map[int]string
}
