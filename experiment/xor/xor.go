// Package xor implements the classic two-input exclusive-or fitness
// function, used only to exercise the evolutionary loop end to end in
// tests — not a shipped CLI or reusable experiment (the domain-specific
// fitness function and its problem are explicitly outside the core's
// scope).
package xor

import (
	"math"

	"github.com/fenwick-labs/neatcore/genetics"
	"github.com/fenwick-labs/neatcore/network"
)

var inputs = [][]float64{
	{0, 0},
	{0, 1},
	{1, 0},
	{1, 1},
}

var expected = []float64{0, 1, 1, 0}

// Experiment drives a population toward solving XOR: two inputs, one
// bias, one output.
type Experiment struct {
	SeedID int
}

// InitialGenome returns a minimal 2-input, 1-output, bias-connected
// genome (spec §4.1).
func (e *Experiment) InitialGenome() *genetics.Genome {
	return genetics.NewInitialGenome(e.SeedID, 2, 1)
}

// NodeNames labels the XOR genome's fixed node ids for reporting.
func (e *Experiment) NodeNames() map[int]string {
	return map[int]string{0: "x1", 1: "x2", 2: "bias", 3: "xor"}
}

// Evaluate scores an organism's network by how closely it reproduces the
// XOR truth table across all four input pairs, squared-error based so
// that a perfect network scores the theoretical maximum.
func (e *Experiment) Evaluate(net *network.Network, _ []*network.Network) float64 {
	var sumSquaredError float64
	for i, in := range inputs {
		net.Flush()
		if err := net.SetInputs(in); err != nil {
			return 0
		}
		if _, err := net.Activate(); err != nil {
			return 0
		}
		out := net.Outputs()[0]
		diff := expected[i] - out
		sumSquaredError += diff * diff
	}
	fitness := math.Pow(4.0-sumSquaredError, 2)
	return fitness
}

// PostEvaluation marks any organism that reproduces the XOR table closely
// enough as a winner, the success criterion for this experiment.
func (e *Experiment) PostEvaluation(pop *genetics.Population) {
	for _, sp := range pop.Species {
		for _, org := range sp.Members {
			if e.isSolution(org) {
				org.IsWinner = true
			}
		}
	}
}

func (e *Experiment) isSolution(org *genetics.Organism) bool {
	for i, in := range inputs {
		org.Network.Flush()
		if err := org.Network.SetInputs(in); err != nil {
			return false
		}
		if _, err := org.Network.Activate(); err != nil {
			return false
		}
		out := org.Network.Outputs()[0]
		if math.Abs(out-expected[i]) > 0.5 {
			return false
		}
	}
	return true
}
