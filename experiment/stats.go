package experiment

import (
	"os"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/stat"
)

// Floats is a sample of per-generation measurements (best fitness, mean
// fitness, species count, ...) with gonum-backed summary statistics.
type Floats []float64

func (f Floats) Mean() float64 {
	if len(f) == 0 {
		return 0
	}
	return stat.Mean(f, nil)
}

func (f Floats) Variance() float64 {
	if len(f) < 2 {
		return 0
	}
	return stat.Variance(f, nil)
}

func (f Floats) StdDev() float64 {
	if len(f) < 2 {
		return 0
	}
	return stat.StdDev(f, nil)
}

func (f Floats) Max() float64 {
	var max float64
	for i, v := range f {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// Generation captures one epoch's diagnostics: fitness and complexity
// distributions across the whole population, plus the resulting species
// count, all used to judge evolutionary progress independent of whether
// any organism has won yet.
type Generation struct {
	Number       int
	Fitness      Floats
	Complexity   Floats
	SpeciesCount int
	BestFitness  float64
	Solved       bool
}

// Trial is one full run of a population from seed genome to either a
// winning organism or a generation budget exhaustion, recording every
// generation's diagnostics along the way.
type Trial struct {
	ID          int
	Generations []Generation
}

// WriteNPZ serializes the trial's per-generation fitness and complexity
// series to an NPZ archive for offline analysis, using the same
// column-oriented array export the teacher relies on for long-running
// experiment reporting.
func (t *Trial) WriteNPZ(path string) error {
	fitness := make([]float64, len(t.Generations))
	complexity := make([]float64, len(t.Generations))
	speciesCount := make([]float64, len(t.Generations))
	for i, g := range t.Generations {
		fitness[i] = g.BestFitness
		complexity[i] = g.Complexity.Mean()
		speciesCount[i] = float64(g.SpeciesCount)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := npz.NewWriter(f)
	if err := w.Write("fitness", fitness); err != nil {
		return err
	}
	if err := w.Write("complexity", complexity); err != nil {
		return err
	}
	if err := w.Write("species_count", speciesCount); err != nil {
		return err
	}
	return w.Close()
}
