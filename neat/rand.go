package neat

import (
	"math/rand"
	"time"
)

// RandomSource is the contract the core consumes for all randomness (spec
// §6). Callers inject an implementation instead of the core touching
// math/rand's shared global generator directly (spec §5/§9 "Randomness" —
// never share an RNG across goroutines). The Evaluator's workers draw no
// random numbers, so only the coordinator holds an instance.
type RandomSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Bool returns a uniform true/false.
	Bool() bool
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
	// ChooseIndex returns a uniform index into a slice of length n.
	// Equivalent to Intn(n), named separately to match the spec's
	// "choose from slice" primitive at call sites that select an element.
	ChooseIndex(n int) int
}

// LockedSource wraps a *rand.Rand to satisfy RandomSource. It is not
// goroutine-safe by design: each worker must construct its own instance.
type LockedSource struct {
	r *rand.Rand
}

// NewRandomSource constructs a RandomSource seeded from the given value.
func NewRandomSource(seed int64) *LockedSource {
	return &LockedSource{r: rand.New(rand.NewSource(seed))}
}

// NewEntropyRandomSource constructs a RandomSource seeded from the
// system clock.
func NewEntropyRandomSource() *LockedSource {
	return NewRandomSource(time.Now().UnixNano())
}

func (s *LockedSource) Float64() float64      { return s.r.Float64() }
func (s *LockedSource) Bool() bool            { return s.r.Float64() < 0.5 }
func (s *LockedSource) Intn(n int) int        { return s.r.Intn(n) }
func (s *LockedSource) ChooseIndex(n int) int { return s.r.Intn(n) }

// SignedUniform returns a value uniform in (-magnitude, magnitude), the
// shape used throughout weight initialization/mutation.
func SignedUniform(rs RandomSource, magnitude float64) float64 {
	sign := 1.0
	if rs.Bool() {
		sign = -1.0
	}
	return sign * rs.Float64() * magnitude
}
