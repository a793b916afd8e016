package sim

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the randomness capability consumed by the party simulator.
// Implementations are not required to be safe for concurrent use.
type Source interface {
	// Uniform returns a sample from U[0, 1).
	Uniform() float64
	// Normal returns a sample from N(mean, stddev²).
	Normal(mean, stddev float64) float64
	// Poisson returns a sample from Poisson(lambda). lambda must be positive and finite.
	Poisson(lambda float64) int
}

// Stream is a seeded Source backed by a PCG generator and gonum distributions.
// Every draw advances the same underlying generator, so the sequence of values
// depends only on the seed and the order of calls.
type Stream struct {
	src rand.Source
}

// NewStream creates a Stream seeded with seed.
func NewStream(seed int64) *Stream {
	return &Stream{src: newSource(seed)}
}

// Uniform draws from U[0, 1).
func (s *Stream) Uniform() float64 {
	return distuv.Uniform{Min: 0, Max: 1, Src: s.src}.Rand()
}

// Normal draws from N(mean, stddev²).
func (s *Stream) Normal(mean, stddev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stddev, Src: s.src}.Rand()
}

// Poisson draws from Poisson(lambda). Counts beyond the int range saturate at
// math.MaxInt.
func (s *Stream) Poisson(lambda float64) int {
	v := distuv.Poisson{Lambda: lambda, Src: s.src}.Rand()
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}
