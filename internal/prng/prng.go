// Package prng wraps math/rand behind the small, seeded, method-call surface
// shared by the partitioner and the two simulated-annealing placers, so
// every stochastic stage of the pipeline is reproducible given the same
// inputs and seed.
package prng

import "math/rand"

// RNG is a deterministic pseudo-random source.
type RNG struct {
	source *rand.Rand
}

// New constructs an RNG from seed.
func New(seed int64) *RNG {
	return &RNG{source: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random integer in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.source.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 { return r.source.Float64() }

// IntRange returns a pseudo-random integer in [min, max].
func (r *RNG) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + r.source.Intn(max-min+1)
}

// Shuffle pseudo-randomizes the order of n elements via swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) { r.source.Shuffle(n, swap) }
