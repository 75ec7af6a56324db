package generation

import (
	"math/rand/v2"
)

// Source supplies random integers.
type Source interface {
	// IntRange returns a uniformly distributed integer in [min, max].
	// Callers guarantee min <= max.
	IntRange(min, max int) int
}

// Seeder is implemented by sources that can report the seed they were
// created with, so a worksheet can be reproduced.
type Seeder interface {
	Seed() uint64
}

// PCGSource is a Source backed by a seeded PCG generator. It is not safe for
// concurrent use; each worksheet gets its own source.
type PCGSource struct {
	seed uint64
	rng  *rand.Rand
}

// NewSource returns a PCGSource for seed. A zero seed picks a random one,
// which can be read back with Seed to reproduce the sequence.
func NewSource(seed uint64) *PCGSource {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return &PCGSource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the source was created with.
func (s *PCGSource) Seed() uint64 {
	return s.seed
}

// IntRange implements Source.
func (s *PCGSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}
