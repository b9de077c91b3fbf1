package workload

import (
	"math/rand/v2"
)

// Source draws pseudo-random ints in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
