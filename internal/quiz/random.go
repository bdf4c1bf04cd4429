package quiz

import (
	"math/rand/v2"
	"slices"
)

// Source supplies the randomness for shuffling. A *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSeededSource returns a reproducible source for tests and replays.
// The returned source is not safe for concurrent use.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalSource draws from the process-wide generator, which is safe for
// concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates).
func Shuffle[T any](src Source, items []T) []T {
	if src == nil {
		src = globalSource{}
	}
	out := slices.Clone(items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
