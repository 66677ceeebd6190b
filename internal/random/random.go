// Package random defines the seedable randomness seam the engine needs so
// that role assignment and leader selection are deterministic in tests.
package random

import "math/rand"

//go:generate go tool mockgen -destination=./mocks/source_mock.go -package=mocks . Source

// Source is the randomness a game needs: picking an initial leader and
// shuffling the role pool before dealing it out.
type Source interface {
	// Intn returns a non-negative pseudo-random number in [0,n).
	Intn(n int) int
	// Shuffle pseudo-randomises the order of a slice of length n using swap.
	Shuffle(n int, swap func(i, j int))
}

// mathRand adapts a seeded math/rand *rand.Rand to Source. It is not
// cryptographically secure and isn't meant to be: role deals only need to
// be unpredictable to the players, not to an adversary with compute.
type mathRand struct {
	r *rand.Rand
}

// New returns a Source seeded with seed. Two Sources built from the same
// seed produce the same sequence of outcomes.
func New(seed int64) Source {
	return &mathRand{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRand) Intn(n int) int                     { return m.r.Intn(n) }
func (m *mathRand) Shuffle(n int, swap func(i, j int)) { m.r.Shuffle(n, swap) }
