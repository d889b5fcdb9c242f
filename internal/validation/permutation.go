package validation

import "math/rand"

// PermutationSource yields the order in which sampling blocks are
// processed. It is an injection point: production runs use a uniformly
// random permutation to defeat drives that shortcut sequential address
// patterns, tests substitute deterministic orders.
type PermutationSource interface {
	// Perm returns a permutation of the integers [0, n).
	Perm(n int) []int
}

// RandomPermutation draws uniformly distributed permutations from the
// runtime-seeded generator.
type RandomPermutation struct{}

func (RandomPermutation) Perm(n int) []int {
	return rand.Perm(n)
}

// FixedPermutation replays a predetermined order. Intended for tests. The
// stored order is returned as-is (copied, never padded or truncated), so
// an order that does not match the run's block count is rejected by the
// orchestrator instead of being silently repaired.
type FixedPermutation []int

func (p FixedPermutation) Perm(n int) []int {
	order := make([]int, len(p))
	copy(order, p)
	return order
}
