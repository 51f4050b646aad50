// Package workbook keeps multiple-choice options in a stable, per-day shuffled order.
package workbook

import "unicode/utf16"

const (
	lehmerModulus    = 2147483647 // 2^31 - 1
	lehmerMultiplier = 16807

	fnvOffset = 2166136261
	fnvPrime  = 16777619
)

// SeededRandom is the Park–Miller minimal standard generator seeded from a string.
// It is reproducible, not secure: use it only to vary quiz layouts.
type SeededRandom struct {
	state uint64
}

// NewSeededRandom hashes seed into the generator's 31-bit state space.
func NewSeededRandom(seed string) *SeededRandom {
	return &SeededRandom{state: hashSeed(seed)}
}

// hashSeed runs an xor/multiply rolling hash over the UTF-16 code units of seed so the
// same string yields the same state as the browser client, then folds it into
// [1, 2^31-2]. Zero is a fixed point of the generator and is never returned.
func hashSeed(seed string) uint64 {
	h := uint32(fnvOffset)
	for _, unit := range utf16.Encode([]rune(seed)) {
		h ^= uint32(unit)
		h *= fnvPrime
	}
	state := uint64(h) % lehmerModulus
	if state == 0 {
		state = 1
	}
	return state
}

// Next advances the generator and returns the raw state in [1, 2^31-2].
func (r *SeededRandom) Next() uint64 {
	r.state = r.state * lehmerMultiplier % lehmerModulus
	return r.state
}

// Float64 returns the next value in [0, 1).
func (r *SeededRandom) Float64() float64 {
	return float64(r.Next()-1) / float64(lehmerModulus-1)
}

// Intn returns the next value in [0, n). n must be positive.
func (r *SeededRandom) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// ShuffleFunc produces an ordering of options for the given seed.
type ShuffleFunc func(options []string, seed string) []string

// ShuffleWithSeed returns a Fisher–Yates permutation of values driven by seed.
// values is copied, never modified.
func ShuffleWithSeed(values []string, seed string) []string {
	out := make([]string, len(values))
	copy(out, values)
	rng := NewSeededRandom(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
