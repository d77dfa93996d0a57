// Package bits provides the primitives that reduce a 64-bit hash to a bucket index.
package bits

import "math/bits"

// Mod maps a 64-bit hash to [0, n) by unsigned remainder.
// This is the reduction a hash table with n buckets applies; low bits dominate.
// Returns 0 when n is 0.
func Mod(hash uint64, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return hash % n
}

// FastRange maps a 64-bit hash uniformly to [0, n).
// Uses the "fastrange" technique: multiply and take high bits, so the
// result depends on the high bits of hash rather than the low ones.
// Returns 0 when n is 0.
func FastRange(hash uint64, n uint64) uint64 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, n)
	return hi
}
