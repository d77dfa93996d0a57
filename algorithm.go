package hashbench

import (
	"fmt"
	"strings"

	hberrors "github.com/tamirms/hashbench/errors"
	"github.com/tamirms/hashbench/internal/hashfn"
)

// Hasher maps a byte sequence to a 64-bit value.
//
// Implementations must be pure: the same input always yields the same
// output for the lifetime of the process.
type Hasher interface {
	Hash(b []byte) uint64
}

// HashFunc adapts an ordinary function to the Hasher interface.
type HashFunc func(b []byte) uint64

// Hash calls f(b).
func (f HashFunc) Hash(b []byte) uint64 { return f(b) }

// Algorithm identifies a registered hash algorithm under test.
type Algorithm uint8

const (
	// AlgoSipHash is SipHash-2-4 with a zero key, the general-purpose baseline.
	AlgoSipHash Algorithm = iota

	// AlgoMapHash is the Go runtime hash with a random per-process seed.
	// Its output is NOT stable across processes.
	AlgoMapHash

	// AlgoHighwayHash is keyed HighwayHash-64 with a fixed key.
	AlgoHighwayHash

	// AlgoMurmur3 is streaming MurmurHash3 x64_128 (seed 0) truncated to
	// its low 8 bytes, little-endian.
	AlgoMurmur3

	// AlgoXXH3x128 is XXH3-128 truncated the same way as AlgoMurmur3.
	AlgoXXH3x128

	// AlgoXXHashStream is xxHash64 fed through a streaming digest.
	AlgoXXHashStream

	// AlgoXXHash is xxHash64 computed over the whole buffer in one call.
	AlgoXXHash

	// AlgoXXH3 is the 64-bit XXH3.
	AlgoXXH3

	// AlgoFNV1a is 64-bit FNV-1a.
	AlgoFNV1a

	numAlgorithms
)

type algorithmInfo struct {
	name      string
	fn        func([]byte) uint64
	stable    bool
	streaming bool
}

var algorithmTable = [numAlgorithms]algorithmInfo{
	AlgoSipHash:      {name: "siphash", fn: hashfn.SipHash, stable: true},
	AlgoMapHash:      {name: "maphash", fn: hashfn.MapHash},
	AlgoHighwayHash:  {name: "highwayhash", fn: hashfn.HighwayHash, stable: true},
	AlgoMurmur3:      {name: "murmur3-128", fn: hashfn.Murmur3x128, stable: true, streaming: true},
	AlgoXXH3x128:     {name: "xxh3-128", fn: hashfn.XXH3x128, stable: true},
	AlgoXXHashStream: {name: "xxhash-stream", fn: hashfn.XXHashStream, stable: true, streaming: true},
	AlgoXXHash:       {name: "xxhash", fn: hashfn.XXHash, stable: true},
	AlgoXXH3:         {name: "xxh3", fn: hashfn.XXH3, stable: true},
	AlgoFNV1a:        {name: "fnv1a", fn: hashfn.FNV1a, stable: true, streaming: true},
}

// Algorithms returns every registered algorithm in registration order.
func Algorithms() []Algorithm {
	algos := make([]Algorithm, numAlgorithms)
	for i := range algos {
		algos[i] = Algorithm(i)
	}
	return algos
}

// ParseAlgorithm looks up an algorithm by name (case-insensitive).
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, info := range algorithmTable {
		if info.name == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", hberrors.ErrUnknownAlgorithm, name)
}

// ParseAlgorithms parses a list of names, preserving order and dropping duplicates.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	algos := make([]Algorithm, 0, len(names))
	seen := make(map[Algorithm]bool, len(names))
	for _, name := range names {
		a, err := ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		if !seen[a] {
			seen[a] = true
			algos = append(algos, a)
		}
	}
	return algos, nil
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	if !a.valid() {
		return "unknown"
	}
	return algorithmTable[a].name
}

// Hash dispatches to the algorithm's free function.
// Hash panics if a is not a registered algorithm.
func (a Algorithm) Hash(b []byte) uint64 {
	return algorithmTable[a].fn(b)
}

// Stable reports whether the algorithm yields identical output across processes.
func (a Algorithm) Stable() bool {
	return a.valid() && algorithmTable[a].stable
}

// Streaming reports whether the algorithm accumulates input through a
// streaming digest rather than one whole-buffer call.
func (a Algorithm) Streaming() bool {
	return a.valid() && algorithmTable[a].streaming
}

func (a Algorithm) valid() bool {
	return a < numAlgorithms
}
