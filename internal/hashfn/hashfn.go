// Package hashfn holds the hash algorithms under test as free functions.
//
// Every function has the signature func([]byte) uint64, is total over its
// input (the empty slice included) and keeps no state between calls.
// Streaming variants build a fresh accumulator per call.
package hashfn

import (
	"encoding/binary"
	"hash/fnv"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
	"github.com/minio/highwayhash"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// processSeed is drawn once per process. MapHash output is stable for the
// lifetime of the process and differs between processes.
var processSeed = maphash.MakeSeed()

// highwayKey is the fixed 32-byte key used by HighwayHash. It is the
// sequence 0x00..0x1f, the key used by the reference test vectors.
var highwayKey = func() []byte {
	k := make([]byte, highwayhash.Size)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}()

// SipHash is SipHash-2-4 with an all-zero key: the general-purpose,
// DoS-resistant default that hash maps in several runtimes use.
func SipHash(b []byte) uint64 {
	return siphash.Hash(0, 0, b)
}

// MapHash is the Go runtime's hash (AES-based where the CPU supports it),
// keyed with a random per-process seed.
//
// Do not persist its output or compare it across processes: the seed
// changes on every start.
func MapHash(b []byte) uint64 {
	return maphash.Bytes(processSeed, b)
}

// HighwayHash is the keyed HighwayHash-64 with a fixed key, so its output
// is stable across processes.
func HighwayHash(b []byte) uint64 {
	return highwayhash.Sum64(b, highwayKey)
}

// Murmur3x128 streams b through a MurmurHash3 x64_128 digest with seed 0
// and truncates the 128-bit result to its low 8 bytes.
//
// The digest is laid out as 16 little-endian bytes (h1 then h2) and the
// first 8 are read back as a little-endian uint64, so the value is the
// same on every platform and every run.
func Murmur3x128(b []byte) uint64 {
	h := murmur3.New128WithSeed(0)
	_, _ = h.Write(b) // hash.Hash.Write never returns an error
	h1, h2 := h.Sum128()
	return truncate128(h1, h2)
}

// XXH3x128 computes XXH3-128 and truncates it the same way as Murmur3x128.
func XXH3x128(b []byte) uint64 {
	h := xxh3.Hash128(b)
	return truncate128(h.Lo, h.Hi)
}

// XXHashStream feeds b through an xxHash64 streaming digest.
func XXHashStream(b []byte) uint64 {
	var d xxhash.Digest
	d.Reset()
	_, _ = d.Write(b) // Digest.Write never returns an error
	return d.Sum64()
}

// XXHash computes xxHash64 over the whole buffer in one call.
func XXHash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// XXH3 computes the 64-bit XXH3 over the whole buffer in one call.
func XXH3(b []byte) uint64 {
	return xxh3.Hash(b)
}

// FNV1a is 64-bit FNV-1a, a byte-at-a-time baseline.
func FNV1a(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

// truncate128 lays a 128-bit value (lo, hi) out as 16 little-endian bytes
// and returns the low 8 as a little-endian uint64.
func truncate128(lo, hi uint64) uint64 {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], lo)
	binary.LittleEndian.PutUint64(out[8:16], hi)
	return binary.LittleEndian.Uint64(out[0:8])
}
