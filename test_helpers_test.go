package hashbench

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

// newTestRNG returns a generator seeded from the test name, so every test
// is reproducible and independent of the others.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// newTestCorpus generates a deterministic corpus seeded from the test name.
func newTestCorpus(t testing.TB, n, length int) *Corpus {
	t.Helper()
	c, err := NewCorpus(n, length, WithCorpusSeed(newTestRNG(t).Uint64()))
	if err != nil {
		t.Fatalf("NewCorpus(%d, %d): %v", n, length, err)
	}
	return c
}

// recordingHasher remembers every input it was asked to hash.
type recordingHasher struct {
	inputs []string
}

func (r *recordingHasher) Hash(b []byte) uint64 {
	r.inputs = append(r.inputs, string(b))
	return uint64(len(r.inputs))
}

// isKeyByte reports whether b belongs to the generated key alphabet.
func isKeyByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
