package hashbench

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	hberrors "github.com/tamirms/hashbench/errors"
)

// keyAlphabet maps a uniform integer in [0, 36) to a key byte:
// 0..25 are 'a'..'z' and 26..35 are '0'..'9'.
const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// maxCorpusBytes bounds the key arena. It stays below both int range and the
// largest allocation the runtime accepts on 64-bit platforms.
const maxCorpusBytes uint64 = min(math.MaxInt, 1<<40)

// corpusSeedMixer decorrelates the two PCG state words derived from one seed.
const corpusSeedMixer = 0x9E3779B97F4A7C15

// Generate returns a random key of exactly length characters drawn
// independently and uniformly from [a-z0-9]. length must not be negative.
func Generate(rng *rand.Rand, length int) string {
	buf := make([]byte, length)
	fillKey(rng, buf)
	return string(buf)
}

func fillKey(rng *rand.Rand, dst []byte) {
	for i := range dst {
		dst[i] = keyAlphabet[rng.IntN(len(keyAlphabet))]
	}
}

// NewSeededRNG returns the generator NewCorpus uses for a given seed.
func NewSeededRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^corpusSeedMixer))
}

// Corpus is an ordered, immutable set of keys of uniform length.
//
// Keys live in one contiguous arena. A Corpus is safe for concurrent
// readers; nothing mutates it after construction.
type Corpus struct {
	data     []byte
	n        int
	keyLen   int
	checksum uint64
}

// CorpusOption is a functional option for corpus generation.
type CorpusOption func(*corpusConfig)

type corpusConfig struct {
	seed    uint64
	hasSeed bool
}

// WithCorpusSeed makes generation deterministic. Without it each call
// draws a fresh seed.
func WithCorpusSeed(seed uint64) CorpusOption {
	return func(c *corpusConfig) {
		c.seed = seed
		c.hasSeed = true
	}
}

// NewCorpus generates n random keys of the given length.
// Keys are not deduplicated; collisions are part of the measured noise.
func NewCorpus(n, length int, opts ...CorpusOption) (*Corpus, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrNegativeCorpusSize, n)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrNegativeKeyLength, length)
	}
	if err := checkCorpusSize(n, length); err != nil {
		return nil, err
	}

	cfg := &corpusConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.hasSeed {
		cfg.seed = rand.Uint64()
	}
	rng := NewSeededRNG(cfg.seed)

	data := make([]byte, n*length)
	for i := range n {
		fillKey(rng, data[i*length:(i+1)*length])
	}
	return newCorpus(data, n, length), nil
}

// checkCorpusSize reports whether n keys of the given length fit in one arena.
// n and length must already be non-negative.
func checkCorpusSize(n, length int) error {
	if length > 0 && uint64(n) > maxCorpusBytes/uint64(length) {
		return fmt.Errorf("%w: %d keys of length %d", hberrors.ErrCorpusTooLarge, n, length)
	}
	return nil
}

// NewCorpusFromKeys builds a corpus from explicit keys, in order.
// All keys must have the same length.
func NewCorpusFromKeys(keys []string) (*Corpus, error) {
	if len(keys) == 0 {
		return newCorpus(nil, 0, 0), nil
	}
	keyLen := len(keys[0])
	data := make([]byte, 0, len(keys)*keyLen)
	for i, k := range keys {
		if len(k) != keyLen {
			return nil, fmt.Errorf("%w: key %d has length %d, want %d",
				hberrors.ErrNonUniformKeys, i, len(k), keyLen)
		}
		data = append(data, k...)
	}
	return newCorpus(data, len(keys), keyLen), nil
}

func newCorpus(data []byte, n, keyLen int) *Corpus {
	d := xxhash.New()
	var hdr [16]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(n))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(keyLen))
	_, _ = d.Write(hdr[:])
	_, _ = d.Write(data)
	return &Corpus{
		data:     data,
		n:        n,
		keyLen:   keyLen,
		checksum: d.Sum64(),
	}
}

// Len returns the number of keys.
func (c *Corpus) Len() int { return c.n }

// KeyLength returns the byte length shared by every key.
func (c *Corpus) KeyLength() int { return c.keyLen }

// Bytes returns key i as a view into the corpus. Callers must not modify it.
func (c *Corpus) Bytes(i int) []byte {
	start := i * c.keyLen
	end := start + c.keyLen
	return c.data[start:end:end]
}

// Key returns a copy of key i as a string.
func (c *Corpus) Key(i int) string {
	return string(c.Bytes(i))
}

// SizeBytes returns the total number of key bytes.
func (c *Corpus) SizeBytes() int { return len(c.data) }

// Checksum returns an xxHash64 digest of the corpus shape and contents.
// Two corpora with equal checksums hold the same keys in the same order.
func (c *Corpus) Checksum() uint64 { return c.checksum }
