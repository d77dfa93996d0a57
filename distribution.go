package hashbench

import (
	"fmt"
	"math"
	"strings"

	hberrors "github.com/tamirms/hashbench/errors"
	intbits "github.com/tamirms/hashbench/internal/bits"
)

// Reduction selects how a 64-bit hash is mapped to a bucket index.
type Reduction uint8

const (
	// ReduceModulo uses hash mod buckets, the reduction a hash table applies.
	ReduceModulo Reduction = iota

	// ReduceFastRange uses the high word of hash * buckets.
	ReduceFastRange
)

// String returns the reduction name.
func (r Reduction) String() string {
	switch r {
	case ReduceModulo:
		return "mod"
	case ReduceFastRange:
		return "fastrange"
	default:
		return "unknown"
	}
}

// ParseReduction looks up a reduction by name.
func ParseReduction(name string) (Reduction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mod", "modulo":
		return ReduceModulo, nil
	case "fastrange":
		return ReduceFastRange, nil
	}
	return 0, fmt.Errorf("%w: %q", hberrors.ErrUnknownReduction, name)
}

// Histogram counts how many hashes fell into each of a fixed number of buckets.
type Histogram struct {
	counts    []uint64
	total     uint64
	reduction Reduction
}

// NewHistogram returns a zeroed histogram of the given size using modulo
// reduction. buckets must be positive.
func NewHistogram(buckets int) (*Histogram, error) {
	return newHistogram(buckets, ReduceModulo)
}

func newHistogram(buckets int, r Reduction) (*Histogram, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrZeroBuckets, buckets)
	}
	if r != ReduceModulo && r != ReduceFastRange {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrUnknownReduction, r)
	}
	return &Histogram{
		counts:    make([]uint64, buckets),
		reduction: r,
	}, nil
}

// Add records one hash value.
func (h *Histogram) Add(hash uint64) {
	n := uint64(len(h.counts))
	var idx uint64
	if h.reduction == ReduceFastRange {
		idx = intbits.FastRange(hash, n)
	} else {
		idx = intbits.Mod(hash, n)
	}
	h.counts[idx]++
	h.total++
}

// Buckets returns the number of buckets.
func (h *Histogram) Buckets() int { return len(h.counts) }

// Total returns the number of recorded hashes (the sum of all counters).
func (h *Histogram) Total() uint64 { return h.total }

// Counts returns a copy of the counters.
func (h *Histogram) Counts() []uint64 {
	return append([]uint64(nil), h.counts...)
}

// Mean returns the average bucket occupancy. The division is done in
// floating point so a fractional mean is kept exactly.
func (h *Histogram) Mean() float64 {
	return float64(h.total) / float64(len(h.counts))
}

// Variance returns the population variance of the bucket counts.
// Deviations are taken in float64; a counter below the mean yields a
// negative deviation, never a wrapped unsigned value.
func (h *Histogram) Variance() float64 {
	mean := h.Mean()
	var sum float64
	for _, c := range h.counts {
		d := float64(c) - mean
		sum += d * d
	}
	return sum / float64(len(h.counts))
}

// StdDev returns the population standard deviation of the bucket counts.
func (h *Histogram) StdDev() float64 {
	return math.Sqrt(h.Variance())
}

// Min returns the smallest bucket count.
func (h *Histogram) Min() uint64 {
	m := h.counts[0]
	for _, c := range h.counts[1:] {
		m = min(m, c)
	}
	return m
}

// Max returns the largest bucket count.
func (h *Histogram) Max() uint64 {
	m := h.counts[0]
	for _, c := range h.counts[1:] {
		m = max(m, c)
	}
	return m
}

// Empty returns the number of buckets with no entries.
func (h *Histogram) Empty() int {
	var n int
	for _, c := range h.counts {
		if c == 0 {
			n++
		}
	}
	return n
}

// BuildHistogram hashes every key of c into a histogram of the given size.
func BuildHistogram(h Hasher, c *Corpus, buckets int, r Reduction) (*Histogram, error) {
	hist, err := newHistogram(buckets, r)
	if err != nil {
		return nil, err
	}
	for i := range c.Len() {
		hist.Add(h.Hash(c.Bytes(i)))
	}
	return hist, nil
}

// MeasureDistribution returns the population standard deviation of bucket
// occupancy when every key of c is hashed and reduced modulo buckets.
// Lower is better; ExpectedStdDev gives the value an ideal random hash
// would produce.
func MeasureDistribution(h Hasher, c *Corpus, buckets int) (float64, error) {
	hist, err := BuildHistogram(h, c, buckets, ReduceModulo)
	if err != nil {
		return 0, err
	}
	return hist.StdDev(), nil
}

// ExpectedStdDev returns the standard deviation of a bucket's occupancy when
// n keys are thrown uniformly at random into b buckets: sqrt(n/b * (1-1/b)).
// Returns 0 for b <= 0.
func ExpectedStdDev(n, b int) float64 {
	if b <= 0 {
		return 0
	}
	fb := float64(b)
	return math.Sqrt(float64(n) / fb * (1 - 1/fb))
}
