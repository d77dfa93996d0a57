package hashbench

import "time"

// sink receives a fold of every hash computed by MeasureSpeed so the calls
// cannot be optimized away.
var sink uint64

// MeasureSpeed hashes every key of c once, in corpus order, and returns the
// elapsed wall-clock time. Corpus construction is never inside the timed
// region.
//
// MeasureSpeed is strictly sequential. Running it concurrently with other
// measurements invalidates the result.
func MeasureSpeed(h Hasher, c *Corpus) time.Duration {
	var acc uint64
	n := c.Len()
	start := time.Now()
	for i := range n {
		acc ^= h.Hash(c.Bytes(i))
	}
	elapsed := time.Since(start)
	sink ^= acc
	return elapsed
}
