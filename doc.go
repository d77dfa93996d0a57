// Package hashbench compares non-cryptographic hash functions on string keys.
//
// For each algorithm it measures two things against one shared corpus of
// random keys: how long hashing the whole corpus takes, and how evenly the
// hashes spread over a fixed number of buckets (the population standard
// deviation of bucket occupancy, compared with the sqrt(n/b * (1-1/b))
// expected from an ideal random hash).
//
// # Basic Usage
//
//	runner, err := hashbench.NewRunner(
//	    hashbench.WithKeys(100_000),
//	    hashbench.WithKeyLength(10),
//	    hashbench.WithBuckets(128),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := runner.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.WriteText(os.Stdout)
//
// The building blocks are usable on their own:
//
//	corpus, _ := hashbench.NewCorpus(1000, 10, hashbench.WithCorpusSeed(42))
//	elapsed := hashbench.MeasureSpeed(hashbench.AlgoXXHash, corpus)
//	stddev, _ := hashbench.MeasureDistribution(hashbench.AlgoXXHash, corpus, 16)
//
// # Package Structure
//
//   - Corpus: corpus.go (Generate, NewCorpus), corpus_file.go (LoadCorpus)
//   - Algorithms: algorithm.go (Hasher, Algorithm), internal/hashfn/ (free functions)
//   - Measurements: speed.go (MeasureSpeed), distribution.go (Histogram, MeasureDistribution)
//   - Driver: options.go (Option, With* functions), runner.go (Runner)
//   - Output: report.go (Report, text/json/yaml/prom encoders)
//   - Platform: pin_*.go, fadvise_*.go, madvise_*.go (OS-specific tuning)
package hashbench
