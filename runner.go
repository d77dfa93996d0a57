package hashbench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	hberrors "github.com/tamirms/hashbench/errors"
)

// Runner builds one corpus and measures every selected algorithm against it.
type Runner struct {
	cfg    *runConfig
	logger *slog.Logger
}

// NewRunner validates the options and returns a Runner.
// Every error it returns matches errors.ErrInvalidConfig.
func NewRunner(opts ...Option) (*Runner, error) {
	cfg := defaultRunConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.corpusFile == "" {
		if cfg.keys < 0 {
			return nil, fmt.Errorf("%w: %d", hberrors.ErrNegativeCorpusSize, cfg.keys)
		}
		if cfg.keyLength < 0 {
			return nil, fmt.Errorf("%w: %d", hberrors.ErrNegativeKeyLength, cfg.keyLength)
		}
		if err := checkCorpusSize(cfg.keys, cfg.keyLength); err != nil {
			return nil, err
		}
	}
	if cfg.buckets <= 0 {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrZeroBuckets, cfg.buckets)
	}
	if cfg.rounds <= 0 {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrInvalidRounds, cfg.rounds)
	}
	if cfg.workers < 0 {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrInvalidWorkers, cfg.workers)
	}
	if len(cfg.algorithms) == 0 {
		return nil, hberrors.ErrNoAlgorithms
	}
	for _, a := range cfg.algorithms {
		if !a.valid() {
			return nil, fmt.Errorf("%w: id %d", hberrors.ErrUnknownAlgorithm, a)
		}
	}
	if cfg.reduction != ReduceModulo && cfg.reduction != ReduceFastRange {
		return nil, fmt.Errorf("%w: %d", hberrors.ErrUnknownReduction, cfg.reduction)
	}
	if !cfg.hasSeed {
		cfg.seed = rand.Uint64()
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// Run builds the corpus and measures every algorithm.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	buildStart := time.Now()
	corpus, err := r.buildCorpus()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("corpus ready",
		"keys", corpus.Len(),
		"key_length", corpus.KeyLength(),
		"checksum", fmt.Sprintf("%016x", corpus.Checksum()),
		"took", time.Since(buildStart))

	report, err := r.RunCorpus(ctx, corpus)
	if err != nil {
		return nil, err
	}
	if r.cfg.corpusFile != "" {
		report.CorpusFile = r.cfg.corpusFile
		report.Seed = 0
	}
	return report, nil
}

// RunCorpus measures every algorithm against an existing corpus.
// The same corpus instance is used for every algorithm.
func (r *Runner) RunCorpus(ctx context.Context, corpus *Corpus) (*Report, error) {
	report := &Report{
		CorpusSize:     corpus.Len(),
		KeyLength:      corpus.KeyLength(),
		Buckets:        r.cfg.buckets,
		Reduction:      r.cfg.reduction.String(),
		Rounds:         r.cfg.rounds,
		Seed:           r.cfg.seed,
		Checksum:       corpus.Checksum(),
		ExpectedStdDev: ExpectedStdDev(corpus.Len(), r.cfg.buckets),
		Results:        make([]Result, len(r.cfg.algorithms)),
	}
	for i, a := range r.cfg.algorithms {
		report.Results[i] = Result{
			Algorithm: a.String(),
			Stable:    a.Stable(),
			Streaming: a.Streaming(),
		}
	}

	if err := r.speedPhase(ctx, corpus, report.Results); err != nil {
		return nil, err
	}
	if err := r.distributionPhase(ctx, corpus, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *Runner) buildCorpus() (*Corpus, error) {
	if r.cfg.corpusFile != "" {
		return LoadCorpus(r.cfg.corpusFile)
	}
	return NewCorpus(r.cfg.keys, r.cfg.keyLength, WithCorpusSeed(r.cfg.seed))
}

// speedPhase times each algorithm in turn on the calling goroutine.
// Nothing else runs and nothing is logged while a measurement is in flight.
func (r *Runner) speedPhase(ctx context.Context, corpus *Corpus, results []Result) error {
	if r.cfg.pinCPU {
		unpin := pinThread()
		defer unpin()
	}

	n := corpus.Len()
	for i, a := range r.cfg.algorithms {
		if err := ctx.Err(); err != nil {
			return err
		}

		var best, total time.Duration
		for round := range r.cfg.rounds {
			d := MeasureSpeed(a, corpus)
			total += d
			if round == 0 || d < best {
				best = d
			}
		}

		res := &results[i]
		res.ElapsedNs = best.Nanoseconds()
		res.MeanElapsedNs = (total / time.Duration(r.cfg.rounds)).Nanoseconds()
		if n > 0 {
			res.NsPerKey = float64(res.ElapsedNs) / float64(n)
		}
		if best > 0 {
			res.MBPerSec = float64(corpus.SizeBytes()) / best.Seconds() / 1_000_000
		}
		r.logger.Debug("speed measured", "algorithm", a.String(), "elapsed", best, "rounds", r.cfg.rounds)
	}
	return nil
}

// distributionPhase builds one histogram per algorithm. It is not timed, so
// algorithms run in parallel; each worker owns its histogram and the corpus
// is only read.
func (r *Runner) distributionPhase(ctx context.Context, corpus *Corpus, report *Report) error {
	workers := r.cfg.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, a := range r.cfg.algorithms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hist, err := BuildHistogram(a, corpus, r.cfg.buckets, r.cfg.reduction)
			if err != nil {
				return fmt.Errorf("%s: %w", a, err)
			}
			res := &report.Results[i]
			res.StdDev = hist.StdDev()
			if report.ExpectedStdDev > 0 {
				res.RelativeStdDev = res.StdDev / report.ExpectedStdDev
			}
			res.MinLoad = hist.Min()
			res.MaxLoad = hist.Max()
			res.EmptyBuckets = hist.Empty()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.logger.Debug("distribution measured", "algorithms", len(r.cfg.algorithms), "buckets", r.cfg.buckets)
	return nil
}
