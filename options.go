package hashbench

import "log/slog"

const (
	// DefaultKeys is the corpus size used when WithKeys is not given.
	DefaultKeys = 10_000

	// DefaultKeyLength is the key length used when WithKeyLength is not given.
	DefaultKeyLength = 10

	// DefaultBuckets is the histogram size used when WithBuckets is not given.
	DefaultBuckets = 16
)

// Option is a functional option for configuring a Runner.
type Option func(*runConfig)

type runConfig struct {
	keys       int
	keyLength  int
	buckets    int
	rounds     int
	workers    int
	seed       uint64
	hasSeed    bool
	algorithms []Algorithm
	reduction  Reduction
	pinCPU     bool
	corpusFile string
	logger     *slog.Logger
}

func defaultRunConfig() *runConfig {
	return &runConfig{
		keys:       DefaultKeys,
		keyLength:  DefaultKeyLength,
		buckets:    DefaultBuckets,
		rounds:     1,
		workers:    0, // 0 means GOMAXPROCS for the distribution phase
		algorithms: Algorithms(),
		reduction:  ReduceModulo,
	}
}

// WithKeys sets the number of generated keys.
func WithKeys(n int) Option {
	return func(c *runConfig) {
		c.keys = n
	}
}

// WithKeyLength sets the length of each generated key.
func WithKeyLength(n int) Option {
	return func(c *runConfig) {
		c.keyLength = n
	}
}

// WithBuckets sets the histogram size for the distribution benchmark.
func WithBuckets(n int) Option {
	return func(c *runConfig) {
		c.buckets = n
	}
}

// WithSeed makes corpus generation deterministic.
// Without it a random seed is drawn and recorded in the report.
func WithSeed(seed uint64) Option {
	return func(c *runConfig) {
		c.seed = seed
		c.hasSeed = true
	}
}

// WithAlgorithms restricts the run to the given algorithms, in that order.
// The slice is copied.
func WithAlgorithms(algos ...Algorithm) Option {
	return func(c *runConfig) {
		c.algorithms = append([]Algorithm(nil), algos...)
	}
}

// WithReduction sets how hashes are mapped to buckets. Default is ReduceModulo.
func WithReduction(r Reduction) Option {
	return func(c *runConfig) {
		c.reduction = r
	}
}

// WithRounds repeats each speed measurement n times; the report carries
// the best and the mean.
func WithRounds(n int) Option {
	return func(c *runConfig) {
		c.rounds = n
	}
}

// WithWorkers bounds the parallelism of the untimed distribution phase.
// 0 uses GOMAXPROCS. The speed phase is always sequential.
func WithWorkers(n int) Option {
	return func(c *runConfig) {
		c.workers = n
	}
}

// WithPinnedCPU pins the speed phase to one OS thread and, on Linux, one CPU.
func WithPinnedCPU(pin bool) Option {
	return func(c *runConfig) {
		c.pinCPU = pin
	}
}

// WithCorpusFile loads the corpus from a newline-separated key file instead
// of generating it. WithKeys, WithKeyLength and WithSeed are then ignored.
func WithCorpusFile(path string) Option {
	return func(c *runConfig) {
		c.corpusFile = path
	}
}

// WithLogger sets the logger for progress messages. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}
