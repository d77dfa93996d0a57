package hashbench

import (
	"context"
	"errors"
	"math"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	hberrors "github.com/tamirms/hashbench/errors"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRunnerValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero buckets", []Option{WithBuckets(0)}, hberrors.ErrZeroBuckets},
		{"negative buckets", []Option{WithBuckets(-4)}, hberrors.ErrZeroBuckets},
		{"negative keys", []Option{WithKeys(-1)}, hberrors.ErrNegativeCorpusSize},
		{"negative key length", []Option{WithKeyLength(-1)}, hberrors.ErrNegativeKeyLength},
		{"corpus overflows int", []Option{WithKeys(math.MaxInt), WithKeyLength(2)}, hberrors.ErrCorpusTooLarge},
		{"corpus too large", []Option{WithKeys(1 << 32), WithKeyLength(1 << 32)}, hberrors.ErrCorpusTooLarge},
		{"zero rounds", []Option{WithRounds(0)}, hberrors.ErrInvalidRounds},
		{"negative workers", []Option{WithWorkers(-1)}, hberrors.ErrInvalidWorkers},
		{"no algorithms", []Option{WithAlgorithms()}, hberrors.ErrNoAlgorithms},
		{"bad algorithm", []Option{WithAlgorithms(Algorithm(250))}, hberrors.ErrUnknownAlgorithm},
		{"bad reduction", []Option{WithReduction(Reduction(9))}, hberrors.ErrUnknownReduction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if !errors.Is(err, hberrors.ErrInvalidConfig) {
				t.Fatalf("%v does not match ErrInvalidConfig", err)
			}
		})
	}
}

func TestRunnerDefaults(t *testing.T) {
	r, err := NewRunner(WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	if r.cfg.keys != DefaultKeys || r.cfg.keyLength != DefaultKeyLength || r.cfg.buckets != DefaultBuckets {
		t.Errorf("defaults = %d/%d/%d", r.cfg.keys, r.cfg.keyLength, r.cfg.buckets)
	}
	if len(r.cfg.algorithms) != int(numAlgorithms) {
		t.Errorf("default algorithms = %d, want all %d", len(r.cfg.algorithms), numAlgorithms)
	}
}

func TestRunnerRun(t *testing.T) {
	algos := []Algorithm{AlgoMurmur3, AlgoXXHash, AlgoSipHash}
	r, err := NewRunner(
		WithKeys(1000),
		WithKeyLength(10),
		WithBuckets(16),
		WithSeed(42),
		WithRounds(3),
		WithWorkers(2),
		WithAlgorithms(algos...),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatal(err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if report.CorpusSize != 1000 || report.KeyLength != 10 || report.Buckets != 16 {
		t.Fatalf("report shape = %d/%d/%d", report.CorpusSize, report.KeyLength, report.Buckets)
	}
	if report.Seed != 42 || report.Rounds != 3 || report.Reduction != "mod" {
		t.Fatalf("report params = seed %d rounds %d reduction %s", report.Seed, report.Rounds, report.Reduction)
	}
	want, _ := NewCorpus(1000, 10, WithCorpusSeed(42))
	if report.Checksum != want.Checksum() {
		t.Fatalf("checksum %x, want %x", report.Checksum, want.Checksum())
	}
	if len(report.Results) != len(algos) {
		t.Fatalf("got %d results, want %d", len(report.Results), len(algos))
	}
	for i, res := range report.Results {
		if res.Algorithm != algos[i].String() {
			t.Errorf("result %d is %s, want %s", i, res.Algorithm, algos[i])
		}
		if res.ElapsedNs < 0 || res.MeanElapsedNs < res.ElapsedNs {
			t.Errorf("%s: best %d, mean %d", res.Algorithm, res.ElapsedNs, res.MeanElapsedNs)
		}
		if res.StdDev < 0 || res.StdDev >= 1000 {
			t.Errorf("%s: stddev %v", res.Algorithm, res.StdDev)
		}
		if res.MaxLoad < res.MinLoad {
			t.Errorf("%s: max load %d < min load %d", res.Algorithm, res.MaxLoad, res.MinLoad)
		}

		sd, err := MeasureDistribution(algos[i], want, 16)
		if err != nil {
			t.Fatal(err)
		}
		if sd != res.StdDev {
			t.Errorf("%s: report stddev %v, direct %v", res.Algorithm, res.StdDev, sd)
		}
	}
}

func TestRunnerSameCorpusForEveryAlgorithm(t *testing.T) {
	c := newTestCorpus(t, 300, 10)
	r, err := NewRunner(WithBuckets(1), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	report, err := r.RunCorpus(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if report.Checksum != c.Checksum() {
		t.Fatal("report checksum does not match the supplied corpus")
	}
	for _, res := range report.Results {
		if res.StdDev != 0 {
			t.Errorf("%s: one bucket gave stddev %v", res.Algorithm, res.StdDev)
		}
		if res.MinLoad != 300 || res.MaxLoad != 300 {
			t.Errorf("%s: loads %d..%d, want 300", res.Algorithm, res.MinLoad, res.MaxLoad)
		}
	}
}

func TestRunnerEmptyCorpus(t *testing.T) {
	r, err := NewRunner(WithKeys(0), WithPinnedCPU(true), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range report.Results {
		if res.StdDev != 0 || res.NsPerKey != 0 {
			t.Errorf("%s: stddev %v ns/key %v on empty corpus", res.Algorithm, res.StdDev, res.NsPerKey)
		}
	}
}

func TestRunnerCorpusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte("aaaa\nbbbb\ncccc\ndddd\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := NewRunner(WithCorpusFile(path), WithAlgorithms(AlgoXXH3), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.CorpusSize != 4 || report.KeyLength != 4 {
		t.Fatalf("shape = %dx%d, want 4x4", report.CorpusSize, report.KeyLength)
	}
	if report.CorpusFile != path || report.Seed != 0 {
		t.Fatalf("corpus file %q seed %d", report.CorpusFile, report.Seed)
	}
}

func TestRunnerCanceled(t *testing.T) {
	r, err := NewRunner(WithKeys(10), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
