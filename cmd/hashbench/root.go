package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tamirms/hashbench"
	hberrors "github.com/tamirms/hashbench/errors"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitConfigError = 2
)

// run executes the command with args and maps the outcome to an exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, hberrors.ErrInvalidConfig):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfigError
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "hashbench",
		Short: "Compare hash function speed and bucket distribution",
		Long: `Hashbench generates one corpus of random [a-z0-9] keys and, for every
selected hash algorithm, times hashing the whole corpus and measures how
evenly the hashes spread over a fixed number of buckets.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", hberrors.ErrInvalidConfig, err)
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.Context(), v, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", hberrors.ErrInvalidConfig, err)
	})

	defineFlags(cmd.Flags())
	cobra.CheckErr(v.BindPFlags(cmd.Flags()))
	v.SetEnvPrefix("HASHBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func defineFlags(fs *pflag.FlagSet) {
	names := make([]string, 0, len(hashbench.Algorithms()))
	for _, a := range hashbench.Algorithms() {
		names = append(names, a.String())
	}

	fs.Int("keys", hashbench.DefaultKeys, "number of keys to generate")
	fs.Int("key-length", hashbench.DefaultKeyLength, "length of each key in bytes")
	fs.Int("buckets", hashbench.DefaultBuckets, "number of histogram buckets")
	fs.Uint64("seed", 0, "corpus seed (random when unset)")
	fs.StringSlice("algorithms", names, "algorithms to benchmark")
	fs.String("reduction", hashbench.ReduceModulo.String(), "bucket reduction: mod or fastrange")
	fs.Int("rounds", 1, "speed measurements per algorithm")
	fs.Int("workers", 0, "parallelism of the distribution phase (0 = GOMAXPROCS)")
	fs.Bool("pin-cpu", false, "pin the speed phase to one CPU")
	fs.String("corpus-file", "", "load keys from a newline-separated file")
	fs.String("format", hashbench.FormatText.String(), "output format: text, json, yaml or prom")
	fs.String("config", "", "YAML config file")
	fs.BoolP("verbose", "v", false, "log progress to stderr")
}

func runBench(ctx context.Context, v *viper.Viper, stdout, stderr io.Writer) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: read config %s: %v", hberrors.ErrInvalidConfig, cfgFile, err)
		}
	}

	level := slog.LevelInfo
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts, format, err := optionsFromConfig(v)
	if err != nil {
		return err
	}
	opts = append(opts, hashbench.WithLogger(logger))

	runner, err := hashbench.NewRunner(opts...)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	if rss := peakRSS(); rss > 0 {
		logger.Debug("run complete", "peak_rss_mb", float64(rss)/1_000_000)
	}
	return report.Write(stdout, format)
}

// optionsFromConfig turns the merged flag, environment and file settings
// into runner options.
func optionsFromConfig(v *viper.Viper) ([]hashbench.Option, hashbench.Format, error) {
	format, err := hashbench.ParseFormat(v.GetString("format"))
	if err != nil {
		return nil, 0, err
	}
	reduction, err := hashbench.ParseReduction(v.GetString("reduction"))
	if err != nil {
		return nil, 0, err
	}
	algos, err := hashbench.ParseAlgorithms(splitList(v.GetStringSlice("algorithms")))
	if err != nil {
		return nil, 0, err
	}

	opts := []hashbench.Option{
		hashbench.WithKeys(v.GetInt("keys")),
		hashbench.WithKeyLength(v.GetInt("key-length")),
		hashbench.WithBuckets(v.GetInt("buckets")),
		hashbench.WithAlgorithms(algos...),
		hashbench.WithReduction(reduction),
		hashbench.WithRounds(v.GetInt("rounds")),
		hashbench.WithWorkers(v.GetInt("workers")),
		hashbench.WithPinnedCPU(v.GetBool("pin-cpu")),
	}
	if v.IsSet("seed") {
		opts = append(opts, hashbench.WithSeed(v.GetUint64("seed")))
	}
	if path := v.GetString("corpus-file"); path != "" {
		opts = append(opts, hashbench.WithCorpusFile(path))
	}
	return opts, format, nil
}

// splitList flattens entries that arrive comma-separated from the
// environment or a config file.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
