package hashbench

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"

	hberrors "github.com/tamirms/hashbench/errors"
)

// Result holds the measurements for one algorithm.
type Result struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Stable    bool   `json:"stable" yaml:"stable"`
	Streaming bool   `json:"streaming" yaml:"streaming"`

	// ElapsedNs is the best (smallest) time to hash the whole corpus once.
	ElapsedNs     int64   `json:"elapsed_ns" yaml:"elapsed_ns"`
	MeanElapsedNs int64   `json:"mean_elapsed_ns" yaml:"mean_elapsed_ns"`
	NsPerKey      float64 `json:"ns_per_key" yaml:"ns_per_key"`
	MBPerSec      float64 `json:"mb_per_sec" yaml:"mb_per_sec"`

	StdDev         float64 `json:"stddev" yaml:"stddev"`
	RelativeStdDev float64 `json:"relative_stddev" yaml:"relative_stddev"`
	MinLoad        uint64  `json:"min_load" yaml:"min_load"`
	MaxLoad        uint64  `json:"max_load" yaml:"max_load"`
	EmptyBuckets   int     `json:"empty_buckets" yaml:"empty_buckets"`
}

// Elapsed returns ElapsedNs as a Duration.
func (r Result) Elapsed() time.Duration { return time.Duration(r.ElapsedNs) }

// Report is the outcome of one run.
type Report struct {
	CorpusSize     int      `json:"corpus_size" yaml:"corpus_size"`
	KeyLength      int      `json:"key_length" yaml:"key_length"`
	Buckets        int      `json:"buckets" yaml:"buckets"`
	Reduction      string   `json:"reduction" yaml:"reduction"`
	Rounds         int      `json:"rounds" yaml:"rounds"`
	Seed           uint64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	CorpusFile     string   `json:"corpus_file,omitempty" yaml:"corpus_file,omitempty"`
	Checksum       uint64   `json:"checksum" yaml:"checksum"`
	ExpectedStdDev float64  `json:"expected_stddev" yaml:"expected_stddev"`
	Results        []Result `json:"results" yaml:"results"`
}

// Format selects how a Report is written.
type Format uint8

const (
	// FormatText is a human-readable summary and box table.
	FormatText Format = iota
	// FormatJSON is a single JSON document.
	FormatJSON
	// FormatYAML is a single YAML document.
	FormatYAML
	// FormatPrometheus is the Prometheus text exposition format.
	FormatPrometheus
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatPrometheus:
		return "prom"
	default:
		return "unknown"
	}
}

// ParseFormat looks up an output format by name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "prom", "prometheus":
		return FormatPrometheus, nil
	}
	return 0, fmt.Errorf("%w: %q", hberrors.ErrUnknownFormat, name)
}

// Write encodes the report to w in the given format.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatText:
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	case FormatPrometheus:
		return r.WritePrometheus(w)
	}
	return fmt.Errorf("%w: %d", hberrors.ErrUnknownFormat, f)
}

// WriteText writes a human-readable table.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Corpus: %d keys of length %d (checksum %016x)\n", r.CorpusSize, r.KeyLength, r.Checksum)
	if r.CorpusFile != "" {
		fmt.Fprintf(&b, "Source: %s\n", r.CorpusFile)
	} else {
		fmt.Fprintf(&b, "Seed:   %d\n", r.Seed)
	}
	fmt.Fprintf(&b, "Buckets: %d (%s), expected stddev %.3f\n", r.Buckets, r.Reduction, r.ExpectedStdDev)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "╔════════════════╦════════════════╦═══════════╦════════════╦═════════════╦══════════╗\n")
	fmt.Fprintf(&b, "║ Algorithm      ║ Total (ns)     ║ ns/key    ║ MB/s       ║ Stddev      ║ Relative ║\n")
	fmt.Fprintf(&b, "╠════════════════╬════════════════╬═══════════╬════════════╬═════════════╬══════════╣\n")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "║ %-14s ║ %14d ║ %9.2f ║ %10.1f ║ %11.3f ║ %8.3f ║\n",
			res.Algorithm, res.ElapsedNs, res.NsPerKey, res.MBPerSec, res.StdDev, res.RelativeStdDev)
	}
	fmt.Fprintf(&b, "╚════════════════╩════════════════╩═══════════╩════════════╩═════════════╩══════════╝\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the report as a single JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := sonnet.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}

// WritePrometheus writes the report in the Prometheus text exposition format.
// The gauges live in a private registry; nothing is served or pushed.
func (r *Report) WritePrometheus(w io.Writer) error {
	reg := prometheus.NewRegistry()

	corpusKeys := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hashbench",
		Name:      "corpus_keys",
		Help:      "Number of keys in the benchmark corpus.",
	})
	keyLength := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hashbench",
		Name:      "key_length_bytes",
		Help:      "Length of every corpus key in bytes.",
	})
	buckets := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hashbench",
		Name:      "buckets",
		Help:      "Number of histogram buckets.",
	})
	expected := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hashbench",
		Name:      "expected_stddev",
		Help:      "Bucket stddev expected from an ideal random hash.",
	})
	elapsed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hashbench",
		Name:      "corpus_hash_duration_nanoseconds",
		Help:      "Best time to hash the whole corpus once.",
	}, []string{"algorithm"})
	stddev := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hashbench",
		Name:      "bucket_stddev",
		Help:      "Population standard deviation of bucket occupancy.",
	}, []string{"algorithm"})

	reg.MustRegister(corpusKeys, keyLength, buckets, expected, elapsed, stddev)

	corpusKeys.Set(float64(r.CorpusSize))
	keyLength.Set(float64(r.KeyLength))
	buckets.Set(float64(r.Buckets))
	expected.Set(r.ExpectedStdDev)
	for _, res := range r.Results {
		elapsed.WithLabelValues(res.Algorithm).Set(float64(res.ElapsedNs))
		stddev.WithLabelValues(res.Algorithm).Set(res.StdDev)
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
