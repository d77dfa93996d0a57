package hashbench

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"

	hberrors "github.com/tamirms/hashbench/errors"
)

func sampleReport() *Report {
	return &Report{
		CorpusSize:     1000,
		KeyLength:      10,
		Buckets:        16,
		Reduction:      "mod",
		Rounds:         1,
		Seed:           42,
		Checksum:       0xDEADBEEF,
		ExpectedStdDev: ExpectedStdDev(1000, 16),
		Results: []Result{
			{Algorithm: "murmur3-128", Stable: true, Streaming: true, ElapsedNs: 41000, NsPerKey: 41, StdDev: 7.5},
			{Algorithm: "xxhash", Stable: true, ElapsedNs: 9000, NsPerKey: 9, StdDev: 8.25},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Write(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"1000 keys of length 10", "murmur3-128", "xxhash", "41000", "7.500", "8.250"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Write(&buf, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := sonnet.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.CorpusSize != 1000 || len(got.Results) != 2 || got.Results[1].StdDev != 8.25 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if !strings.Contains(buf.String(), `"elapsed_ns":41000`) {
		t.Errorf("json missing elapsed_ns: %s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Write(&buf, FormatYAML); err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.KeyLength != 10 || got.Results[0].Algorithm != "murmur3-128" {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestWritePrometheus(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleReport().Write(&buf, FormatPrometheus); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"hashbench_corpus_keys 1000",
		"hashbench_key_length_bytes 10",
		`hashbench_corpus_hash_duration_nanoseconds{algorithm="xxhash"} 9000`,
		`hashbench_bucket_stddev{algorithm="murmur3-128"} 7.5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prometheus output missing %q:\n%s", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, "yml": FormatYAML, "prom": FormatPrometheus} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, hberrors.ErrUnknownFormat) {
		t.Errorf("ParseFormat(xml): got %v", err)
	}
	if err := sampleReport().Write(&bytes.Buffer{}, Format(99)); !errors.Is(err, hberrors.ErrUnknownFormat) {
		t.Errorf("Write(99): got %v", err)
	}
}
