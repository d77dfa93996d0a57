// Hashbench measures hash throughput and bucket distribution for a set of
// non-cryptographic hash functions over one shared corpus of random keys.
//
// Usage:
//
//	go run ./cmd/hashbench --keys 100000 --key-length 10 --buckets 128
//
// Flags:
//
//	--keys         Number of keys to generate (default: 10,000)
//	--key-length   Length of each key in bytes (default: 10)
//	--buckets      Number of histogram buckets (default: 16)
//	--seed         Corpus seed; random when unset
//	--algorithms   Comma-separated algorithms (default: all)
//	--reduction    Bucket reduction: mod or fastrange (default: mod)
//	--rounds       Speed measurements per algorithm (default: 1)
//	--workers      Parallelism of the distribution phase, 0 = GOMAXPROCS
//	--pin-cpu      Pin the speed phase to one CPU
//	--corpus-file  Load keys from a newline-separated file instead
//	--format       Output format: text, json, yaml or prom (default: text)
//	--config       YAML config file with the same keys as the flags
//	--verbose      Log progress to stderr
//
// Every flag can also be set through the environment as HASHBENCH_<FLAG>,
// with dashes replaced by underscores (HASHBENCH_KEY_LENGTH=100).
//
// Exit status is 0 on success, 2 for an invalid configuration and 1 for
// any other failure.
package main

import (
	"fmt"
	"os"
)

func main() {
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	if code != exitOK {
		fmt.Fprintln(os.Stderr, "Run 'hashbench --help' for usage.")
	}
	os.Exit(code)
}
