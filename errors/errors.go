// Package errors defines all exported error sentinels for the hashbench module.
//
// This is the single source of truth for error values. The top-level
// hashbench package and the command both import from here, so errors.Is
// checks work across package boundaries.
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the root of every configuration error. A run that
// fails with an error matching it never started measuring.
var ErrInvalidConfig = errors.New("hashbench: invalid configuration")

// Configuration errors
var (
	ErrZeroBuckets        = fmt.Errorf("%w: bucket count must be positive", ErrInvalidConfig)
	ErrNegativeKeyLength  = fmt.Errorf("%w: key length must not be negative", ErrInvalidConfig)
	ErrNegativeCorpusSize = fmt.Errorf("%w: corpus size must not be negative", ErrInvalidConfig)
	ErrCorpusTooLarge     = fmt.Errorf("%w: corpus does not fit in memory", ErrInvalidConfig)
	ErrInvalidRounds      = fmt.Errorf("%w: rounds must be positive", ErrInvalidConfig)
	ErrInvalidWorkers     = fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	ErrNoAlgorithms       = fmt.Errorf("%w: no algorithms selected", ErrInvalidConfig)
	ErrUnknownAlgorithm   = fmt.Errorf("%w: unknown algorithm", ErrInvalidConfig)
	ErrUnknownReduction   = fmt.Errorf("%w: unknown bucket reduction", ErrInvalidConfig)
	ErrUnknownFormat      = fmt.Errorf("%w: unknown output format", ErrInvalidConfig)
)

// Corpus errors
var (
	ErrEmptyCorpus    = fmt.Errorf("%w: corpus file contains no keys", ErrInvalidConfig)
	ErrNonUniformKeys = fmt.Errorf("%w: corpus keys differ in length", ErrInvalidConfig)
)
