package hashbench

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	hberrors "github.com/tamirms/hashbench/errors"
)

// LoadCorpus reads a newline-separated key file into a corpus.
// It opens the file, memory-maps it, and copies the keys out before unmapping.
//
// Blank lines and a trailing carriage return on each line are ignored.
// Every remaining line must have the same length.
func LoadCorpus(path string) (*Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer file.Close()
	return LoadCorpusFile(file)
}

// LoadCorpusFile memory-maps f and parses it like LoadCorpus.
// The caller is responsible for closing f.
func LoadCorpusFile(f *os.File) (c *Corpus, err error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat corpus file: %w", err)
	}
	if stat.Size() == 0 {
		return nil, hberrors.ErrEmptyCorpus
	}

	fadviseSequential(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap corpus file: %w", err)
	}
	defer func() {
		if uerr := mm.Unmap(); uerr != nil {
			err = errors.Join(err, fmt.Errorf("unmap corpus file: %w", uerr))
		}
	}()
	adviseSequential(mm)

	return ParseCorpus(mm)
}

// ParseCorpus parses newline-separated keys from data. data is not retained.
func ParseCorpus(data []byte) (*Corpus, error) {
	var (
		arena  []byte
		n      int
		keyLen = -1
		line   int
	)
	for len(data) > 0 {
		line++
		var key []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			key, data = data[:i], data[i+1:]
		} else {
			key, data = data, nil
		}
		key = bytes.TrimSuffix(key, []byte{'\r'})
		if len(key) == 0 {
			continue
		}
		if keyLen < 0 {
			keyLen = len(key)
		} else if len(key) != keyLen {
			return nil, fmt.Errorf("%w: line %d has length %d, want %d",
				hberrors.ErrNonUniformKeys, line, len(key), keyLen)
		}
		arena = append(arena, key...)
		n++
	}
	if n == 0 {
		return nil, hberrors.ErrEmptyCorpus
	}
	return newCorpus(arena, n, keyLen), nil
}
