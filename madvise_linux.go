//go:build linux

package hashbench

import "golang.org/x/sys/unix"

// adviseSequential enables aggressive readahead on a mapped corpus file,
// which is scanned front to back exactly once.
// Best-effort: errors are silently ignored.
func adviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
