//go:build linux

package hashbench

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the corpus file will be read
// sequentially, once. Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}
