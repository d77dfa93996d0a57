//go:build linux

package hashbench

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// maxPinnableCPU bounds the scan for an allowed CPU; unix.CPUSet holds 1024.
const maxPinnableCPU = 1024

// pinThread locks the calling goroutine to its OS thread and restricts that
// thread to a single allowed CPU, so a timed loop is not migrated mid-run.
// The returned function restores the original affinity and unlocks the thread.
// Best-effort: if the affinity cannot be changed only the thread lock applies.
func pinThread() (unpin func()) {
	runtime.LockOSThread()

	var orig unix.CPUSet
	if err := unix.SchedGetaffinity(0, &orig); err != nil {
		return runtime.UnlockOSThread
	}
	cpu := -1
	for i := range maxPinnableCPU {
		if orig.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu < 0 {
		return runtime.UnlockOSThread
	}

	var one unix.CPUSet
	one.Zero()
	one.Set(cpu)
	if err := unix.SchedSetaffinity(0, &one); err != nil {
		return runtime.UnlockOSThread
	}
	return func() {
		_ = unix.SchedSetaffinity(0, &orig)
		runtime.UnlockOSThread()
	}
}
