//go:build !linux

package hashbench

import "runtime"

// pinThread only locks the goroutine to its OS thread; CPU affinity is
// Linux-specific.
func pinThread() (unpin func()) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
