//go:build !linux

package hashbench

// adviseSequential is a no-op on non-Linux platforms.
func adviseSequential(data []byte) {
	// No-op: the platform's default readahead applies
}
