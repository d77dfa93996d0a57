//go:build !unix

package main

// peakRSS is unavailable on this platform.
func peakRSS() uint64 { return 0 }
