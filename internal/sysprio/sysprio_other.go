//go:build !unix

// Package sysprio lowers the scheduling priority of the comcut process.
// Unsupported on this platform; Apply is a no-op.
package sysprio

// Apply is a no-op on this platform.
func Apply(level int) error { return nil }
