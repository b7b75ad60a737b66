//go:build unix

// Package sysprio lowers the scheduling priority of the comcut process so
// long detector and transcoder runs do not starve the DVR. Children inherit
// the niceness.
package sysprio

import "golang.org/x/sys/unix"

// Apply sets the process niceness to level. Zero leaves it unchanged.
func Apply(level int) error {
	if level == 0 {
		return nil
	}
	return unix.Setpriority(unix.PRIO_PROCESS, 0, level)
}
