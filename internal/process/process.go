// Package process terminates the headless browser together with its
// helper processes.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for pids that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("invalid pid")

// KillProcessGroup force-kills pid and its descendants.
func KillProcessGroup(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
