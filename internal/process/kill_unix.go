//go:build !windows

package process

import "syscall"

// killTree signals the whole process group led by pid.
func killTree(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
