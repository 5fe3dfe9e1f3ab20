//go:build !windows

package report

import "syscall"

// killProcessGroup sends SIGKILL to the process group of pid so Chrome's
// helper processes exit with it.
func killProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
