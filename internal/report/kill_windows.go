//go:build windows

package report

import (
	"os/exec"
	"strconv"
)

// killProcessGroup kills pid and its children with taskkill (/T = tree).
func killProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
