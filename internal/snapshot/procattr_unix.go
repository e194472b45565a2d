//go:build !windows

package snapshot

import (
	"os/exec"
	"syscall"
)

// childProcAttr puts the archive tool child in its own process group so
// a forwarded SIGTERM reaches any grandchildren tar spawns too.
func childProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

// killGroup signals cmd's whole process group (negative pid) rather
// than just cmd.Process, since Setpgid made the child its own group
// leader specifically so a cancellation reaches any grandchildren tar
// spawns too.
func killGroup(cmd *exec.Cmd) error {
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
}
