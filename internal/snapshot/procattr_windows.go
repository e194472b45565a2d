//go:build windows

package snapshot

import (
	"os/exec"
	"syscall"
)

func childProcAttr() *syscall.SysProcAttr {
	return nil
}

// killGroup has no process group to target on Windows (childProcAttr
// returns nil), so it falls back to signaling the child directly.
func killGroup(cmd *exec.Cmd) error {
	return cmd.Process.Signal(syscall.SIGTERM)
}
