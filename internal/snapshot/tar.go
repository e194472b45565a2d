package snapshot

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/keshon/vaultkeep/internal/errs"
)

// tarPath is the resolved path to the external archive tool binary.
// Overridden by tests to point at a fake tar shim.
var tarPath = "tar"

// runTar runs the external archive tool with args, its working
// directory pinned to dir, waiting for completion and forwarding any
// cancellation on ctx to the child's process group so a cancelled
// command never leaves an orphan archive process behind.
func runTar(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tarPath, args...)
	cmd.Dir = dir
	cmd.Cancel = func() error {
		return killGroup(cmd)
	}
	cmd.SysProcAttr = childProcAttr()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	exitCode := -1
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	return nil, &errs.SnapshotToolError{
		Args:     append([]string{tarPath}, args...),
		ExitCode: exitCode,
		Stderr:   stderr.String(),
	}
}
