// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package convert

import (
	"os/exec"
	"syscall"
)

// killProcessTree puts the converter in its own process group and, on
// context cancellation, signals the group so filter children die with it.
func killProcessTree(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
