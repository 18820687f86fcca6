// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package convert

import (
	"os/exec"
	"strconv"
)

// killProcessTree arranges for context cancellation to terminate the
// converter and every filter child it spawned. Windows has no process
// groups signalable from Go's syscall surface, so taskkill walks the tree.
func killProcessTree(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return exec.Command("taskkill", "/T", "/F", "/PID",
			strconv.Itoa(cmd.Process.Pid)).Run()
	}
}
