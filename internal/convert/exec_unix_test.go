// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !windows

package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunPiped_TimeoutKillsSpawnedChildren(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "child.pid")

	// Stand-in for a converter whose filter spawns a long-lived child.
	script := filepath.Join(dir, "converter.sh")
	body := "#!/bin/sh\nsleep 300 &\necho $! > " + pidFile + "\nwait\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := osExecutor{}.RunPiped(ctx, script, nil, strings.NewReader(""), io.Discard)
	require.Error(t, err)

	raw, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	childPid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return syscall.Kill(childPid, 0) != nil
	}, 2*time.Second, 50*time.Millisecond, "child process survived cancellation")
}
