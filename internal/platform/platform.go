// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package platform provides the operating system integrations the pipeline
// needs: clipboard access, foreground window inspection, caret insertion,
// and user notification. All integrations shell out to OS tools so the
// rest of the codebase stays process-oriented and testable.
package platform

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pdiddy/pastemd/internal/clipboard"
	"github.com/pdiddy/pastemd/internal/deliver"
	"github.com/pdiddy/pastemd/internal/target"
	"github.com/pdiddy/pastemd/pkg/types"
)

const commandTimeout = 10 * time.Second

// Capabilities bundles every OS-facing collaborator the pipeline consumes.
type Capabilities struct {
	Clipboard clipboard.Reader
	Inspector target.Inspector
	Inserter  deliver.CaretInserter
	Tables    deliver.TableInserter
	Launcher  deliver.Launcher
	Files     deliver.ClipboardWriter
	Notifier  deliver.Notifier
}

// New selects the implementation for the current operating system.
func New(logger *slog.Logger) (Capabilities, error) {
	switch runtime.GOOS {
	case "windows":
		p := &windowsPlatform{logger: logger}
		return Capabilities{
			Clipboard: p, Inspector: p, Inserter: p,
			Tables: p, Launcher: p, Files: p, Notifier: p,
		}, nil
	case "darwin":
		p := &darwinPlatform{logger: logger}
		return Capabilities{
			Clipboard: p, Inspector: p, Inserter: p,
			Tables: p, Launcher: p, Files: p, Notifier: p,
		}, nil
	default:
		return Capabilities{}, fmt.Errorf("unsupported platform %q", runtime.GOOS)
	}
}

// runCommand executes name with args under a bounded context and returns
// trimmed stdout.
func runCommand(parent context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

// tsv flattens table cells into tab-separated text for paste paths that
// cannot carry formatting.
func tsv(rows [][]types.Cell) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteString("\t")
			}
			text := strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(cell.Text)
			b.WriteString(text)
		}
	}
	return b.String()
}
