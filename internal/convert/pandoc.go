// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pdiddy/pastemd/pkg/types"
)

// InputFormat selects the converter's reader. The math extensions keep
// dollar- and backslash-delimited LaTeX intact through the conversion.
type InputFormat string

const (
	FormatMarkdown InputFormat = "markdown+tex_math_dollars+raw_tex+tex_math_double_backslash+tex_math_single_backslash"
	FormatHTML     InputFormat = "html+tex_math_dollars+raw_tex+tex_math_double_backslash+tex_math_single_backslash"
)

// executor abstracts subprocess execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stderr = stderr
	// Filters spawn children; cancellation must take down the whole
	// process tree, not just the converter.
	killProcessTree(cmd)
	cmd.WaitDelay = 3 * time.Second
	return cmd.Run()
}

// Runner drives the external document converter (pandoc-compatible CLI
// contract: content on stdin, output file via -o, repeated filter and
// request-header flags, --reference-doc for style templates).
type Runner struct {
	exec   executor
	logger *slog.Logger
}

// NewRunner creates a converter runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{exec: osExecutor{}, logger: logger}
}

// ConvertDocument feeds content to the external converter and returns the
// path of the produced document artifact. The invocation is bounded by
// opts.ConvertTimeout; on expiry the subprocess tree is killed and the run
// fails with ReasonConverterTimeout.
func (r *Runner) ConvertDocument(ctx context.Context, content string, from InputFormat, opts types.Options) (string, error) {
	bin, err := r.exec.LookPath(opts.ConverterPath)
	if err != nil {
		return "", types.Failure(types.ReasonConverterMissing,
			fmt.Sprintf("converter %s not found or not executable", opts.ConverterPath), err)
	}

	filterArgs, err := buildFilterArgs(opts.Filters)
	if err != nil {
		return "", err
	}

	outPath, err := tempArtifactPath(opts.TempDir)
	if err != nil {
		return "", types.Failure(types.ReasonConverterError, "temp artifact", err)
	}

	args := []string{
		"-f", string(from),
		"-t", "docx",
		"-o", outPath,
		"--highlight-style", "tango",
	}
	args = append(args, filterArgs...)
	if opts.ReferenceDoc != "" {
		args = append(args, "--reference-doc", opts.ReferenceDoc)
	}
	for _, h := range opts.RequestHeaders {
		if h = strings.TrimSpace(h); h != "" {
			args = append(args, "--request-header", h)
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.ConvertTimeout)
	defer cancel()

	var stderr bytes.Buffer
	runErr := r.exec.RunPiped(runCtx, bin, args, strings.NewReader(content), &stderr)
	if runErr != nil {
		os.Remove(outPath)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", types.Failure(types.ReasonConverterTimeout,
				fmt.Sprintf("converter exceeded %v", opts.ConvertTimeout), runErr)
		}
		diag := truncateDiag(stderr.String())
		if diag == "" {
			diag = runErr.Error()
		}
		return "", types.Failure(types.ReasonConverterError, diag, runErr)
	}

	if info, statErr := os.Stat(outPath); statErr != nil || info.Size() == 0 {
		os.Remove(outPath)
		return "", types.Failuref(types.ReasonConverterError, "converter produced no output")
	}

	// Converter warnings (missing images, unresolved references) are
	// pass-through diagnostics, never parsed.
	if msg := truncateDiag(stderr.String()); msg != "" && r.logger != nil {
		r.logger.Warn("converter stderr", "message", msg)
	}
	return outPath, nil
}

// buildFilterArgs expands the configured filter paths into repeated flag
// pairs, preserving list order. A missing filter file aborts the whole
// conversion; filters are not best-effort.
func buildFilterArgs(filters []string) ([]string, error) {
	var args []string
	for _, f := range filters {
		path := f
		if !filepath.IsAbs(path) {
			abs, err := filepath.Abs(path)
			if err == nil {
				path = abs
			}
		}
		if _, err := os.Stat(path); err != nil {
			return nil, types.Failure(types.ReasonFilterMissing,
				fmt.Sprintf("filter %s", f), err)
		}
		if strings.EqualFold(filepath.Ext(path), ".lua") {
			args = append(args, "--lua-filter", path)
		} else {
			args = append(args, "--filter", path)
		}
	}
	return args, nil
}

// tempArtifactPath builds a collision-resistant path for a transient
// document artifact. Rapid trigger cycles must never reuse a name even
// though only one run is ever active.
func tempArtifactPath(tempDir string) (string, error) {
	dir := tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating temp dir %s: %w", dir, err)
	}
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return filepath.Join(dir, "pastemd-"+id.String()+".docx"), nil
}

const maxDiagLen = 4000

func truncateDiag(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDiagLen {
		return s[:maxDiagLen] + "...(truncated)"
	}
	return s
}
