// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pastemd/pkg/types"
)

// fakeExec scripts the converter subprocess for tests.
type fakeExec struct {
	lookErr error
	run     func(ctx context.Context, name string, args []string, stdin io.Reader, stderr io.Writer) error

	gotName  string
	gotArgs  []string
	gotStdin string
}

func (f *fakeExec) LookPath(file string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExec) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stderr io.Writer) error {
	f.gotName = name
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotStdin = string(data)
	if f.run != nil {
		return f.run(ctx, name, args, stdin, stderr)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(t *testing.T) types.Options {
	t.Helper()
	opts := types.DefaultOptions()
	opts.TempDir = t.TempDir()
	opts.ConvertTimeout = 5 * time.Second
	return opts
}

// outPathOf extracts the -o argument the runner passed to the converter.
func outPathOf(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "-o" {
			require.Less(t, i+1, len(args))
			return args[i+1]
		}
	}
	t.Fatal("no -o argument")
	return ""
}

// writeOutput makes the fake produce a non-empty artifact like a real
// converter would.
func writeOutput() func(ctx context.Context, name string, args []string, stdin io.Reader, stderr io.Writer) error {
	return func(_ context.Context, _ string, args []string, _ io.Reader, _ io.Writer) error {
		for i, a := range args {
			if a == "-o" {
				return os.WriteFile(args[i+1], []byte("docx bytes"), 0o644)
			}
		}
		return errors.New("no -o argument")
	}
}

func TestConvertDocument_Success(t *testing.T) {
	fake := &fakeExec{run: writeOutput()}
	r := &Runner{exec: fake, logger: testLogger()}
	opts := testOptions(t)

	path, err := r.ConvertDocument(context.Background(), "# hi", FormatMarkdown, opts)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, "# hi", fake.gotStdin)
	assert.Equal(t, "/usr/bin/pandoc", fake.gotName)

	assert.Equal(t, "-f", fake.gotArgs[0])
	assert.Equal(t, string(FormatMarkdown), fake.gotArgs[1])
	assert.Equal(t, "-t", fake.gotArgs[2])
	assert.Equal(t, "docx", fake.gotArgs[3])
	assert.Equal(t, path, outPathOf(t, fake.gotArgs))
}

func TestConvertDocument_ConverterMissing(t *testing.T) {
	fake := &fakeExec{lookErr: errors.New("executable file not found")}
	r := &Runner{exec: fake, logger: testLogger()}

	_, err := r.ConvertDocument(context.Background(), "x", FormatMarkdown, testOptions(t))
	assert.Equal(t, types.ReasonConverterMissing, types.ReasonOf(err))
}

func TestConvertDocument_NonZeroExitWrapsStderr(t *testing.T) {
	fake := &fakeExec{run: func(_ context.Context, _ string, _ []string, _ io.Reader, stderr io.Writer) error {
		io.WriteString(stderr, "pandoc: unknown option --bogus")
		return errors.New("exit status 2")
	}}
	r := &Runner{exec: fake, logger: testLogger()}

	_, err := r.ConvertDocument(context.Background(), "x", FormatMarkdown, testOptions(t))
	require.Error(t, err)
	assert.Equal(t, types.ReasonConverterError, types.ReasonOf(err))
	assert.Contains(t, err.Error(), "unknown option --bogus")
}

func TestConvertDocument_Timeout(t *testing.T) {
	fake := &fakeExec{run: func(ctx context.Context, _ string, _ []string, _ io.Reader, _ io.Writer) error {
		<-ctx.Done()
		return ctx.Err()
	}}
	r := &Runner{exec: fake, logger: testLogger()}
	opts := testOptions(t)
	opts.ConvertTimeout = 10 * time.Millisecond

	_, err := r.ConvertDocument(context.Background(), "x", FormatMarkdown, opts)
	assert.Equal(t, types.ReasonConverterTimeout, types.ReasonOf(err))
}

func TestConvertDocument_EmptyOutputIsError(t *testing.T) {
	fake := &fakeExec{run: func(_ context.Context, _ string, args []string, _ io.Reader, _ io.Writer) error {
		return os.WriteFile(outPathArg(args), nil, 0o644)
	}}
	r := &Runner{exec: fake, logger: testLogger()}

	_, err := r.ConvertDocument(context.Background(), "x", FormatMarkdown, testOptions(t))
	assert.Equal(t, types.ReasonConverterError, types.ReasonOf(err))
}

func outPathArg(args []string) string {
	for i, a := range args {
		if a == "-o" {
			return args[i+1]
		}
	}
	return ""
}

func TestConvertDocument_MissingFilterAborts(t *testing.T) {
	fake := &fakeExec{run: writeOutput()}
	r := &Runner{exec: fake, logger: testLogger()}
	opts := testOptions(t)
	opts.Filters = []string{filepath.Join(t.TempDir(), "nope.lua")}

	_, err := r.ConvertDocument(context.Background(), "x", FormatMarkdown, opts)
	assert.Equal(t, types.ReasonFilterMissing, types.ReasonOf(err))
	assert.Empty(t, fake.gotName, "converter must not run when a filter is missing")
}

func TestConvertDocument_FilterFlagsInOrder(t *testing.T) {
	dir := t.TempDir()
	lua := filepath.Join(dir, "first.lua")
	py := filepath.Join(dir, "second.py")
	require.NoError(t, os.WriteFile(lua, []byte("-- filter"), 0o644))
	require.NoError(t, os.WriteFile(py, []byte("#!/usr/bin/env python"), 0o644))

	fake := &fakeExec{run: writeOutput()}
	r := &Runner{exec: fake, logger: testLogger()}
	opts := testOptions(t)
	opts.Filters = []string{lua, py}
	opts.ReferenceDoc = ""
	opts.RequestHeaders = []string{"Cookie: s=1"}

	_, err := r.ConvertDocument(context.Background(), "x", FormatMarkdown, opts)
	require.NoError(t, err)

	joined := fake.gotArgs
	luaIdx := indexOf(joined, "--lua-filter")
	pyIdx := indexOf(joined, "--filter")
	require.GreaterOrEqual(t, luaIdx, 0)
	require.GreaterOrEqual(t, pyIdx, 0)
	assert.Equal(t, lua, joined[luaIdx+1])
	assert.Equal(t, py, joined[pyIdx+1])
	assert.Less(t, luaIdx, pyIdx, "filters keep list order")

	hIdx := indexOf(joined, "--request-header")
	require.GreaterOrEqual(t, hIdx, 0)
	assert.Equal(t, "Cookie: s=1", joined[hIdx+1])
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}

func TestConvertDocument_ReferenceDocFlag(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "ref.docx")
	require.NoError(t, os.WriteFile(ref, []byte("template"), 0o644))

	fake := &fakeExec{run: writeOutput()}
	r := &Runner{exec: fake, logger: testLogger()}
	opts := testOptions(t)
	opts.ReferenceDoc = ref

	_, err := r.ConvertDocument(context.Background(), "x", FormatHTML, opts)
	require.NoError(t, err)

	idx := indexOf(fake.gotArgs, "--reference-doc")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, ref, fake.gotArgs[idx+1])
	assert.Equal(t, string(FormatHTML), fake.gotArgs[1])
}
