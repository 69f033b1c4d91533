// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pandoc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns a configured response.
type mockExecutor struct {
	calls   [][]string
	runFunc func(name string, args []string, stdout, stderr io.Writer) error
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	m.calls = append(m.calls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestArgs(t *testing.T) {
	c := New("/usr/local/bin/pandoc", nil, nil)
	got := c.Args("src/a.md", "out/a.html")
	assert.Equal(t, []string{
		"src/a.md",
		"--from", "markdown",
		"--to", "html",
		"--standalone",
		"--output", "out/a.html",
	}, got)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name    string
		runFunc func(string, []string, io.Writer, io.Writer) error
		wantErr string
	}{
		{
			name: "success",
		},
		{
			name: "binary missing",
			runFunc: func(string, []string, io.Writer, io.Writer) error {
				return exec.ErrNotFound
			},
			wantErr: "running pandoc on in.md",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockExecutor{runFunc: tt.runFunc}
			c := newConverter("pandoc", nil, nil, m)

			err := c.Convert(context.Background(), "in.md", "out.html")

			require.Len(t, m.calls, 1)
			assert.Equal(t, "pandoc", m.calls[0][0])
			assert.Equal(t, c.Args("in.md", "out.html"), m.calls[0][1:])
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConvertStreamsToolOutput(t *testing.T) {
	m := &mockExecutor{
		runFunc: func(_ string, _ []string, stdout, stderr io.Writer) error {
			_, _ = io.WriteString(stdout, "out text")
			_, _ = io.WriteString(stderr, "[WARNING] missing title")
			return nil
		},
	}
	var stdout, stderr bytes.Buffer
	c := newConverter("pandoc", &stdout, &stderr, m)

	require.NoError(t, c.Convert(context.Background(), "a.md", "a.html"))
	assert.Equal(t, "out text", stdout.String())
	assert.Equal(t, "[WARNING] missing title", stderr.String())
}

// writeScript installs a shell script standing in for pandoc.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), "fake-pandoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestConvertRealProcess(t *testing.T) {
	// Copies the input (argument 1) to the path following --output ($8).
	bin := writeScript(t, `cp "$1" "$8"`+"\n")
	dir := t.TempDir()
	src := filepath.Join(dir, "a.md")
	dst := filepath.Join(dir, "a.html")
	require.NoError(t, os.WriteFile(src, []byte("# Title"), 0o644))

	c := New(bin, nil, nil)
	require.NoError(t, c.Convert(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "# Title", string(data))
}

func TestConvertNonZeroExit(t *testing.T) {
	bin := writeScript(t, "echo 'pandoc: unknown reader' >&2\nexit 21\n")
	var stderr bytes.Buffer
	c := New(bin, nil, &stderr)

	err := c.Convert(context.Background(), "a.md", "a.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with status 21")

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.True(t, strings.Contains(stderr.String(), "unknown reader"))
}

func TestConvertMissingBinary(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-pandoc")
	c := New(missing, nil, nil)

	err := c.Convert(context.Background(), "a.md", "a.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running "+missing)
}
