// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pandoc runs the pandoc binary to turn one Markdown file into a
// standalone HTML document.
package pandoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

const (
	// FromFormat is the pandoc reader used for every source file.
	FromFormat = "markdown"
	// ToFormat is the pandoc writer used for every destination file.
	ToFormat = "html"
)

// executor abstracts command execution for testing.
type executor interface {
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Converter invokes pandoc once per file. The tool's own output is streamed
// to the configured writers unchanged.
type Converter struct {
	bin    string
	stdout io.Writer
	stderr io.Writer
	exec   executor
}

// New creates a Converter for the pandoc binary at bin. bin may be a bare
// name resolved through PATH. Nil writers discard the tool's output.
func New(bin string, stdout, stderr io.Writer) *Converter {
	return newConverter(bin, stdout, stderr, &osExecutor{})
}

func newConverter(bin string, stdout, stderr io.Writer, e executor) *Converter {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Converter{bin: bin, stdout: stdout, stderr: stderr, exec: e}
}

// Bin returns the configured binary.
func (c *Converter) Bin() string { return c.bin }

// Args returns the argument list passed to pandoc for one conversion.
func (c *Converter) Args(src, dst string) []string {
	return []string{
		src,
		"--from", FromFormat,
		"--to", ToFormat,
		"--standalone",
		"--output", dst,
	}
}

// Convert runs pandoc on src, writing a standalone HTML document to dst.
// The parent directory of dst must exist. A missing binary or a non-zero
// exit status is returned as an error; no timeout is applied, but
// cancelling ctx kills the process.
func (c *Converter) Convert(ctx context.Context, src, dst string) error {
	err := c.exec.Run(ctx, c.bin, c.Args(src, dst), c.stdout, c.stderr)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with status %d converting %s: %w", c.bin, exitErr.ExitCode(), src, err)
	}
	return fmt.Errorf("running %s on %s: %w", c.bin, src, err)
}
