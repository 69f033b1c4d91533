// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes docmirror's console progress lines and summaries.
// Lines are styled with lipgloss when the writer is a terminal and plain
// otherwise, so piped output stays grep-friendly.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/docmirror/pkg/types"
)

// Printer handles formatted output to a writer.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Accent  lipgloss.Style
}

// NewPrinter creates a new Printer. If color is false every style renders
// its input unchanged.
func NewPrinter(writer io.Writer, color bool) *Printer {
	styles := &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),           // Green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // Yellow
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")), // Cyan
	}

	if !color {
		plain := lipgloss.NewStyle()
		styles.Error = plain
		styles.Success = plain
		styles.Warning = plain
		styles.Bold = plain
		styles.Dim = plain
		styles.Accent = plain
	}

	return &Printer{w: writer, errW: writer, styles: styles}
}

// WithStderr sets a separate writer for failures, errors, and warnings.
// Returns the printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// Visit announces an entry reached by the tree walk.
func (p *Printer) Visit(path string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Dim.Render("At"), path))
}

// Processing announces a Markdown file selected for conversion.
func (p *Printer) Processing(src string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Bold.Render("Processing:"), src))
}

// CreatingDir announces a destination directory that did not exist yet.
func (p *Printer) CreatingDir(dir string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Accent.Render("Creating target folder:"), dir))
}

// Converting announces the destination of a converter invocation.
func (p *Printer) Converting(dst string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Accent.Render("Converting file to:"), dst))
}

// Failed reports a conversion that did not succeed.
func (p *Printer) Failed(src string, err error) {
	mustWrite(fmt.Fprintf(p.errW, "%s %s (%v)\n", p.styles.Error.Render("failed:"), src, err))
}

// Summary prints the end-of-run counts followed by one line per failure.
func (p *Printer) Summary(run *types.Run) {
	line := fmt.Sprintf("Summary: %d converted, %d failed (total: %d)",
		run.Converted, run.Failed, run.Total())
	style := p.styles.Success
	if run.HasFailures() {
		style = p.styles.Warning
	}
	mustWrite(fmt.Fprintf(p.w, "\n%s\n", style.Render(line)))
	for _, c := range run.Failures() {
		mustWrite(fmt.Fprintf(p.w, "  %s %s: %s\n", p.styles.Error.Render("x"), c.Source, c.Error))
	}
}

// Error writes a styled error message to the error writer.
func (p *Printer) Error(err error) {
	msg := err.Error()
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		msg = exitErr.Message
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), msg))
}

// Warn writes a styled warning to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// Table renders rows under bold headers with space-padded columns.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = p.styles.Bold.Render(padRight(h, widths[i]))
	}
	mustWrite(fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " ")))

	for _, row := range rows {
		cells = cells[:0]
		for i, cell := range row {
			if i < len(widths) {
				cell = padRight(cell, widths[i])
			}
			cells = append(cells, cell)
		}
		mustWrite(fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " ")))
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// mustWrite panics if a write operation fails.
// Use this to wrap writes to stdout/stderr or buffers, which should never fail.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
