// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mirror converts every Markdown file under a source root into a
// standalone HTML file at the same relative location under a destination
// root, creating destination directories as files are found.
package mirror

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/docmirror/internal/walk"
	"github.com/pdiddy/docmirror/pkg/types"
)

const (
	// SourceExt selects candidate files.
	SourceExt = ".md"
	// TargetExt replaces SourceExt on destination files.
	TargetExt = ".html"
)

// Converter transforms one source document into a destination document.
// pandoc.Converter is the production implementation.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// Observer receives console announcements as the run progresses.
// output.Printer is the production implementation.
type Observer interface {
	Visit(path string)
	Processing(src string)
	CreatingDir(dir string)
	Converting(dst string)
	Failed(src string, err error)
	Summary(run *types.Run)
}

// Mirror walks a source tree and converts candidates one at a time.
type Mirror struct {
	source    string
	dest      string
	converter string
	conv      Converter
	obs       Observer
	now       func() time.Time
}

// New creates a Mirror for cfg's source and destination roots. A nil
// observer discards announcements.
func New(cfg types.Config, conv Converter, obs Observer) *Mirror {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Mirror{
		source:    cfg.Source,
		dest:      cfg.Dest,
		converter: cfg.Converter,
		conv:      conv,
		obs:       obs,
		now:       time.Now,
	}
}

// DestDir returns the destination directory that mirrors file's parent
// directory relative to the source root.
func (m *Mirror) DestDir(file string) (string, error) {
	rel, err := filepath.Rel(m.source, filepath.Dir(file))
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", file, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside source root %s", file, m.source)
	}
	return filepath.Join(m.dest, rel), nil
}

// DestFile returns the HTML path for the Markdown file: its mirrored
// directory joined with the file's stem and TargetExt.
func (m *Mirror) DestFile(file string) (string, error) {
	dir, err := m.DestDir(file)
	if err != nil {
		return "", err
	}
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+TargetExt), nil
}

// EnsureDir creates dir and any missing parents. It reports whether dir was
// created; an existing directory is not an error.
func (m *Mirror) EnsureDir(dir string) (bool, error) {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return false, nil
	}
	m.obs.CreatingDir(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("creating %s: %w", dir, err)
	}
	return true, nil
}

// Process converts one Markdown file. The returned error is non-nil only
// when the destination directory could not be created; a converter failure
// is reported through the Conversion's status instead.
func (m *Mirror) Process(ctx context.Context, file string) (types.Conversion, error) {
	c, _, err := m.process(ctx, file)
	return c, err
}

func (m *Mirror) process(ctx context.Context, file string) (c types.Conversion, created string, err error) {
	m.obs.Processing(file)

	dst, err := m.DestFile(file)
	if err != nil {
		return types.Conversion{}, "", err
	}
	dir := filepath.Dir(dst)
	made, err := m.EnsureDir(dir)
	if err != nil {
		return types.Conversion{}, "", err
	}
	if made {
		created = dir
	}

	m.obs.Converting(dst)
	c = types.Conversion{Source: file, Dest: dst, Status: types.ConversionDone}
	start := m.now()
	convErr := m.conv.Convert(ctx, file, dst)
	c.Duration = m.now().Sub(start)
	if convErr != nil {
		c.Status = types.ConversionFailed
		c.Error = convErr.Error()
		m.obs.Failed(file, convErr)
	}
	return c, created, nil
}

// Run walks the source root depth-first, announcing every entry and
// converting every file with SourceExt. Converter failures are collected in
// the returned Run. A directory that cannot be listed or created aborts the
// run; the partial Run is returned alongside the error. Cancelling ctx
// stops the run before the next entry.
func (m *Mirror) Run(ctx context.Context) (*types.Run, error) {
	run := &types.Run{
		StartedAt: m.now().UTC(),
		Source:    m.source,
		Dest:      m.dest,
		Converter: m.converter,
	}

	err := walk.Walk(m.source, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.obs.Visit(path)
		if d.IsDir() || !walk.HasExt(path, SourceExt) {
			return nil
		}

		c, created, err := m.process(ctx, path)
		if err != nil {
			return err
		}
		if created != "" {
			run.CreatedDirs = append(run.CreatedDirs, created)
		}
		run.Add(c)
		return nil
	})

	run.FinishedAt = m.now().UTC()
	if err != nil {
		run.Error = err.Error()
		return run, err
	}

	m.obs.Summary(run)
	return run, nil
}

type nopObserver struct{}

func (nopObserver) Visit(string)         {}
func (nopObserver) Processing(string)    {}
func (nopObserver) CreatingDir(string)   {}
func (nopObserver) Converting(string)    {}
func (nopObserver) Failed(string, error) {}
func (nopObserver) Summary(*types.Run)   {}
