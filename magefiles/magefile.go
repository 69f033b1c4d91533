//go:build mage

// Package main contains Mage build targets for docmirror developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "docmirror"
	cmdPkg  = "./cmd/docmirror"
	demoDir = "tmp/demo"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// demoFiles seeds the demo source tree. Paths ending in "/" are empty folders.
var demoFiles = []string{
	"index.md",
	"guides/install.md",
	"guides/usage.md",
	"guides/deep/nested/tips.md",
	"assets/logo.txt",
	"drafts/",
}

// Demo builds the binary, seeds a sample Markdown tree under tmp/demo/notes,
// and mirrors it into tmp/demo/site. Requires pandoc on PATH.
func Demo() error {
	mg.Deps(Build)

	src := filepath.Join(demoDir, "notes")
	dst := filepath.Join(demoDir, "site")
	if err := os.RemoveAll(demoDir); err != nil {
		return fmt.Errorf("clearing %s: %w", demoDir, err)
	}
	for _, f := range demoFiles {
		full := filepath.Join(src, filepath.FromSlash(f))
		if strings.HasSuffix(f, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return err
		}
		body := fmt.Sprintf("# %s\n\nSample page.\n", strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)))
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", full, err)
		}
	}

	return sh.RunV(filepath.Join(binDir, binName), "convert", src, dst,
		"--history-db", filepath.Join(demoDir, "history.db"),
		"--report", filepath.Join(demoDir, "report.yaml"))
}

// Stats prints non-blank Go line counts for production and test code.
func Stats() error {
	prodLines, testLines := 0, 0
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || d.Name() == "tmp" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := countLines(data)
		if strings.HasSuffix(path, "_test.go") {
			testLines += n
		} else {
			prodLines += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countLines counts lines in data that are not blank.
func countLines(data []byte) int {
	n := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	return n
}
