// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk traverses a directory tree depth-first without recursion.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SkipDir, returned by a VisitFunc for a directory, skips that directory's
// contents. Returned for a file it is ignored.
var SkipDir = fs.SkipDir

// VisitFunc is called once for every entry below the walk root. path is the
// root joined with the entry's relative path.
type VisitFunc func(path string, d fs.DirEntry) error

// Walk visits every entry under root in depth-first preorder, siblings in
// lexical order. The root itself is not passed to fn. A directory's contents
// are fully visited before the walk moves on to the directory's next sibling.
//
// A directory that cannot be listed aborts the walk. Errors returned by fn,
// other than SkipDir, abort the walk and are returned unchanged.
// Symbolic links are reported as non-directories and never followed.
func Walk(root string, fn VisitFunc) error {
	top, err := list(root)
	if err != nil {
		return err
	}
	stack := []*frame{top}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next == len(f.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := f.entries[f.next]
		f.next++

		path := filepath.Join(f.dir, entry.Name())
		if err := fn(path, entry); err != nil {
			if errors.Is(err, SkipDir) {
				continue
			}
			return err
		}
		if !entry.IsDir() {
			continue
		}
		child, err := list(path)
		if err != nil {
			return err
		}
		stack = append(stack, child)
	}
	return nil
}

// frame is one directory being consumed on the walk stack.
type frame struct {
	dir     string
	entries []fs.DirEntry
	next    int
}

func list(dir string) (*frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	return &frame{dir: dir, entries: entries}, nil
}

// HasExt reports whether path ends in exactly ext (for example ".md").
// The comparison is case-sensitive.
func HasExt(path, ext string) bool {
	return filepath.Ext(path) == ext
}
