// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree creates files (and their parent directories) under a temp root.
// Paths ending in "/" create empty directories.
func buildTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
	return root
}

// collect walks root and returns visited paths relative to root.
func collect(t *testing.T, root string) []string {
	t.Helper()
	var got []string
	err := Walk(root, func(path string, d fs.DirEntry) error {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestWalkDepthFirstOrder(t *testing.T) {
	root := buildTree(t,
		"a.md",
		"b/c.md",
		"b/d/e.md",
		"b/f.txt",
		"g.md",
	)

	got := collect(t, root)

	assert.Equal(t, []string{
		"a.md",
		"b",
		"b/c.md",
		"b/d",
		"b/d/e.md",
		"b/f.txt",
		"g.md",
	}, got)
}

func TestWalkEmptyRoot(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, collect(t, root))
}

func TestWalkReportsEmptyDirectories(t *testing.T) {
	root := buildTree(t, "empty/")
	assert.Equal(t, []string{"empty"}, collect(t, root))
}

func TestWalkMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	err := Walk(missing, func(string, fs.DirEntry) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "listing")
}

func TestWalkUnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := buildTree(t, "locked/a.md")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	err := Walk(root, func(string, fs.DirEntry) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestWalkCallbackErrorStopsWalk(t *testing.T) {
	root := buildTree(t, "a.md", "b.md", "c.md")
	boom := errors.New("boom")

	var visited int
	err := Walk(root, func(path string, d fs.DirEntry) error {
		visited++
		if filepath.Base(path) == "b.md" {
			return boom
		}
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, visited)
}

func TestWalkSkipDir(t *testing.T) {
	root := buildTree(t, "keep/a.md", "skip/b.md", "z.md")

	var got []string
	err := Walk(root, func(path string, d fs.DirEntry) error {
		rel, _ := filepath.Rel(root, path)
		got = append(got, filepath.ToSlash(rel))
		if d.IsDir() && d.Name() == "skip" {
			return SkipDir
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "keep/a.md", "skip", "z.md"}, got)
}

func TestWalkDeepTree(t *testing.T) {
	parts := make([]string, 200)
	for i := range parts {
		parts[i] = "d"
	}
	deep := filepath.Join(parts...)
	root := buildTree(t, filepath.ToSlash(filepath.Join(deep, "leaf.md")))

	var leaves int
	err := Walk(root, func(path string, d fs.DirEntry) error {
		if HasExt(path, ".md") {
			leaves++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, leaves)
}

func TestHasExt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"notes/a.md", true},
		{"a.MD", false},
		{"a.markdown", false},
		{"a.md.txt", false},
		{"md", false},
		{"dir.md/readme", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExt(tt.path, ".md"))
		})
	}
}
