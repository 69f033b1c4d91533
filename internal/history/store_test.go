// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmirror/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(started time.Time) *types.Run {
	run := &types.Run{
		StartedAt:   started,
		FinishedAt:  started.Add(2 * time.Second),
		Source:      "root",
		Dest:        "out",
		Converter:   "pandoc",
		CreatedDirs: []string{"out", "out/sub"},
	}
	run.Add(types.Conversion{
		Source: "root/a.md", Dest: "out/a.html",
		Status: types.ConversionDone, Duration: 120 * time.Millisecond,
	})
	run.Add(types.Conversion{
		Source: "root/sub/b.md", Dest: "out/sub/b.html",
		Status: types.ConversionFailed, Error: "pandoc exited with status 64",
		Duration: 80 * time.Millisecond,
	})
	return run
}

func TestRecordAndLoadRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := sampleRun(started)

	id, err := s.RecordRun(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)

	got, err := s.Run(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, started, got.StartedAt)
	assert.Equal(t, started.Add(2*time.Second), got.FinishedAt)
	assert.Equal(t, "root", got.Source)
	assert.Equal(t, "out", got.Dest)
	assert.Equal(t, 1, got.Converted)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Conversions, 2)
	assert.Equal(t, run.Conversions, got.Conversions)
}

func TestRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := s.RecordRun(ctx, sampleRun(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}

	runs, err := s.Runs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Equal(t, base.Add(2*time.Hour), runs[0].StartedAt)
	assert.Empty(t, runs[0].Conversions)
}

func TestRunsDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	runs, err := s.Runs(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Run(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRecordAbortedRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := &types.Run{
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Source:     "root",
		Dest:       "out",
		Converter:  "pandoc",
		Error:      "listing root/locked: permission denied",
	}

	id, err := s.RecordRun(ctx, run)
	require.NoError(t, err)

	got, err := s.Run(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, run.Error, got.Error)
	assert.Empty(t, got.Conversions)
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.RecordRun(ctx, sampleRun(time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Runs(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
