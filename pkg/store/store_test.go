package store_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"testing"

	"github.com/grexie/oversample/pkg/dataset"
	"github.com/grexie/oversample/pkg/oversample"
	"github.com/grexie/oversample/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var s *store.Store

func TestMain(m *testing.M) {
	path := fmt.Sprintf("%s/oversample-runs.db-test", os.TempDir())
	if err := os.RemoveAll(path); err != nil {
		log.Fatalf("failed to remove %s", path)
	} else if st, err := store.Open(path); err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	} else {
		s = st
	}
	code := m.Run()
	s.Close()
	os.RemoveAll(path)
	os.Exit(code)
}

func fit(t *testing.T, rows []dataset.Row, targets []string, cfg oversample.Config) oversample.Trace {
	t.Helper()
	e, err := oversample.New(cfg, oversample.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	res, err := e.Fit(context.Background(), rows, targets)
	require.NoError(t, err)
	return res.Trace
}

func TestSaveLoad(t *testing.T) {
	targets := []string{"a", "b"}
	rows := []dataset.Row{
		{Index: 0, Fields: map[string]any{"a": 1, "b": 0}},
		{Index: 1, Fields: map[string]any{"a": 1, "b": 0}},
		{Index: 2, Fields: map[string]any{"a": 1, "b": 0}},
		{Index: 3, Fields: map[string]any{"a": 0, "b": 1}},
	}
	tr := fit(t, rows, targets, oversample.Config{MaxIterations: 10, MaxTries: 50, Seed: 2})

	require.NoError(t, s.Save(tr))

	got, err := s.Load(tr.RunID)
	require.NoError(t, err)
	assert.Equal(t, tr.RunID, got.RunID)
	assert.Equal(t, tr.State, got.State)
	assert.Equal(t, tr.Indices, got.Indices)
	assert.Equal(t, tr.Scores(), got.Scores())
	assert.Equal(t, tr.Rejects(), got.Rejects())
	assert.Equal(t, tr.Draws(), got.Draws())
	assert.True(t, got.Stalled())

	runs, err := s.Runs()
	require.NoError(t, err)
	assert.Contains(t, runs, tr.RunID)

	require.NoError(t, s.Delete(tr.RunID))
	_, err = s.Load(tr.RunID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveLoad_UndefinedScores(t *testing.T) {
	rows := []dataset.Row{
		{Index: 0, Fields: map[string]any{"a": 1}},
		{Index: 1, Fields: map[string]any{"a": 0}},
	}
	tr := fit(t, rows, []string{"a"}, oversample.Config{MaxIterations: 3, MaxTries: 4})
	require.NoError(t, s.Save(tr))

	got, err := s.Load(tr.RunID)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got.Initial))
	require.Len(t, got.History, 1)
	require.Len(t, got.History[0].Rejected, 4)
	assert.True(t, math.IsNaN(got.History[0].Rejected[0].Score))
}

func TestLoad_Missing(t *testing.T) {
	_, err := s.Load("does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSave_NoRunID(t *testing.T) {
	assert.Error(t, s.Save(oversample.Trace{}))
}
