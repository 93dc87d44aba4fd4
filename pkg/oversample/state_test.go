package oversample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		ev   event
		want State
	}{
		{eventAccepted, Iterating},
		{eventBudgetSpent, Done},
		{eventStalled, Exhausted},
		{eventCancelled, Exhausted},
	}
	for _, c := range cases {
		got, err := transition(Iterating, c.ev)
		require.NoError(t, err, c.ev.String())
		assert.Equal(t, c.want, got, c.ev.String())
	}

	for _, terminal := range []State{Exhausted, Done} {
		assert.True(t, terminal.IsTerminal())
		_, err := transition(terminal, eventAccepted)
		assert.Error(t, err)
	}
}

func TestState_Text(t *testing.T) {
	for _, s := range []State{Iterating, Exhausted, Done} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var got State
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}
	var s State
	assert.Error(t, s.UnmarshalText([]byte("PAUSED")))
}

func TestWorkingSet_Incremental(t *testing.T) {
	rows := []datasetRow{{1, 0, 1}, {0, 1, 1}, {1, 1, 0}}
	ds := newTestDataset(t, rows)

	ws := NewWorkingSet(ds)
	assert.Equal(t, 3, ws.Len())
	assert.Equal(t, []float64{2, 2, 2}, ws.Counts())

	before := ws.Counts()
	score := ws.ScoreWith(0)
	assert.Equal(t, before, ws.Counts())
	assert.Equal(t, Dispersion([]float64{3, 2, 3}), score)

	ws.Append(0)
	ws.Append(0)
	assert.Equal(t, []float64{4, 2, 4}, ws.Counts())
	assert.Equal(t, ds.CountsOf(ws.Positions()), ws.Counts())
	assert.Equal(t, []int{0, 1, 2, 0, 0}, ws.Indices())
	assert.Len(t, ws.Rows(), 5)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Begin(0, 2)
	r.Reject(TrialResult{Index: 4, Try: 0, Score: 3})
	r.Accept(TrialResult{Index: 1, Try: 1, Score: 1})
	r.Begin(1, 1)
	r.Reject(TrialResult{Index: 4, Try: 0, Score: 2})
	r.Abandon()

	assert.Equal(t, []float64{1}, r.Scores())
	assert.Equal(t, [][]TrialResult{
		{{Index: 4, Try: 0, Score: 3}},
		{{Index: 4, Try: 0, Score: 2}},
	}, r.Rejects())
	assert.Len(t, r.History(), 2)

	r.Reset()
	assert.Empty(t, r.History())
}
