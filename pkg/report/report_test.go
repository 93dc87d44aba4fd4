package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/grexie/oversample/pkg/oversample"
	"github.com/grexie/oversample/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trace() oversample.Trace {
	return oversample.Trace{
		RunID:         "run-1",
		Targets:       []string{"a", "b"},
		Seed:          1,
		MaxIterations: 10,
		MaxTries:      3,
		State:         oversample.Exhausted,
		Initial:       1.414,
		Final:         0,
		Before:        []float64{3, 1},
		After:         []float64{3, 3},
		History: []oversample.IterationRecord{
			{Iteration: 0, Before: 1.414, Accepted: &oversample.TrialResult{Index: 3, Try: 1, Score: 0.707}, Rejected: []oversample.TrialResult{{Index: 0, Try: 0, Score: 2.121}}},
			{Iteration: 1, Before: 0.707, Accepted: &oversample.TrialResult{Index: 3, Try: 0, Score: 0}, Rejected: []oversample.TrialResult{}},
			{Iteration: 2, Before: 0, Rejected: []oversample.TrialResult{{Index: 1, Score: 0.707}, {Index: 3, Score: 0.707}, {Index: 2, Score: 0.707}}},
		},
		Indices: []int{0, 1, 2, 3, 3, 3},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	report.Write(&buf, trace())
	out := buf.String()

	for _, want := range []string{
		"Oversampling Run",
		"no improvement after 3 tries in iter 2",
		"Label Distribution",
		"Accepted Scores",
		"Rejected Tries",
		"Draws Per Index",
		"4 -> 6",
		"1.414 -> 0.000",
	} {
		assert.Contains(t, out, want)
	}
}

func TestWriteLabels(t *testing.T) {
	var buf bytes.Buffer
	report.WriteLabels(&buf, trace())
	out := buf.String()
	assert.Contains(t, out, "+2")
	assert.Contains(t, out, "+0")
}

func TestWriteDraws(t *testing.T) {
	var buf bytes.Buffer
	report.WriteDraws(&buf, trace())
	assert.Contains(t, buf.String(), "###")
	assert.Equal(t, 1, strings.Count(buf.String(), "###"))
}

func TestWriteTries(t *testing.T) {
	var buf bytes.Buffer
	report.WriteTries(&buf, trace())
	out := buf.String()
	assert.Contains(t, out, "2.121")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "4")
}

func TestWriteSummary_Completed(t *testing.T) {
	tr := trace()
	tr.State = oversample.Done
	var buf bytes.Buffer
	report.WriteSummary(&buf, tr)
	assert.Contains(t, buf.String(), "completed all iterations")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, report.WriteCSV(w, trace()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Iteration", records[0][1])
	assert.Equal(t, []string{"run-1", "0", "1.414000", "true", "0.707000", "3", "2", "1", "2.121000", ""}, records[1])
	assert.Equal(t, "false", records[3][3])
	assert.Equal(t, "3", records[3][7])
	assert.Equal(t, "0.000000", records[3][9])
}
