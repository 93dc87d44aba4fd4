package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/grexie/oversample/pkg/oversample"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Write renders every view of a finished run.
func Write(w io.Writer, tr oversample.Trace) {
	WriteSummary(w, tr)
	WriteLabels(w, tr)
	WriteScores(w, tr)
	WriteTries(w, tr)
	WriteDraws(w, tr)
}

func WriteSummary(w io.Writer, tr oversample.Trace) {
	outcome := "completed all iterations"
	switch {
	case tr.Cancelled:
		outcome = "cancelled"
	case tr.Stalled():
		outcome = fmt.Sprintf("no improvement after %d tries in iter %d", tr.MaxTries, len(tr.History)-1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Oversampling Run")
	t.AppendRows([]table.Row{
		{"Run", tr.RunID},
		{"State", tr.State.String()},
		{"Outcome", outcome},
		{"Seed", fmt.Sprintf("%d", tr.Seed)},
		{"Max Iterations", fmt.Sprintf("%d", tr.MaxIterations)},
		{"Max Tries", fmt.Sprintf("%d", tr.MaxTries)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Accepted Rows", fmt.Sprintf("%d", tr.Accepted())},
		{"Rows", fmt.Sprintf("%d -> %d", len(tr.Indices)-tr.Accepted(), len(tr.Indices))},
		{"Std", fmt.Sprintf("%0.3f -> %0.3f", tr.Initial, tr.Final)},
	})
	t.Render()
}

// WriteLabels shows the positive count of every label before and after.
func WriteLabels(w io.Writer, tr oversample.Trace) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Label Distribution")
	t.AppendHeader(table.Row{"LABEL", "BEFORE", "AFTER", "ADDED"})
	for i, name := range tr.Targets {
		before, after := countAt(tr.Before, i), countAt(tr.After, i)
		t.AppendRow(table.Row{name, fmt.Sprintf("%0.0f", before), fmt.Sprintf("%0.0f", after), fmt.Sprintf("%+0.0f", after-before)})
	}
	t.AppendFooter(table.Row{"STD", fmt.Sprintf("%0.3f", tr.Initial), fmt.Sprintf("%0.3f", tr.Final), ""})
	t.Render()
}

func countAt(counts []float64, i int) float64 {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}

// WriteScores lists the accepted score of every accepted iteration.
func WriteScores(w io.Writer, tr oversample.Trace) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Accepted Scores")
	t.AppendHeader(table.Row{"ITER", "STD", "NEW", "TRIES", "ROW"})
	for _, rec := range tr.History {
		if rec.Accepted == nil {
			continue
		}
		t.AppendRow(table.Row{
			rec.Iteration,
			fmt.Sprintf("%0.3f", rec.Before),
			fmt.Sprintf("%0.3f", rec.Accepted.Score),
			rec.Accepted.Try + 1,
			rec.Accepted.Index,
		})
	}
	t.Render()
}

// WriteTries summarises the rejected trials of every iteration.
func WriteTries(w io.Writer, tr oversample.Trace) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Rejected Tries")
	t.AppendHeader(table.Row{"ITER", "REJECTED", "MIN", "MEAN", "MAX"})
	total := 0
	for _, rec := range tr.History {
		scores := make([]float64, len(rec.Rejected))
		for i, trial := range rec.Rejected {
			scores[i] = trial.Score
		}
		total += len(scores)
		if len(scores) == 0 {
			t.AppendRow(table.Row{rec.Iteration, 0, "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			rec.Iteration,
			len(scores),
			fmt.Sprintf("%0.3f", floats.Min(scores)),
			fmt.Sprintf("%0.3f", stat.Mean(scores, nil)),
			fmt.Sprintf("%0.3f", floats.Max(scores)),
		})
	}
	t.AppendFooter(table.Row{"TOTAL", total, "", "", ""})
	t.Render()
}

// WriteDraws is a histogram of how often every original row occurs in the
// augmented dataset.
func WriteDraws(w io.Writer, tr oversample.Trace) {
	draws := tr.Draws()
	indices := make([]int, 0, len(draws))
	for idx := range draws {
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Draws Per Index")
	t.AppendHeader(table.Row{"INDEX", "COUNT", ""})
	for _, idx := range indices {
		t.AppendRow(table.Row{idx, draws[idx], strings.Repeat("#", draws[idx])})
	}
	t.Render()
}
