package oversample

import "github.com/grexie/oversample/pkg/dataset"

// Trace is everything a run leaves behind for reporting.
type Trace struct {
	RunID         string            `json:"runId" bson:"run_id"`
	Targets       []string          `json:"targets" bson:"targets"`
	Seed          uint64            `json:"seed" bson:"seed"`
	MaxIterations int               `json:"maxIterations" bson:"max_iterations"`
	MaxTries      int               `json:"maxTries" bson:"max_tries"`
	State         State             `json:"state" bson:"state"`
	Cancelled     bool              `json:"cancelled" bson:"cancelled"`
	Initial       float64           `json:"initial" bson:"initial"`
	Final         float64           `json:"final" bson:"final"`
	Before        []float64         `json:"before" bson:"before"`
	After         []float64         `json:"after" bson:"after"`
	History       []IterationRecord `json:"history" bson:"history"`
	Indices       []int             `json:"indices" bson:"indices"`
}

// Scores returns the accepted score of every accepted iteration.
func (t Trace) Scores() []float64 { return scoresOf(t.History) }

// Rejects returns the rejected trials of every recorded iteration.
func (t Trace) Rejects() [][]TrialResult { return rejectsOf(t.History) }

func (t Trace) Accepted() int {
	n := 0
	for _, rec := range t.History {
		if rec.Accepted != nil {
			n++
		}
	}
	return n
}

// Stalled reports whether an iteration ran out of tries and ended the run.
func (t Trace) Stalled() bool {
	return t.State == Exhausted && !t.Cancelled
}

// Draws counts how often every original row identity occurs in the
// augmented dataset.
func (t Trace) Draws() map[int]int {
	out := make(map[int]int)
	for _, idx := range t.Indices {
		out[idx]++
	}
	return out
}

type Result struct {
	Rows  []dataset.Row
	Trace Trace
}
