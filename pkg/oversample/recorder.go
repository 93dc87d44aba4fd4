package oversample

// TrialResult is one candidate tested against the working set.
type TrialResult struct {
	Index int     `json:"index" bson:"index"`
	Try   int     `json:"try" bson:"try"`
	Score float64 `json:"score" bson:"score"`
}

type IterationRecord struct {
	Iteration int           `json:"iteration" bson:"iteration"`
	Before    float64       `json:"before" bson:"before"`
	Accepted  *TrialResult  `json:"accepted,omitempty" bson:"accepted,omitempty"`
	Rejected  []TrialResult `json:"rejected" bson:"rejected"`
}

// Recorder accumulates one record per iteration in iteration order.
type Recorder struct {
	history []IterationRecord
	current *IterationRecord
}

func (r *Recorder) Begin(iteration int, before float64) {
	r.current = &IterationRecord{Iteration: iteration, Before: before, Rejected: []TrialResult{}}
}

func (r *Recorder) Reject(trial TrialResult) {
	r.current.Rejected = append(r.current.Rejected, trial)
}

func (r *Recorder) Accept(trial TrialResult) {
	r.current.Accepted = &trial
	r.finish()
}

// Abandon closes the current iteration without an accepted trial.
func (r *Recorder) Abandon() {
	r.finish()
}

func (r *Recorder) finish() {
	if r.current == nil {
		return
	}
	r.history = append(r.history, *r.current)
	r.current = nil
}

func (r *Recorder) History() []IterationRecord {
	return append([]IterationRecord(nil), r.history...)
}

func (r *Recorder) Scores() []float64 { return scoresOf(r.history) }

func (r *Recorder) Rejects() [][]TrialResult { return rejectsOf(r.history) }

func (r *Recorder) Reset() {
	r.history = nil
	r.current = nil
}

func scoresOf(history []IterationRecord) []float64 {
	out := []float64{}
	for _, rec := range history {
		if rec.Accepted != nil {
			out = append(out, rec.Accepted.Score)
		}
	}
	return out
}

func rejectsOf(history []IterationRecord) [][]TrialResult {
	out := make([][]TrialResult, len(history))
	for i, rec := range history {
		out[i] = rec.Rejected
	}
	return out
}
