package oversample

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/grexie/oversample/pkg/dataset"
	"github.com/jedib0t/go-pretty/v6/progress"
)

type Option func(*Engine)

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithProgress reports accepted iterations to pw. The engine never starts or
// stops pw.
func WithProgress(pw progress.Writer) Option {
	return func(e *Engine) { e.pw = pw }
}

// WithRand draws candidates from rng instead of a source seeded from
// Config.Seed on every run.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithBudget uses b as is. Unlike Config, a zero iteration budget is kept.
func WithBudget(b Budget) Option {
	return func(e *Engine) { e.override = &b }
}

// Engine greedily appends duplicated rows while they lower the dispersion of
// the label counts. It is not safe for concurrent use.
type Engine struct {
	cfg      Config
	budget   Budget
	override *Budget
	logger   *log.Logger
	pw       progress.Writer
	rng      *rand.Rand

	state    State
	ds       *dataset.Dataset
	targets  []string
	ws       *WorkingSet
	sampler  *Sampler
	recorder Recorder
	shape    int
}

func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}

	if e.override != nil {
		if err := e.override.validate(); err != nil {
			return nil, err
		}
		e.budget = *e.override
	} else if b, err := cfg.Budget(); err != nil {
		return nil, err
	} else {
		e.budget = b
	}

	return e, nil
}

func (e *Engine) Budget() Budget { return e.budget }

func (e *Engine) State() State { return e.state }

// Fit validates rows against targets and balances them.
func (e *Engine) Fit(ctx context.Context, rows []dataset.Row, targets []string) (*Result, error) {
	ds, err := dataset.New(rows, targets)
	if err != nil {
		return nil, err
	}
	return e.FitDataset(ctx, ds)
}

// FitDataset runs the search. A stall is not an error: the result is returned
// with Trace.State set to Exhausted. If ctx ends the run the partial result is
// returned along with ctx.Err().
func (e *Engine) FitDataset(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	e.Reset()
	e.ds = ds
	e.targets = ds.Targets()
	e.ws = NewWorkingSet(ds)
	e.shape = len(ds.Columns())

	rng := e.rng
	if rng == nil {
		rng = NewRand(e.cfg.Seed)
	}
	e.sampler = NewSampler(ds, rng)

	trace := Trace{
		RunID:         uuid.New().String(),
		Targets:       e.targets,
		Seed:          e.cfg.Seed,
		MaxIterations: e.budget.MaxIterations,
		MaxTries:      e.budget.MaxTries,
		Initial:       e.ws.Score(),
		Before:        e.ws.Counts(),
	}

	var tracker *progress.Tracker
	if e.pw != nil {
		tracker = &progress.Tracker{
			Message: "Iteration",
			Total:   int64(e.budget.MaxIterations),
			Units:   progress.UnitsDefault,
		}
		e.pw.AppendTracker(tracker)
		tracker.Start()
	}

	var runErr error
	for i := 0; !e.state.IsTerminal(); i++ {
		ev := eventBudgetSpent
		if !e.budget.IterationsExhausted(i) {
			var err error
			if ev, err = e.iterate(ctx, i); err != nil {
				runErr = err
			}
		}

		next, err := transition(e.state, ev)
		if err != nil {
			return nil, err
		}
		e.state = next

		if ev == eventAccepted && tracker != nil {
			tracker.Increment(1)
		}
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}

	trace.State = e.state
	trace.Cancelled = runErr != nil
	trace.Final = e.ws.Score()
	trace.After = e.ws.Counts()
	trace.History = e.recorder.History()
	trace.Indices = e.ws.Indices()

	return &Result{Rows: e.ws.Rows(), Trace: trace}, runErr
}

func (e *Engine) iterate(ctx context.Context, i int) (event, error) {
	current := e.ws.Score()
	e.recorder.Begin(i, current)

	for t := 0; !e.budget.TriesExhausted(t); t++ {
		if err := ctx.Err(); err != nil {
			e.recorder.Abandon()
			return eventCancelled, err
		}

		position := e.sampler.Draw()
		trial := TrialResult{
			Index: e.ds.Index(position),
			Try:   t,
			Score: e.ws.ScoreWith(position),
		}

		if trial.Score < current {
			e.ws.Append(position)
			e.recorder.Accept(trial)
			if e.cfg.Details {
				e.logger.Printf("Iter %3d: Worked after %5d tries with row %4d, Std: %.3f, New: %.3f, Shape: (%d, %d)", i, t, trial.Index, current, trial.Score, e.ws.Len(), e.shape)
			}
			return eventAccepted, nil
		}

		e.recorder.Reject(trial)
	}

	e.recorder.Abandon()
	e.logger.Printf("No improvement after %d tries in iter %d.", e.budget.MaxTries, i)
	return eventStalled, nil
}

// Reset forgets the last run so the engine can be reused.
func (e *Engine) Reset() {
	e.state = Iterating
	e.ds = nil
	e.targets = nil
	e.ws = nil
	e.sampler = nil
	e.shape = 0
	e.recorder.Reset()
}
