package oversample

// Budget holds the two limits that end a run.
type Budget struct {
	MaxIterations int
	MaxTries      int
}

func (b Budget) IterationsExhausted(i int) bool { return i >= b.MaxIterations }

func (b Budget) TriesExhausted(t int) bool { return t >= b.MaxTries }

func (b Budget) validate() error {
	if b.MaxIterations < 0 {
		return &ConfigError{Field: "max_iterations", Value: b.MaxIterations}
	}
	if b.MaxTries <= 0 {
		return &ConfigError{Field: "max_tries", Value: b.MaxTries}
	}
	return nil
}
