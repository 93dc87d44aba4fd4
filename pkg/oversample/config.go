package oversample

import (
	"errors"
	"fmt"
)

// Unbounded replaces a zero iteration or try budget.
const Unbounded = 1_000_000

var ErrConfig = errors.New("config error")

type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s must be positive, got %d", ErrConfig, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

type Config struct {
	// MaxIterations is the maximum number of rows appended. Zero means unbounded.
	MaxIterations int `yaml:"max_iterations"`
	// MaxTries is the number of draws per iteration before the run stalls. Zero
	// means unbounded.
	MaxTries int    `yaml:"max_tries"`
	Seed     uint64 `yaml:"seed"`
	// Details logs every accepted try.
	Details bool `yaml:"details"`
	// Report asks the caller to render the run once it finishes.
	Report bool `yaml:"report"`
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 1000,
		MaxTries:      100,
		Seed:          1,
		Report:        true,
	}
}

// Budget substitutes Unbounded for zero values and rejects negative ones.
func (c Config) Budget() (Budget, error) {
	b := Budget{MaxIterations: c.MaxIterations, MaxTries: c.MaxTries}
	if b.MaxIterations == 0 {
		b.MaxIterations = Unbounded
	}
	if b.MaxTries == 0 {
		b.MaxTries = Unbounded
	}
	if err := b.validate(); err != nil {
		return Budget{}, err
	}
	return b, nil
}
