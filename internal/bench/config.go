package bench

import (
	"fmt"
	"slices"
)

const ConfigFileName = "lockbench.yaml"

type Config struct {
	// Runs is the number of measured iterations per trial.
	Runs int
	// Warmup iterations run before measuring and are discarded.
	Warmup int
	Trials []Trial
}

func DefaultConfig() Config {
	return Config{
		Runs:   5,
		Warmup: 1,
		Trials: DefaultTrials(),
	}
}

func (c Config) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %v", c.Runs)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must not be negative, got %v", c.Warmup)
	}

	for _, t := range c.Trials {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Select returns the trials with the given names, in the order given. No names
// selects every trial.
func (c Config) Select(names []string) ([]Trial, error) {
	if len(names) == 0 {
		return slices.Clone(c.Trials), nil
	}

	trials := make([]Trial, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(c.Trials, func(t Trial) bool {
			return t.Name == name
		})
		if i < 0 {
			return nil, fmt.Errorf("unknown trial %q", name)
		}

		trials = append(trials, c.Trials[i])
	}

	return trials, nil
}
