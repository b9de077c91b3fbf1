package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hephbuild/lockbench/internal/harness"
	"github.com/hephbuild/lockbench/internal/hcore/hlog"
	"github.com/hephbuild/lockbench/internal/hlocks"
	"github.com/hephbuild/lockbench/internal/runner"
	"github.com/hephbuild/lockbench/internal/workload"
)

const (
	DefaultBudget  = 10_000_000
	DefaultThreads = 10
)

// Trial is one named harness configuration.
type Trial struct {
	Name     string
	Protocol runner.Protocol
	Budget   uint64
	Threads  int
	Options  harness.Options
}

func DefaultTrials() []Trial {
	return []Trial{
		{Name: "UsingOldLock", Protocol: runner.ProtocolBlocking, Budget: DefaultBudget, Threads: DefaultThreads},
		{Name: "UsingLockEnterScope", Protocol: runner.ProtocolScoped, Budget: DefaultBudget, Threads: DefaultThreads},
		{Name: "UsingLockEnter", Protocol: runner.ProtocolEnter, Budget: DefaultBudget, Threads: DefaultThreads},
		{Name: "UsingLockTryEnter", Protocol: runner.ProtocolTryEnter, Budget: DefaultBudget, Threads: DefaultThreads},
	}
}

func (t Trial) Validate() error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if t.Protocol == runner.ProtocolUnknown {
		errs = append(errs, errors.New("protocol is required"))
	}
	if t.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be positive, got %v", t.Threads))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("trial %q: %w", t.Name, err)
	}

	return nil
}

type Outcome struct {
	Duration time.Duration
	// Completed is the number of steps recorded when the trial ended.
	Completed uint64
}

// Run builds a fresh mutex and workload and times one harness run over them.
func (t Trial) Run(ctx context.Context) (Outcome, error) {
	w := workload.New(workload.Options{
		Budget: t.Budget,
		Logger: hlog.From(ctx),
	})

	r, err := runner.New(t.Protocol, hlocks.NewMutex(t.Name), w)
	if err != nil {
		return Outcome{}, fmt.Errorf("%v: %w", t.Name, err)
	}

	h := harness.New(r, t.Options)

	start := time.Now()
	err = h.RunTrial(ctx, t.Threads)
	duration := time.Since(start)
	if err != nil {
		return Outcome{}, fmt.Errorf("%v: %w", t.Name, err)
	}

	return Outcome{Duration: duration, Completed: w.RunIndex()}, nil
}
