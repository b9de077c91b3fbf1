package runner

import (
	"fmt"

	"github.com/hephbuild/lockbench/internal/hlocks"
)

// Stepper is one unit of guarded work, *workload.Workload implements it.
type Stepper interface {
	Step() bool
}

// Runner guards a Stepper with a mutex, acquired with a fixed protocol.
type Runner struct {
	mu      *hlocks.Mutex
	stepper Stepper
	run     func() bool
}

func New(protocol Protocol, mu *hlocks.Mutex, stepper Stepper) (*Runner, error) {
	r := &Runner{
		mu:      mu,
		stepper: stepper,
	}

	switch protocol {
	case ProtocolBlocking:
		r.run = r.runBlocking
	case ProtocolScoped:
		r.run = r.runScoped
	case ProtocolEnter:
		r.run = r.runEnter
	case ProtocolTryEnter:
		r.run = r.runTryEnter
	case ProtocolUnknown:
		fallthrough
	default:
		return nil, fmt.Errorf("runner: unsupported protocol %v", protocol)
	}

	return r, nil
}

// Run performs at most one step under the mutex and returns its result.
// With ProtocolTryEnter a busy mutex yields false without stepping, which callers
// cannot tell apart from exhaustion.
func (r *Runner) Run() bool {
	return r.run()
}

func (r *Runner) runBlocking() bool {
	var more bool
	r.mu.Do(func() {
		more = r.stepper.Step()
	})

	return more
}

func (r *Runner) runScoped() bool {
	defer r.mu.Scope().Close()

	return r.stepper.Step()
}

func (r *Runner) runEnter() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stepper.Step()
}

func (r *Runner) runTryEnter() bool {
	if !r.mu.TryLock() {
		return false
	}
	defer r.mu.Unlock()

	return r.stepper.Step()
}
