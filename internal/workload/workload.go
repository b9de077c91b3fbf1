package workload

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"lukechampine.com/uint128"
)

const (
	minN = 1
	maxN = 100
)

type Options struct {
	Budget uint64
	// Source defaults to a randomly seeded PCG.
	Source Source
	// Logger receives one debug line per step when enabled.
	Logger *slog.Logger
}

// Workload is a bounded amount of work shared by many workers. It is not safe for
// concurrent use, every method must be called with the guarding lock held or after
// all workers are done.
type Workload struct {
	budget   uint64
	runIndex uint64
	results  []uint128.Uint128
	rand     Source
	logger   *slog.Logger
}

func New(opts Options) *Workload {
	w := &Workload{
		budget: opts.Budget,
		rand:   opts.Source,
	}

	if w.rand == nil {
		w.rand = newSource()
	}

	if opts.Logger != nil && opts.Logger.Enabled(context.Background(), slog.LevelDebug) {
		w.logger = opts.Logger
	}

	return w
}

// Step performs one unit of work and reports whether work remains after it.
// On the step that exhausts the budget the result is recorded and false is returned.
func (w *Workload) Step() bool {
	if w.runIndex >= w.budget {
		return false
	}

	n := minN + w.rand.IntN(maxN-minN)
	result := Sequence(n)

	if w.logger != nil {
		w.logger.Debug(fmt.Sprintf("Fibonacci(%v) = %v for run #%v", n, result, w.runIndex))
	}

	w.results = append(w.results, result)
	w.runIndex++

	return w.runIndex < w.budget
}

func (w *Workload) RunIndex() uint64 {
	return w.runIndex
}

func (w *Workload) Budget() uint64 {
	return w.budget
}

func (w *Workload) Results() []uint128.Uint128 {
	return slices.Clone(w.results)
}
