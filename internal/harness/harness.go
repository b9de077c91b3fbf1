package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hephbuild/lockbench/internal/hcore/hlog"
	"github.com/hephbuild/lockbench/internal/hpanic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("lockbench/internal/harness")

// Runner attempts one unit of work and reports whether the worker should keep going.
type Runner interface {
	Run() bool
}

type Options struct {
	// LockOSThread pins every worker goroutine to its own OS thread.
	LockOSThread bool `mapstructure:"lockOSThread"`
}

type Harness struct {
	runner Runner
	opts   Options
}

func New(runner Runner, opts Options) *Harness {
	return &Harness{runner: runner, opts: opts}
}

// RunTrial starts threadCount workers looping on the runner until it returns false,
// and waits for all of them. Workers that panic are reported once every worker has
// been joined.
//
// When the logger in ctx is enabled at debug level every attempt is traced.
func (h *Harness) RunTrial(ctx context.Context, threadCount int) error {
	if threadCount < 1 {
		return fmt.Errorf("thread count must be positive, got %v", threadCount)
	}

	ctx, span := tracer.Start(ctx, "RunTrial", trace.WithAttributes(
		attribute.Int("threads", threadCount),
		attribute.Bool("lock_os_thread", h.opts.LockOSThread),
	))
	defer span.End()

	logger := hlog.From(ctx)
	if !logger.Enabled(ctx, slog.LevelDebug) {
		logger = nil
	}

	errs := make([]error, threadCount)

	var g errgroup.Group
	for i := range threadCount {
		if logger != nil {
			logger.Debug(fmt.Sprintf("Launching task #%v", i))
		}

		g.Go(func() error {
			errs[i] = h.work(i, logger)

			return nil
		})
	}

	// workers report through errs so every failure survives, Wait itself is always nil
	_ = g.Wait()

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	return nil
}

func (h *Harness) work(id int, logger *slog.Logger) error {
	if h.opts.LockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	return hpanic.Recover(func() error {
		canRun := true
		for canRun {
			if logger != nil {
				logger.Debug(fmt.Sprintf("Task #%v job starts...", id))
			}

			canRun = h.runner.Run()

			if logger != nil {
				logger.Debug(fmt.Sprintf("Task #%v job ends (canRun: %v).", id, canRun))
			}
		}

		return nil
	}, hpanic.Wrap(func(err error) error {
		return fmt.Errorf("worker #%v: %w", id, err)
	}))
}
