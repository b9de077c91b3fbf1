package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/hephbuild/lockbench/internal/hcore/hlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("lockbench/internal/bench")

type Result struct {
	Trial     Trial
	Durations []time.Duration
	Completed []uint64
}

// Stats summarizes the measured durations.
func (r Result) Stats() Stats {
	return NewStats(r.Durations)
}

// MinCompleted is the lowest step count any measured run reached.
func (r Result) MinCompleted() uint64 {
	if len(r.Completed) == 0 {
		return 0
	}

	m := r.Completed[0]
	for _, c := range r.Completed[1:] {
		m = min(m, c)
	}

	return m
}

// Measure runs every trial cfg.Warmup times unmeasured, then cfg.Runs times measured.
func Measure(ctx context.Context, cfg Config, trials []Trial) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"lockbench.trial.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Wall-clock duration of one trial run"),
	)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(trials))
	for _, t := range trials {
		if err := t.Validate(); err != nil {
			return nil, err
		}

		attrs := metric.WithAttributes(
			attribute.String("trial", t.Name),
			attribute.String("protocol", t.Protocol.String()),
			attribute.Int("threads", t.Threads),
		)

		for i := range cfg.Warmup {
			hlog.From(ctx).Debug(fmt.Sprintf("%v: warmup %v/%v", t.Name, i+1, cfg.Warmup))

			_, err := t.Run(ctx)
			if err != nil {
				return nil, err
			}
		}

		res := Result{Trial: t}
		for i := range cfg.Runs {
			out, err := t.Run(ctx)
			if err != nil {
				return nil, err
			}

			hlog.From(ctx).Debug(fmt.Sprintf("%v: run %v/%v took %v, completed %v/%v", t.Name, i+1, cfg.Runs, out.Duration, out.Completed, t.Budget))

			durationHist.Record(ctx, out.Duration.Seconds(), attrs)

			res.Durations = append(res.Durations, out.Duration)
			res.Completed = append(res.Completed, out.Completed)
		}

		results = append(results, res)
	}

	return results, nil
}
