package bench

import (
	"context"
	"testing"
	"time"

	"github.com/hephbuild/lockbench/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	cfg := DefaultConfig()

	all, err := cfg.Select(nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Trials, all)

	some, err := cfg.Select([]string{"UsingLockTryEnter", "UsingOldLock"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, runner.ProtocolTryEnter, some[0].Protocol)
	assert.Equal(t, runner.ProtocolBlocking, some[1].Protocol)

	_, err = cfg.Select([]string{"nope"})
	assert.ErrorContains(t, err, `unknown trial "nope"`)
}

func TestDefaultTrials(t *testing.T) {
	trials := DefaultTrials()
	require.Len(t, trials, len(runner.Protocols()))

	for i, p := range runner.Protocols() {
		assert.Equal(t, p, trials[i].Protocol)
		assert.Equal(t, uint64(DefaultBudget), trials[i].Budget)
		assert.Equal(t, DefaultThreads, trials[i].Threads)
		assert.NoError(t, trials[i].Validate())
	}
}

func TestTrialValidate(t *testing.T) {
	err := Trial{Name: "x"}.Validate()
	assert.ErrorContains(t, err, "protocol is required")
	assert.ErrorContains(t, err, "threads must be positive")
}

func TestTrialRun(t *testing.T) {
	for _, p := range runner.Protocols() {
		t.Run(p.String(), func(t *testing.T) {
			out, err := Trial{Name: t.Name(), Protocol: p, Budget: 1000, Threads: 8}.Run(context.Background())
			require.NoError(t, err)

			assert.Positive(t, out.Duration)
			assert.LessOrEqual(t, out.Completed, uint64(1000))
			if p != runner.ProtocolTryEnter {
				assert.Equal(t, uint64(1000), out.Completed)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	cfg := Config{Runs: 3, Warmup: 1, Trials: []Trial{
		{Name: "a", Protocol: runner.ProtocolScoped, Budget: 500, Threads: 4},
		{Name: "b", Protocol: runner.ProtocolTryEnter, Budget: 500, Threads: 4},
	}}

	results, err := Measure(context.Background(), cfg, cfg.Trials)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, res := range results {
		assert.Len(t, res.Durations, 3)
		assert.Len(t, res.Completed, 3)
		assert.LessOrEqual(t, res.MinCompleted(), uint64(500))
	}
	assert.Equal(t, uint64(500), results[0].MinCompleted())

	report := RenderReport(results, ReportOptions{Plain: true})
	assert.Contains(t, report, "| Method ")
	assert.Contains(t, report, "StdDev")
	assert.Contains(t, report, "500/500")
	assert.Contains(t, report, "tryenter")

	styled := RenderReport(results, ReportOptions{})
	assert.Contains(t, styled, "Method")
	assert.Contains(t, styled, "500/500")
}

func TestMeasureInvalidConfig(t *testing.T) {
	_, err := Measure(context.Background(), Config{Runs: 0}, nil)
	assert.ErrorContains(t, err, "runs must be positive")
}

func TestNewStats(t *testing.T) {
	s := NewStats([]time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second})

	assert.Equal(t, 3, s.N)
	assert.Equal(t, 4*time.Second, s.Mean)
	assert.Equal(t, 2*time.Second, s.StdDev)
	assert.InDelta(t, z999*2/1.7320508075688772*float64(time.Second), float64(s.Error), float64(time.Microsecond))

	assert.Equal(t, Stats{N: 1, Mean: time.Second}, NewStats([]time.Duration{time.Second}))
	assert.Equal(t, Stats{}, NewStats(nil))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.785 s", FormatDuration(1785*time.Millisecond))
	assert.Equal(t, "36.100 ms", FormatDuration(36100*time.Microsecond))
	assert.Equal(t, "12.500 us", FormatDuration(12500*time.Nanosecond))
}
