package workload

import (
	"testing"

	"github.com/hephbuild/lockbench/internal/hcore/hlog/hlogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

// forcedSource makes the n-th draw yield ns[n].
type forcedSource struct {
	ns   []int
	i    int
	gotN []int
}

func (s *forcedSource) IntN(n int) int {
	s.gotN = append(s.gotN, n)

	v := s.ns[s.i%len(s.ns)] - minN
	s.i++

	return v
}

func TestSequence(t *testing.T) {
	expected := []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}

	for i, e := range expected {
		assert.Equal(t, uint128.From64(e), Sequence(i+1), "n=%v", i+1)
	}
}

func TestSequenceLargest(t *testing.T) {
	// F(98) does not fit in 64 bits
	assert.Equal(t, "135301852344706746049", Sequence(99).String())
	assert.Equal(t, "573147844013817084101", Fibonacci(100).String())
}

func TestFibonacci(t *testing.T) {
	assert.Equal(t, uint128.From64(1), Fibonacci(0))
	assert.Equal(t, uint128.From64(1), Fibonacci(1))
	assert.Equal(t, uint128.From64(89), Fibonacci(10))
}

func TestStepRecurrence(t *testing.T) {
	src := &forcedSource{ns: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}}
	w := New(Options{Budget: 10, Source: src})

	for i := 0; i < 9; i++ {
		assert.True(t, w.Step())
	}
	assert.False(t, w.Step())

	expected := make([]uint128.Uint128, 0, 10)
	for _, v := range []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34} {
		expected = append(expected, uint128.From64(v))
	}
	assert.Equal(t, expected, w.Results())

	for _, n := range src.gotN {
		assert.Equal(t, maxN-minN, n)
	}
}

func TestStepBudgetOne(t *testing.T) {
	w := New(Options{Budget: 1, Source: &forcedSource{ns: []int{10}}})

	more := w.Step()
	assert.False(t, more)
	assert.Equal(t, uint64(1), w.RunIndex())
	require.Len(t, w.Results(), 1)
	assert.Equal(t, uint128.From64(34), w.Results()[0])

	// exhausted, no further effect
	assert.False(t, w.Step())
	assert.Equal(t, uint64(1), w.RunIndex())
	assert.Len(t, w.Results(), 1)
}

func TestStepSmallestDrawRecordsZero(t *testing.T) {
	w := New(Options{Budget: 2, Source: &forcedSource{ns: []int{1, 2}}})

	assert.True(t, w.Step())
	assert.False(t, w.Step())
	assert.Equal(t, []uint128.Uint128{uint128.Zero, uint128.From64(1)}, w.Results())
}

func TestStepBudgetZero(t *testing.T) {
	w := New(Options{Budget: 0})

	assert.False(t, w.Step())
	assert.Equal(t, uint64(0), w.RunIndex())
	assert.Empty(t, w.Results())
}

func TestStepInvariants(t *testing.T) {
	w := New(Options{Budget: 500, Source: NewSeededSource(42)})

	for i := 0; i < 600; i++ {
		w.Step()

		assert.LessOrEqual(t, w.RunIndex(), w.Budget())
		assert.Equal(t, int(w.RunIndex()), len(w.Results()))
	}

	assert.Equal(t, uint64(500), w.RunIndex())
}

func TestStepDrawRange(t *testing.T) {
	w := New(Options{Budget: 2000, Source: NewSeededSource(7)})
	for w.Step() {
	}

	limit := Sequence(maxN - 1)
	for _, r := range w.Results() {
		assert.True(t, r.Cmp(limit) <= 0)
	}
}

func TestSeededSourceDeterministic(t *testing.T) {
	a := New(Options{Budget: 100, Source: NewSeededSource(1)})
	b := New(Options{Budget: 100, Source: NewSeededSource(1)})

	for a.Step() {
	}
	for b.Step() {
	}

	assert.Equal(t, a.Results(), b.Results())
}

func TestStepLogs(t *testing.T) {
	rec, logger := hlogtest.NewRecorder()

	w := New(Options{Budget: 2, Source: &forcedSource{ns: []int{4}}, Logger: logger})
	w.Step()
	w.Step()

	assert.Equal(t, []string{
		"Fibonacci(4) = 2 for run #0",
		"Fibonacci(4) = 2 for run #1",
	}, rec.Messages())
}
