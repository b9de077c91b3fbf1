package bench

import (
	"math"
	"time"
)

// z value of a two-sided 99.9% confidence interval
const z999 = 3.2905

type Stats struct {
	N      int
	Mean   time.Duration
	StdDev time.Duration
	// Error is half the 99.9% confidence interval of the mean.
	Error time.Duration
}

func NewStats(ds []time.Duration) Stats {
	s := Stats{N: len(ds)}
	if s.N == 0 {
		return s
	}

	var sum float64
	for _, d := range ds {
		sum += float64(d)
	}
	mean := sum / float64(s.N)
	s.Mean = time.Duration(mean)

	if s.N < 2 {
		return s
	}

	var sq float64
	for _, d := range ds {
		diff := float64(d) - mean
		sq += diff * diff
	}
	stddev := math.Sqrt(sq / float64(s.N-1))

	s.StdDev = time.Duration(stddev)
	s.Error = time.Duration(z999 * stddev / math.Sqrt(float64(s.N)))

	return s
}
