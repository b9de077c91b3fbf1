package workload

import "lukechampine.com/uint128"

// Sequence returns F(n-1) with F(0) = 0 and F(1) = 1, so n = 1 yields 0.
// n must be at least 1.
func Sequence(n int) uint128.Uint128 {
	prev, _ := run(n - 1)

	return prev
}

// Fibonacci iterates the same recurrence and returns the current term, F(n+1).
func Fibonacci(n int) uint128.Uint128 {
	_, curr := run(n)

	return curr
}

func run(n int) (uint128.Uint128, uint128.Uint128) {
	prev, curr := uint128.Zero, uint128.From64(1)
	for range n {
		prev, curr = curr, prev.Add(curr)
	}

	return prev, curr
}
