package sim

// RunClock simulates Clock page replacement
// The algorithm is Second-Chance's: a circular sweep clearing reference bits
// until a clear slot is found. The only definitional difference is that the
// hand wraps modulo the number of occupied frames rather than the configured
// capacity; once the frame set fills the two are the same
func RunClock(sequence []int, capacity int) (*RunResult, error) {
	return runClockLike(PolicyClock, "RunClock", sequence, capacity, wrapOccupancy)
}
