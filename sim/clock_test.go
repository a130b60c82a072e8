package sim

import (
	"testing"
)

// TestClockTrace tests Clock's fault count and final frames on the classic
// reference sequence
func TestClockTrace(t *testing.T) {
	sequence := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

	result, err := RunClock(sequence, 3)
	if err != nil {
		t.Fatalf("RunClock failed: %v", err)
	}

	if result.Faults != 9 {
		t.Errorf("Expected 9 faults, got %d", result.Faults)
	}
	if !framesEqual(result.Steps[len(result.Steps)-1].FramesAfter, []int{5, 3, 4}) {
		t.Errorf("Expected final frames [5 3 4], got %v", result.Steps[len(result.Steps)-1].FramesAfter)
	}
	if result.Policy != PolicyClock {
		t.Errorf("Expected policy %q, got %q", PolicyClock, result.Policy)
	}
}

// TestClockMatchesSecondChance tests that the two policies produce identical
// traces: the hand only moves while the frame set is full, where occupancy
// and configured capacity coincide, so the wrap-modulus difference is
// unobservable
func TestClockMatchesSecondChance(t *testing.T) {
	sequences := [][]int{
		{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5},
		{1, 2, 3, 1, 2, 3},
		{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1},
		{5, 4, 3, 2, 1},
		{},
	}

	for _, sequence := range sequences {
		for capacity := 1; capacity <= 4; capacity++ {
			clock, err := RunClock(sequence, capacity)
			if err != nil {
				t.Fatalf("RunClock failed: %v", err)
			}
			sc, err := RunSecondChance(sequence, capacity)
			if err != nil {
				t.Fatalf("RunSecondChance failed: %v", err)
			}

			if clock.Faults != sc.Faults {
				t.Errorf("Fault mismatch on %v with %d frames: clock %d, second-chance %d",
					sequence, capacity, clock.Faults, sc.Faults)
			}
			for i := range clock.Steps {
				if !framesEqual(clock.Steps[i].FramesAfter, sc.Steps[i].FramesAfter) {
					t.Errorf("Step %d frames diverge on %v with %d frames: %v vs %v",
						i, sequence, capacity, clock.Steps[i].FramesAfter, sc.Steps[i].FramesAfter)
				}
			}
		}
	}
}

// TestClockInvalidCapacity tests the capacity precondition
func TestClockInvalidCapacity(t *testing.T) {
	_, err := RunClock([]int{1}, -3)
	if !IsErrorCode(err, ErrCodeInvalidCapacity) {
		t.Errorf("Expected ErrCodeInvalidCapacity, got %v", err)
	}
}
