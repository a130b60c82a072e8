package sim

// clockWrap selects the modulus the hand wraps on
type clockWrap int

const (
	wrapCapacity clockWrap = iota // configured capacity (Second-Chance)
	wrapOccupancy // current occupied frame count (Clock)
)

// RunSecondChance simulates Second-Chance page replacement
// A FIFO-like circular frame set carries one reference bit per slot. Hits
// set the bit without reordering. On a fault with a full frame set the hand
// sweeps from where it last stopped: slots with the bit set get it cleared
// and are passed over, and the first slot with a clear bit is replaced, its
// bit set, and the hand advanced once more. The hand persists across
// references within a run, wrapping modulo the configured capacity
func RunSecondChance(sequence []int, capacity int) (*RunResult, error) {
	return runClockLike(PolicySecondChance, "RunSecondChance", sequence, capacity, wrapCapacity)
}

// runClockLike is the state machine shared by Second-Chance and Clock
// The two differ only in the hand's wrap modulus: configured capacity vs
// current occupancy. Replacement only happens with a full frame set, where
// the two moduli coincide, so the distinction is structural rather than
// observable; it is kept anyway to match each policy's definition
func runClockLike(policy, op string, sequence []int, capacity int, wrap clockWrap) (*RunResult, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity(op, capacity)
	}

	fs := newFrameSet(capacity)
	result := &RunResult{
		Policy: policy,
		Steps: make([]StepRecord, 0, len(sequence)),
	}

	for _, page := range sequence {
		before := fs.snapshot()
		fault := false

		if i := fs.indexOf(page); i < 0 {
			fault = true
			if fs.full() {
				modulus := capacity
				if wrap == wrapOccupancy {
					modulus = len(fs.pages)
				}
				// Sweep: clear set bits until a clear one is found
				for fs.refBits[fs.hand] {
					fs.refBits[fs.hand] = false
					fs.hand = (fs.hand + 1) % modulus
				}
				fs.replaceAt(fs.hand, page, true)
				fs.hand = (fs.hand + 1) % modulus
			} else {
				fs.admit(page, true)
			}
			result.Faults++
		} else {
			fs.refBits[i] = true
		}

		result.Steps = append(result.Steps, StepRecord{
			Page: page,
			FramesBefore: before,
			FramesAfter: fs.snapshot(),
			PageFault: fault,
		})
	}

	return result, nil
}
