package sim

// RunOptimal simulates Belady's optimal page replacement
// On a fault with a full frame set, every resident page is scored by the
// distance to its next occurrence in the remaining suffix of the sequence;
// a page never referenced again is infinitely distant. The victim is the
// first page in current frame order with a strictly greater distance than
// any scored before it, and it is replaced in place so the other slots keep
// their positions. Distances are recomputed from the current suffix on every
// fault, so each fault costs a linear scan of the remainder
func RunOptimal(sequence []int, capacity int) (*RunResult, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity("RunOptimal", capacity)
	}

	fs := newFrameSet(capacity)
	result := &RunResult{
		Policy: PolicyOptimal,
		Steps: make([]StepRecord, 0, len(sequence)),
	}

	for pos, page := range sequence {
		before := fs.snapshot()
		fault := false

		if !fs.contains(page) {
			fault = true
			if fs.full() {
				victim := farthestNextUse(fs.pages, sequence[pos+1:])
				fs.replaceAt(victim, page, false)
			} else {
				fs.admit(page, false)
			}
			result.Faults++
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

// farthestNextUse returns the frame slot whose page is next referenced
// farthest in the future. Ties keep the earlier slot: a later slot wins only
// with a strictly greater distance
func farthestNextUse(frames []int, future []int) int {
	victim := 0
	maxDist := -1

	for i, page := range frames {
		dist := nextUseDistance(page, future)
		if dist > maxDist {
			maxDist = dist
			victim = i
		}
	}
	return victim
}

// nextUseDistance returns the index of the first occurrence of page in
// future, or len(future) if it never occurs again (farther than any page
// that does)
func nextUseDistance(page int, future []int) int {
	for i, p := range future {
		if p == page {
			return i
		}
	}
	return len(future)
}
