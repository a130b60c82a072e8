package sim

// RunFIFO simulates First In, First Out page replacement
// Frames form a queue in admission order: a fault with a free slot appends
// the page, a fault with a full frame set evicts the earliest-admitted page
// (front of the queue). Hits never reorder anything
func RunFIFO(sequence []int, capacity int) (*RunResult, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity("RunFIFO", capacity)
	}

	fs := newFrameSet(capacity)
	result := &RunResult{
		Policy: PolicyFIFO,
		Steps: make([]StepRecord, 0, len(sequence)),
	}

	for _, page := range sequence {
		before := fs.snapshot()
		fault := false

		if !fs.contains(page) {
			fault = true
			if fs.full() {
				fs.evictFront()
			}
			fs.admit(page, false)
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
