package sim

// RunLRU simulates Least Recently Used page replacement
// Fault handling matches FIFO, but a hit moves the referenced page to the
// most-recently-used end of the order, so eviction always removes the page
// untouched for the longest time
func RunLRU(sequence []int, capacity int) (*RunResult, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity("RunLRU", capacity)
	}

	fs := newFrameSet(capacity)
	result := &RunResult{
		Policy: PolicyLRU,
		Steps: make([]StepRecord, 0, len(sequence)),
	}

	for _, page := range sequence {
		before := fs.snapshot()
		fault := false

		if i := fs.indexOf(page); i < 0 {
			fault = true
			if fs.full() {
				fs.evictFront()
			}
			fs.admit(page, false)
			result.Faults++
		} else {
			// Refresh recency: remove then re-append
			fs.pages = append(fs.pages[:i], fs.pages[i+1:]...)
			fs.refBits = append(fs.refBits[:i], fs.refBits[i+1:]...)
			fs.admit(page, false)
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
