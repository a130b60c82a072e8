package sim

// StepRecord captures a single reference in a policy run
// FramesBefore and FramesAfter are independent snapshots of the resident
// pages, taken immediately before and after the reference was processed
type StepRecord struct {
	Page int `json:"page"`
	FramesBefore []int `json:"frames_before"`
	FramesAfter []int `json:"frames_after"`
	PageFault bool `json:"page_fault"`
}

// RunResult is the finished outcome of one (policy, sequence, capacity) run
// It is created by the engine and never mutated after return
type RunResult struct {
	Policy string `json:"policy"`
	Faults int `json:"faults"`
	Steps []StepRecord `json:"steps"`
}

// Hits returns the number of references that did not fault
func (r *RunResult) Hits() int {
	return len(r.Steps) - r.Faults
}

// Evictions returns the number of faults that displaced a resident page
// (faults taken while the frame set was already full)
func (r *RunResult) Evictions() int {
	evictions := 0
	for _, step := range r.Steps {
		// A fault with free capacity grows the frame set; a displacing
		// fault leaves its size unchanged
		if step.PageFault && len(step.FramesBefore) == len(step.FramesAfter) {
			evictions++
		}
	}
	return evictions
}

// snapshotFrames returns an independent copy of the resident page list
// An empty frame set snapshots to an empty (non-nil) slice so traces
// serialize uniformly
func snapshotFrames(frames []int) []int {
	snapshot := make([]int, len(frames))
	copy(snapshot, frames)
	return snapshot
}
