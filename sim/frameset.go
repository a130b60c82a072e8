package sim

// frameSet is the run-scoped working state of one policy invocation
// It owns the ordered resident page list, one reference bit per occupied
// slot, and the persistent hand used by the clock-like policies. Every run
// constructs its own frameSet; nothing here is shared across invocations,
// which keeps concurrent runs independent without locking
type frameSet struct {
	capacity int
	pages []int
	refBits []bool
	hand int
}

func newFrameSet(capacity int) *frameSet {
	return &frameSet{
		capacity: capacity,
		pages: make([]int, 0, capacity),
		refBits: make([]bool, 0, capacity),
	}
}

// indexOf returns the slot holding page, or -1 if the page is not resident
func (fs *frameSet) indexOf(page int) int {
	for i, resident := range fs.pages {
		if resident == page {
			return i
		}
	}
	return -1
}

func (fs *frameSet) contains(page int) bool {
	return fs.indexOf(page) >= 0
}

func (fs *frameSet) full() bool {
	return len(fs.pages) >= fs.capacity
}

// admit appends page to a free slot with the given reference bit
func (fs *frameSet) admit(page int, referenced bool) {
	fs.pages = append(fs.pages, page)
	fs.refBits = append(fs.refBits, referenced)
}

// replaceAt overwrites the page in slot i, preserving slot order
func (fs *frameSet) replaceAt(i, page int, referenced bool) {
	fs.pages[i] = page
	fs.refBits[i] = referenced
}

// evictFront removes the page in slot 0, shifting the rest forward
func (fs *frameSet) evictFront() {
	fs.pages = fs.pages[1:]
	if len(fs.refBits) > 0 {
		fs.refBits = fs.refBits[1:]
	}
}

// snapshot copies the current resident page order for a StepRecord
func (fs *frameSet) snapshot() []int {
	return snapshotFrames(fs.pages)
}
