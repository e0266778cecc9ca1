package pose

import "sync"

// History is a fixed-capacity FIFO buffer of score samples. It is owned by
// one scoring session; appends are serialized and reads return a consistent
// snapshot, so a presentation context can read it while scoring runs.
type History struct {
	mu       sync.RWMutex
	samples  []Sample
	capacity int
}

// NewHistory creates a History holding at most capacity samples.
// Non-positive capacities fall back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		samples:  make([]Sample, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a sample, evicting the oldest one when at capacity.
func (h *History) Append(s Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.capacity {
		// Shift buffer left by 1, removing the oldest sample
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.capacity-1]
	}
	h.samples = append(h.samples, s)
}

// Len returns the number of buffered samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Snapshot returns a copy of the buffered samples, oldest first.
func (h *History) Snapshot() []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Clear empties the buffer. Called when the target letter changes or the
// session stops.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}
