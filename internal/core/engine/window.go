package engine

import "github.com/wilsonritt/snmp-monitor/internal/domain"

// Window is a bounded FIFO of rate samples in insertion order, which the
// session keeps chronological. Append never fails; the oldest sample is
// evicted once the capacity is exceeded.
type Window struct {
	capacity int
	samples  []domain.RateSample
}

func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{capacity: capacity}
}

func (w *Window) Append(s domain.RateSample) {
	w.samples = append(w.samples, s)
	if len(w.samples) > w.capacity {
		overflow := len(w.samples) - w.capacity
		w.samples = append(w.samples[:0], w.samples[overflow:]...)
	}
}

// Snapshot returns a copy of at most the newest limit samples in
// chronological order. limit <= 0 means everything retained. The limit is
// independent of the retention capacity; asking for fewer points never
// discards data.
func (w *Window) Snapshot(limit int) []domain.RateSample {
	n := len(w.samples)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]domain.RateSample, n)
	copy(out, w.samples[len(w.samples)-n:])
	return out
}

func (w *Window) Len() int {
	return len(w.samples)
}

func (w *Window) Clear() {
	w.samples = w.samples[:0]
}
