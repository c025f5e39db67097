package game

import "time"

// frameRing records the last N tick intervals so the HUD can draw frame pacing.
type frameRing struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
}

func newFrameRing(ringSize int) *frameRing {
	return &frameRing{buffer: make([]time.Duration, ringSize)}
}

func (r *frameRing) push(d time.Duration) {
	if len(r.buffer) == 0 {
		return
	}
	r.buffer[r.nextIndex] = d
	r.nextIndex++
	if r.nextIndex >= len(r.buffer) {
		r.nextIndex = 0
	}
	if r.filled < len(r.buffer) {
		r.filled++
	}
}

// snapshot returns up to the last n intervals, most recent last.
func (r *frameRing) snapshot(n int) []time.Duration {
	if n > r.filled {
		n = r.filled
	}
	out := make([]time.Duration, 0, n)
	// Walk backwards from nextIndex - 1
	idx := r.nextIndex - 1
	for i := 0; i < n; i++ {
		if idx < 0 {
			idx = len(r.buffer) - 1
		}
		out = append(out, r.buffer[idx])
		idx--
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (r *frameRing) mean() time.Duration {
	if r.filled == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range r.snapshot(r.filled) {
		sum += d
	}
	return sum / time.Duration(r.filled)
}

// fps is derived from the mean interval, 0 before the first sample.
func (r *frameRing) fps() float64 {
	m := r.mean()
	if m <= 0 {
		return 0
	}
	return float64(time.Second) / float64(m)
}
