package game

// viewport is the logical window size and its device scale factor.
type viewport struct {
	w, h float64
	dpr  float64
}

func (v viewport) valid() bool {
	return v.w > 0 && v.h > 0
}

// resizeCoalescer collects the sizes Layout reports and hands Update at most
// one change per tick, and only when something actually changed.
type resizeCoalescer struct {
	current viewport
	pending viewport
	dirty   bool
}

func (r *resizeCoalescer) observe(w, h, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	v := viewport{w: w, h: h, dpr: dpr}
	if v == r.current {
		r.dirty = false
		return
	}
	r.pending, r.dirty = v, true
}

// take returns the pending viewport, if any, and makes it current.
func (r *resizeCoalescer) take() (viewport, bool) {
	if !r.dirty || !r.pending.valid() {
		return r.current, false
	}
	r.current, r.dirty = r.pending, false
	return r.current, true
}
