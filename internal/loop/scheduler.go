package loop

import "time"

// Handle identifies a pending frame request. Zero means none.
type Handle uint64

// Scheduler is the host's per-frame callback facility.
type Scheduler interface {
	// RequestFrame registers fn to run once on the next frame.
	RequestFrame(fn func(now time.Duration)) Handle
	// CancelFrame drops a pending request. Unknown or zero handles are ignored.
	CancelFrame(h Handle)
}

type request struct {
	h  Handle
	fn func(now time.Duration)
}

// Queue is a Scheduler that runs its callbacks when the owner calls Flush.
// The Ebiten host flushes it once per tick; tests flush it by hand.
type Queue struct {
	next    Handle
	pending []request
	running []request
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestFrame(fn func(now time.Duration)) Handle {
	q.next++
	q.pending = append(q.pending, request{h: q.next, fn: fn})
	return q.next
}

func (q *Queue) CancelFrame(h Handle) {
	if h == 0 {
		return
	}
	for i, r := range q.pending {
		if r.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// A callback cancelled by another callback in the same flush.
	for i, r := range q.running {
		if r.h == h {
			q.running[i].fn = nil
			return
		}
	}
}

// Flush runs every callback requested before the call. Callbacks requested
// while flushing wait for the next Flush. It returns how many ran.
func (q *Queue) Flush(now time.Duration) int {
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(now)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Pending reports how many callbacks wait for the next Flush.
func (q *Queue) Pending() int {
	return len(q.pending)
}
