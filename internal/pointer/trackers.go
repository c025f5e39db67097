package pointer

import (
	"log/slog"

	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/signal"
)

// FrameTracker samples pointer moves on frame boundaries. Leaving the surface
// clears Active but keeps the last offset, so layers stay where they were.
// Under reduced motion the state freezes at its last value.
type FrameTracker struct {
	*tracker
}

// NewFrameTracker registers its listeners immediately; call Close on teardown.
func NewFrameTracker(cfg Config, sched loop.Scheduler, env signal.Environment, log *slog.Logger) *FrameTracker {
	return &FrameTracker{tracker: newTracker(cfg, sched, env, log)}
}

// Move records a viewport position; it is processed on the next frame.
func (f *FrameTracker) Move(x, y float64) {
	f.sample(x, y)
}

// Leave marks the pointer inactive without moving the offset.
func (f *FrameTracker) Leave() {
	f.cancel()
	f.dirty = false
	f.state.Active = false
}

// TouchTracker follows mouse and touch continuously and snaps back to the
// origin when the interaction ends. Under reduced motion it never leaves the
// origin.
type TouchTracker struct {
	*tracker
}

// NewTouchTracker registers its listeners immediately; call Close on teardown.
func NewTouchTracker(cfg Config, sched loop.Scheduler, env signal.Environment, log *slog.Logger) *TouchTracker {
	t := &TouchTracker{tracker: newTracker(cfg, sched, env, log)}
	t.onReduced = t.reset
	return t
}

// Move records a mouse or touch position.
func (t *TouchTracker) Move(x, y float64) {
	t.sample(x, y)
}

// End resets the offset to (0,0) and marks the tracker inactive.
func (t *TouchTracker) End() {
	t.cancel()
	t.dirty = false
	t.reset()
}

func (t *TouchTracker) reset() {
	t.state.X, t.state.Y = 0, 0
	t.state.Active = false
}
