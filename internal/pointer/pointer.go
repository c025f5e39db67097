// Package pointer turns raw pointer positions into the small parallax offset
// effect layers are shifted by.
//
// Two trackers share one contract. FrameTracker keeps the last offset when the
// pointer leaves and only clears Active. TouchTracker snaps back to the origin
// when the pointer or touch ends. Callers pick the one whose leave semantics
// they depend on.
package pointer

import (
	"log/slog"
	"math"
	"time"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/signal"
)

// State is the latest processed pointer sample.
type State struct {
	// X, Y are the offset from the viewport centre, within ±MaxOffset.
	X, Y          float64
	Active        bool
	ReducedMotion bool
	// ViewportX, ViewportY are the raw position of the processed sample.
	ViewportX, ViewportY float64
}

// Tracker is what effect drivers read once per frame.
type Tracker interface {
	Current() State
}

// Config tunes a tracker.
type Config struct {
	MaxOffset float64
	// Scale multiplies the normalized offset before clamping.
	Scale float64
	// Smoothing is the weight kept from the previous offset, in [0,1).
	Smoothing float64
	Throttle  time.Duration
}

// DefaultConfig returns the preset for an intensity.
func DefaultConfig(i config.Intensity) Config {
	return Config{
		MaxOffset: config.PointerMaxOffset,
		Scale:     i.PointerScale(),
		Smoothing: config.SmoothingFactor,
		Throttle:  time.Duration(config.PointerThrottleMs * float64(time.Millisecond)),
	}
}

// Offset maps a viewport position to the clamped, scaled offset from centre.
func Offset(x, y, w, h float64, cfg Config) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	cx, cy := w/2, h/2
	ox := (x - cx) / cx * cfg.Scale * cfg.MaxOffset
	oy := (y - cy) / cy * cfg.Scale * cfg.MaxOffset
	return clamp(ox, cfg.MaxOffset), clamp(oy, cfg.MaxOffset)
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// tracker holds the sampling machinery both variants share.
type tracker struct {
	cfg   Config
	sched loop.Scheduler
	env   signal.Environment
	log   *slog.Logger

	w, h  float64
	state State

	rawX, rawY float64
	dirty      bool

	handle        loop.Handle
	lastProcessed time.Duration
	processed     bool

	visible bool
	reduced bool
	subs    []signal.Subscription
	closed  bool

	// onReduced lets a variant react to the preference turning on.
	onReduced func()
}

func newTracker(cfg Config, sched loop.Scheduler, env signal.Environment, log *slog.Logger) *tracker {
	if env == nil {
		env = signal.Headless()
	}
	if log == nil {
		log = slog.Default()
	}
	t := &tracker{
		cfg:     cfg,
		sched:   sched,
		env:     env,
		log:     log,
		visible: env.CurrentVisibility(),
		reduced: env.CurrentReducedMotion(),
	}
	t.state.ReducedMotion = t.reduced
	t.subs = append(t.subs,
		env.OnVisibilityChange(t.setVisible),
		env.OnReducedMotionChange(t.setReduced),
	)
	return t
}

// SetViewport sets the size offsets are measured against.
func (t *tracker) SetViewport(w, h float64) {
	t.w, t.h = w, h
}

// Current returns the latest processed state.
func (t *tracker) Current() State {
	return t.state
}

// Close cancels pending work and drops listeners.
func (t *tracker) Close() {
	if t.closed {
		return
	}
	t.cancel()
	for _, s := range t.subs {
		s.Remove()
	}
	t.subs = nil
	t.closed = true
}

func (t *tracker) sample(x, y float64) {
	if t.closed || t.reduced {
		return
	}
	t.rawX, t.rawY, t.dirty = x, y, true
	t.schedule()
}

func (t *tracker) schedule() {
	if t.handle != 0 || !t.visible || t.closed {
		return
	}
	t.handle = t.sched.RequestFrame(t.process)
}

func (t *tracker) cancel() {
	if t.handle != 0 {
		t.sched.CancelFrame(t.handle)
		t.handle = 0
	}
}

func (t *tracker) process(now time.Duration) {
	t.handle = 0
	if !t.dirty || t.reduced {
		return
	}
	if t.processed && now-t.lastProcessed < t.cfg.Throttle {
		// Too soon after the last sample: keep the newest raw value for the next tick.
		t.schedule()
		return
	}
	t.lastProcessed, t.processed = now, true
	t.dirty = false

	ox, oy := Offset(t.rawX, t.rawY, t.w, t.h, t.cfg)
	s := t.cfg.Smoothing
	if !t.state.Active {
		s = 0
	}
	t.state.X = s*t.state.X + (1-s)*ox
	t.state.Y = s*t.state.Y + (1-s)*oy
	t.state.ViewportX, t.state.ViewportY = t.rawX, t.rawY
	t.state.Active = true
}

func (t *tracker) setVisible(v bool) {
	t.visible = v
	if !v {
		t.cancel()
		return
	}
	if t.dirty {
		t.schedule()
	}
}

func (t *tracker) setReduced(v bool) {
	t.reduced = v
	t.state.ReducedMotion = v
	if v {
		t.cancel()
		t.dirty = false
		if t.onReduced != nil {
			t.onReduced()
		}
	}
	t.log.Debug("pointer reduced motion", "reduced_motion", v)
}
