// Package loop drives an effect through the frame scheduler.
//
// A Loop moves through Uninitialized -> Running <-> Paused -> TornDown.
// Visibility toggles Running and Paused. Reduced motion is not a state: it is
// a branch inside Running that draws one static frame and freezes the time
// accumulator while frames keep being scheduled, so a preference flip is seen
// on the very next frame.
package loop

import (
	"errors"
	"log/slog"
	"time"

	"github.com/iburimskiy/ambientfx/internal/signal"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

var (
	ErrTornDown       = errors.New("loop: torn down")
	ErrAlreadyMounted = errors.New("loop: already mounted")
)

// State is the loop lifecycle state.
type State int

const (
	Uninitialized State = iota
	Running
	Paused
	TornDown
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case TornDown:
		return "torn_down"
	}
	return "unknown"
}

// Frame is what a driver sees for one animated frame.
type Frame struct {
	Now time.Duration
	// Delta is the milliseconds added to Elapsed by this frame.
	Delta float64
	// Elapsed is the accumulated simulation time in milliseconds.
	Elapsed float64
	Seq     uint64
}

// Driver is one effect. Update and Render are always called back to back in
// the same frame; RenderStatic replaces both under reduced motion.
type Driver interface {
	Resize(w, h, dpr float64)
	Update(f Frame)
	Render(s surface.Surface, f Frame)
	RenderStatic(s surface.Surface)
}

// Loop owns the scheduling and lifecycle of one driver on one surface.
type Loop struct {
	name   string
	driver Driver
	sched  Scheduler
	env    signal.Environment
	log    *slog.Logger

	state   State
	handle  Handle
	surface surface.Surface
	subs    []signal.Subscription

	lastNow  time.Duration
	haveLast bool
	elapsed  float64
	frames   uint64

	reduced     bool
	staticDirty bool
}

// New builds an unmounted loop. A nil env runs headless; a nil log uses slog.Default.
func New(name string, d Driver, sched Scheduler, env signal.Environment, log *slog.Logger) *Loop {
	if env == nil {
		env = signal.Headless()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Loop{
		name:   name,
		driver: d,
		sched:  sched,
		env:    env,
		log:    log.With("driver", name),
	}
}

// Mount sizes the driver, registers listeners and schedules the first frame.
// A loop mounted while hidden starts Paused.
func (l *Loop) Mount(w, h, dpr float64) error {
	switch l.state {
	case TornDown:
		return ErrTornDown
	case Running, Paused:
		return ErrAlreadyMounted
	}

	l.driver.Resize(w, h, dpr)
	l.staticDirty = true
	l.reduced = l.env.CurrentReducedMotion()

	l.subs = append(l.subs,
		l.env.OnVisibilityChange(l.setVisible),
		l.env.OnReducedMotionChange(l.reducedMotionChanged),
	)

	if !l.env.CurrentVisibility() {
		l.state = Paused
		l.log.Debug("mounted hidden", "w", w, "h", h, "dpr", dpr)
		return nil
	}
	l.state = Running
	l.schedule()
	l.log.Debug("mounted", "w", w, "h", h, "dpr", dpr, "reduced_motion", l.reduced)
	return nil
}

// Unmount cancels the pending frame and drops every listener. It is terminal.
func (l *Loop) Unmount() {
	if l.state == TornDown {
		return
	}
	l.cancel()
	for _, s := range l.subs {
		s.Remove()
	}
	l.subs = nil
	l.surface = nil
	l.state = TornDown
	l.log.Debug("torn down", "frames", l.frames, "elapsed_ms", l.elapsed)
}

// Attach sets the surface frames are drawn on. Nil detaches it; frames are then
// skipped until a surface returns.
func (l *Loop) Attach(s surface.Surface) {
	l.surface = s
	l.staticDirty = true
}

// Resize resyncs the driver out of band. It is not a state transition.
func (l *Loop) Resize(w, h, dpr float64) {
	if l.state == TornDown || l.state == Uninitialized {
		return
	}
	l.driver.Resize(w, h, dpr)
	l.staticDirty = true
	l.log.Debug("resized", "w", w, "h", h, "dpr", dpr)
}

func (l *Loop) State() State { return l.state }

// Elapsed returns the accumulated simulation time in milliseconds.
func (l *Loop) Elapsed() float64 { return l.elapsed }

// Frames returns how many frame callbacks ran while Running.
func (l *Loop) Frames() uint64 { return l.frames }

// ReducedMotion reports the flag seen by the latest frame.
func (l *Loop) ReducedMotion() bool { return l.reduced }

// Pending reports whether a frame is scheduled.
func (l *Loop) Pending() bool { return l.handle != 0 }

func (l *Loop) schedule() {
	if l.handle != 0 {
		return
	}
	l.handle = l.sched.RequestFrame(l.tick)
}

func (l *Loop) cancel() {
	if l.handle != 0 {
		l.sched.CancelFrame(l.handle)
		l.handle = 0
	}
}

func (l *Loop) setVisible(visible bool) {
	switch {
	case !visible && l.state == Running:
		l.cancel()
		l.state = Paused
		l.log.Debug("paused", "elapsed_ms", l.elapsed)
	case visible && l.state == Paused:
		l.state = Running
		// The hidden interval is not replayed.
		l.haveLast = false
		l.schedule()
		l.log.Debug("resumed", "elapsed_ms", l.elapsed)
	}
}

func (l *Loop) reducedMotionChanged(reduced bool) {
	if l.state == TornDown {
		return
	}
	l.staticDirty = true
	l.log.Debug("reduced motion changed", "reduced_motion", reduced)
}

func (l *Loop) tick(now time.Duration) {
	l.handle = 0
	if l.state != Running {
		return
	}
	defer l.schedule()

	if l.surface == nil {
		l.lastNow, l.haveLast = now, true
		return
	}
	l.frames++

	reduced := l.env.CurrentReducedMotion()
	if reduced != l.reduced {
		l.reduced = reduced
		l.staticDirty = true
	}

	var delta float64
	if l.haveLast && now > l.lastNow {
		delta = float64(now-l.lastNow) / float64(time.Millisecond)
	}
	l.lastNow, l.haveLast = now, true

	if reduced {
		if l.staticDirty {
			l.driver.RenderStatic(l.surface)
			l.staticDirty = false
		}
		return
	}

	l.staticDirty = true
	l.elapsed += delta
	f := Frame{Now: now, Delta: delta, Elapsed: l.elapsed, Seq: l.frames}
	l.driver.Update(f)
	l.driver.Render(l.surface, f)
}
