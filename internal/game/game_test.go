package game

import (
	"testing"
	"time"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/effects"
	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/pointer"
	"github.com/iburimskiy/ambientfx/internal/signal"
)

func TestFrameRingSnapshot(t *testing.T) {
	r := newFrameRing(4)
	if got := r.snapshot(4); len(got) != 0 {
		t.Fatalf("empty snapshot = %v, want none", got)
	}
	for i := 1; i <= 6; i++ {
		r.push(time.Duration(i) * time.Millisecond)
	}
	got := r.snapshot(10)
	want := []time.Duration{3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond, 6 * time.Millisecond}
	if len(got) != len(want) {
		t.Fatalf("snapshot len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("snapshot[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if last2 := r.snapshot(2); last2[0] != 5*time.Millisecond || last2[1] != 6*time.Millisecond {
		t.Errorf("snapshot(2) = %v", last2)
	}
}

func TestFrameRingPartial(t *testing.T) {
	r := newFrameRing(8)
	r.push(10 * time.Millisecond)
	r.push(20 * time.Millisecond)
	if got := r.snapshot(8); len(got) != 2 || got[0] != 10*time.Millisecond {
		t.Errorf("snapshot = %v, want [10ms 20ms]", got)
	}
	if m := r.mean(); m != 15*time.Millisecond {
		t.Errorf("mean = %v, want 15ms", m)
	}
}

func TestFrameRingFPS(t *testing.T) {
	r := newFrameRing(config.FrameRingSize)
	if r.fps() != 0 {
		t.Errorf("fps before samples = %v, want 0", r.fps())
	}
	for i := 0; i < 200; i++ {
		r.push(20 * time.Millisecond)
	}
	if fps := r.fps(); fps != 50 {
		t.Errorf("fps = %v, want 50", fps)
	}
}

func TestResizeCoalescer(t *testing.T) {
	var r resizeCoalescer
	if _, ok := r.take(); ok {
		t.Fatal("take before any observe reported a change")
	}

	r.observe(800, 600, 1)
	r.observe(1024, 640, 2)
	v, ok := r.take()
	if !ok || v != (viewport{1024, 640, 2}) {
		t.Fatalf("take = %v,%v, want latest size", v, ok)
	}

	r.observe(1024, 640, 2)
	if _, ok := r.take(); ok {
		t.Error("unchanged size reported as a resize")
	}

	// A size that bounces back before Update runs is not a resize.
	r.observe(900, 640, 2)
	r.observe(1024, 640, 2)
	if _, ok := r.take(); ok {
		t.Error("bounced size reported as a resize")
	}

	r.observe(0, 640, 1)
	if _, ok := r.take(); ok {
		t.Error("zero-width viewport applied")
	}

	r.observe(1024, 640, 0)
	if v, ok := r.take(); !ok || v.dpr != 1 {
		t.Errorf("dpr 0 should be treated as 1, got %v,%v", v, ok)
	}
}

type routerRig struct {
	queue  *loop.Queue
	router *pointerRouter
	now    time.Duration
}

func newRouterRig() *routerRig {
	q := loop.NewQueue()
	env := signal.Headless()
	cfg := pointer.DefaultConfig(config.Medium)
	grid := effects.NewReactiveGrid(config.DefaultOptions(), effects.NewRand(1), nil, nil)
	grid.Resize(800, 600, 1)
	r := &pointerRouter{
		frame: pointer.NewFrameTracker(cfg, q, env, nil),
		touch: pointer.NewTouchTracker(cfg, q, env, nil),
		grid:  grid,
	}
	r.setViewport(800, 600)
	return &routerRig{queue: q, router: r}
}

func (rig *routerRig) tick(in pointerInput) {
	rig.router.route(in, 800, 600)
	rig.now += 20 * time.Millisecond
	rig.queue.Flush(rig.now)
}

func TestRouterCursorMoveAndLeave(t *testing.T) {
	rig := newRouterRig()
	rig.tick(pointerInput{cursorX: 600, cursorY: 300})

	fs := rig.router.frame.Current()
	if !fs.Active || fs.X != 15 || fs.Y != 0 {
		t.Fatalf("frame state = %+v, want active at (15,0)", fs)
	}
	if ts := rig.router.touch.Current(); !ts.Active || ts.X != 15 {
		t.Fatalf("touch state = %+v, want active at 15", ts)
	}
	if n := len(rig.router.grid.Ripples()); n != 1 {
		t.Errorf("move ripples = %d, want 1", n)
	}

	rig.tick(pointerInput{cursorX: -1, cursorY: 300})
	fs = rig.router.frame.Current()
	if fs.Active || fs.X != 15 {
		t.Errorf("frame after leave = %+v, want inactive holding x=15", fs)
	}
	ts := rig.router.touch.Current()
	if ts.Active || ts.X != 0 || ts.Y != 0 {
		t.Errorf("touch after leave = %+v, want origin", ts)
	}
}

func TestRouterStillCursorDoesNotResample(t *testing.T) {
	rig := newRouterRig()
	rig.tick(pointerInput{cursorX: 100, cursorY: 100})
	rig.tick(pointerInput{cursorX: 100, cursorY: 100})
	if rig.queue.Pending() != 0 {
		t.Errorf("pending frames = %d, want 0 for a still cursor", rig.queue.Pending())
	}
}

func TestRouterClick(t *testing.T) {
	rig := newRouterRig()
	rig.tick(pointerInput{cursorX: 400, cursorY: 300})
	rig.tick(pointerInput{cursorX: 400, cursorY: 300, clicked: true})
	if n := len(rig.router.grid.Ripples()); n != 2 {
		t.Errorf("ripples = %d, want move + click", n)
	}
	rig.tick(pointerInput{cursorX: 900, cursorY: 300, clicked: true})
	if n := len(rig.router.grid.Ripples()); n != 2 {
		t.Errorf("click outside the surface spawned a ripple (%d)", n)
	}
}

func TestRouterTouch(t *testing.T) {
	rig := newRouterRig()
	tap := touchPoint{200, 150}
	rig.tick(pointerInput{cursorX: -1, cursorY: -1, touches: []touchPoint{tap}, taps: []touchPoint{tap}})

	ts := rig.router.touch.Current()
	if !ts.Active || ts.X != -15 || ts.Y != -15 {
		t.Fatalf("touch state = %+v, want active at (-15,-15)", ts)
	}
	if n := len(rig.router.grid.Ripples()); n != 2 {
		t.Errorf("ripples = %d, want move + tap", n)
	}

	rig.tick(pointerInput{cursorX: -1, cursorY: -1})
	ts = rig.router.touch.Current()
	if ts.Active || ts.X != 0 || ts.Y != 0 {
		t.Errorf("touch after end = %+v, want origin", ts)
	}
	if fs := rig.router.frame.Current(); fs.Active || fs.X != -15 {
		t.Errorf("frame after end = %+v, want inactive holding x=-15", fs)
	}
}

func TestRouterClose(t *testing.T) {
	rig := newRouterRig()
	rig.router.route(pointerInput{cursorX: 10, cursorY: 10}, 800, 600)
	rig.router.close()
	if rig.queue.Pending() != 0 {
		t.Errorf("pending frames after close = %d", rig.queue.Pending())
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{75 * time.Minute, "1:15:00"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.d); got != tt.want {
			t.Errorf("formatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestPacingRatio(t *testing.T) {
	tests := []struct {
		d, budget time.Duration
		want      float64
	}{
		{25 * time.Millisecond, 50 * time.Millisecond, 0.5},
		{80 * time.Millisecond, 50 * time.Millisecond, 1},
		{-time.Millisecond, 50 * time.Millisecond, 0},
		{time.Millisecond, 0, 0},
	}
	for _, tt := range tests {
		if got := pacingRatio(tt.d, tt.budget); got != tt.want {
			t.Errorf("pacingRatio(%v, %v) = %v, want %v", tt.d, tt.budget, got, tt.want)
		}
	}
}
