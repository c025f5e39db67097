package loop

import (
	"errors"
	"testing"
	"time"

	"github.com/iburimskiy/ambientfx/internal/signal"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

type fakeDriver struct {
	resizes  int
	updates  []Frame
	renders  int
	statics  int
	w, h     float64
	lastDraw surface.Surface
}

func (d *fakeDriver) Resize(w, h, dpr float64) { d.resizes++; d.w, d.h = w, h }
func (d *fakeDriver) Update(f Frame) { d.updates = append(d.updates, f) }
func (d *fakeDriver) Render(s surface.Surface, f Frame) {
	d.renders++
	d.lastDraw = s
}
func (d *fakeDriver) RenderStatic(s surface.Surface) { d.statics++ }

type rig struct {
	q       *Queue
	sys     *signal.Switch
	vis     *signal.Switch
	env     *signal.Env
	driver  *fakeDriver
	loop    *Loop
	now     time.Duration
	surface *surface.Recorder
}

func newRig(t *testing.T) *rig {
	t.Helper()
	r := &rig{
		q:       NewQueue(),
		sys:     signal.NewSwitch(false),
		vis:     signal.NewSwitch(true),
		driver:  &fakeDriver{},
		surface: surface.NewRecorder(800, 600),
	}
	r.env = signal.NewEnv(r.sys, nil, r.vis)
	r.loop = New("test", r.driver, r.q, r.env, nil)
	r.loop.Attach(r.surface)
	return r
}

// step advances the clock by ms and flushes one frame.
func (r *rig) step(ms int) int {
	r.now += time.Duration(ms) * time.Millisecond
	return r.q.Flush(r.now)
}

func TestMountSchedulesFirstFrame(t *testing.T) {
	r := newRig(t)
	if r.loop.State() != Uninitialized {
		t.Fatalf("state = %v, want uninitialized", r.loop.State())
	}
	if err := r.loop.Mount(800, 600, 2); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if r.loop.State() != Running {
		t.Errorf("state = %v, want running", r.loop.State())
	}
	if r.driver.resizes != 1 || r.driver.w != 800 {
		t.Errorf("driver not sized on mount: %+v", r.driver)
	}
	if r.q.Pending() != 1 {
		t.Errorf("pending = %d, want 1", r.q.Pending())
	}
	if err := r.loop.Mount(800, 600, 2); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("second Mount error = %v, want ErrAlreadyMounted", err)
	}
}

func TestElapsedAccumulates(t *testing.T) {
	r := newRig(t)
	r.loop.Mount(800, 600, 1)

	r.step(16) // first frame has no previous timestamp
	r.step(16)
	r.step(20)

	if got := r.loop.Elapsed(); got != 36 {
		t.Errorf("Elapsed = %v, want 36", got)
	}
	if len(r.driver.updates) != 3 || r.driver.renders != 3 {
		t.Errorf("updates/renders = %d/%d, want 3/3", len(r.driver.updates), r.driver.renders)
	}
	last := r.driver.updates[2]
	if last.Delta != 20 || last.Elapsed != 36 || last.Seq != 3 {
		t.Errorf("last frame = %+v", last)
	}
}

func TestVisibilityPausesAndResumesWithoutCatchUp(t *testing.T) {
	r := newRig(t)
	r.loop.Mount(800, 600, 1)
	r.step(16)
	r.step(16)
	before := r.loop.Frames()

	r.vis.Set(false)
	if r.loop.State() != Paused {
		t.Fatalf("state = %v, want paused", r.loop.State())
	}
	if r.q.Pending() != 0 || r.loop.Pending() {
		t.Error("hiding must cancel the scheduled frame")
	}
	for i := 0; i < 10; i++ {
		if ran := r.step(16); ran != 0 {
			t.Fatalf("frame ran while hidden")
		}
	}
	if r.loop.Frames() != before {
		t.Errorf("frames advanced while hidden: %d -> %d", before, r.loop.Frames())
	}
	elapsed := r.loop.Elapsed()

	r.vis.Set(true)
	if r.loop.State() != Running || r.q.Pending() != 1 {
		t.Fatalf("resume: state=%v pending=%d", r.loop.State(), r.q.Pending())
	}
	r.step(5000)
	if got := r.loop.Elapsed(); got != elapsed {
		t.Errorf("first frame after resume added %v ms, want 0", got-elapsed)
	}
	r.step(16)
	if got := r.loop.Elapsed(); got != elapsed+16 {
		t.Errorf("Elapsed = %v, want %v", got, elapsed+16)
	}
}

func TestMountWhileHiddenStartsPaused(t *testing.T) {
	r := newRig(t)
	r.vis.Set(false)
	r.loop.Mount(800, 600, 1)
	if r.loop.State() != Paused || r.q.Pending() != 0 {
		t.Fatalf("state=%v pending=%d, want paused with nothing scheduled", r.loop.State(), r.q.Pending())
	}
	r.vis.Set(true)
	if r.q.Pending() != 1 {
		t.Error("becoming visible should schedule a frame")
	}
}

func TestReducedMotionFreezesTimeAndKeepsScheduling(t *testing.T) {
	r := newRig(t)
	r.loop.Mount(800, 600, 1)
	r.step(16)
	r.step(16)
	frozen := r.loop.Elapsed()
	renders := r.driver.renders

	r.sys.Set(true)
	for i := 0; i < 5; i++ {
		r.step(16)
		if r.q.Pending() != 1 {
			t.Fatalf("frame %d: loop stopped scheduling under reduced motion", i)
		}
	}
	if r.loop.Elapsed() != frozen {
		t.Errorf("Elapsed = %v, want frozen at %v", r.loop.Elapsed(), frozen)
	}
	if r.driver.renders != renders {
		t.Errorf("animated renders under reduced motion: %d", r.driver.renders-renders)
	}
	if r.driver.statics != 1 {
		t.Errorf("static renders = %d, want 1", r.driver.statics)
	}
	if !r.loop.ReducedMotion() {
		t.Error("ReducedMotion = false, want true")
	}

	r.sys.Set(false)
	r.step(16)
	if got := r.loop.Elapsed(); got != frozen+16 {
		t.Errorf("Elapsed after resume = %v, want %v (no catch-up)", got, frozen+16)
	}
}

func TestReducedMotionStaticRedrawnAfterResize(t *testing.T) {
	r := newRig(t)
	r.sys.Set(true)
	r.loop.Mount(800, 600, 1)
	r.step(16)
	r.step(16)
	if r.driver.statics != 1 {
		t.Fatalf("statics = %d, want 1", r.driver.statics)
	}
	r.loop.Resize(1024, 768, 1)
	r.step(16)
	if r.driver.statics != 2 {
		t.Errorf("statics = %d, want 2 after resize", r.driver.statics)
	}
	if r.driver.resizes != 2 {
		t.Errorf("resizes = %d, want 2", r.driver.resizes)
	}
}

func TestMissingSurfaceSkipsFrame(t *testing.T) {
	r := newRig(t)
	r.loop.Attach(nil)
	r.loop.Mount(800, 600, 1)
	r.step(16)
	r.step(16)
	if r.driver.renders != 0 || r.loop.Elapsed() != 0 {
		t.Errorf("rendered without a surface: renders=%d elapsed=%v", r.driver.renders, r.loop.Elapsed())
	}
	if r.q.Pending() != 1 {
		t.Error("loop should retry next frame")
	}
	r.loop.Attach(r.surface)
	r.step(16)
	r.step(16)
	if r.driver.renders != 2 || r.loop.Elapsed() != 32 {
		t.Errorf("renders=%d elapsed=%v, want 2 and 32", r.driver.renders, r.loop.Elapsed())
	}
}

func TestUnmountCancelsAndUnsubscribes(t *testing.T) {
	r := newRig(t)
	r.loop.Mount(800, 600, 1)
	r.step(16)

	r.loop.Unmount()
	if r.loop.State() != TornDown {
		t.Fatalf("state = %v, want torn down", r.loop.State())
	}
	if r.q.Pending() != 0 {
		t.Error("pending frame leaked past unmount")
	}
	if r.vis.Listeners() != 0 || r.sys.Listeners() != 0 {
		t.Errorf("listeners leaked: vis=%d sys=%d", r.vis.Listeners(), r.sys.Listeners())
	}

	r.vis.Set(false)
	r.vis.Set(true)
	if r.q.Pending() != 0 {
		t.Error("visibility after teardown scheduled a frame")
	}
	if err := r.loop.Mount(800, 600, 1); !errors.Is(err, ErrTornDown) {
		t.Errorf("Mount after teardown error = %v, want ErrTornDown", err)
	}
	r.loop.Unmount()
}

func TestUnmountWhilePaused(t *testing.T) {
	r := newRig(t)
	r.loop.Mount(800, 600, 1)
	r.vis.Set(false)
	r.loop.Unmount()
	r.vis.Set(true)
	if r.q.Pending() != 0 || r.loop.State() != TornDown {
		t.Errorf("pending=%d state=%v", r.q.Pending(), r.loop.State())
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Uninitialized: "uninitialized",
		Running:       "running",
		Paused:        "paused",
		TornDown:      "torn_down",
		State(42):     "unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(s), got, want)
		}
	}
}
