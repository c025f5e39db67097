package effects

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/pointer"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

const (
	rippleStartOpacity = 0.5
	rippleStrokeWidth  = 1.5
	gridPointOpacity   = 3.0
)

// Ripple is a ring spreading from a pointer interaction. MaxRadius doubles as
// its lifetime in milliseconds: the ring reaches full size exactly when it
// expires.
type Ripple struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Opacity   float64
	Life      float64
	// Born is the clock reading at creation; only meaningful when the grid
	// has a clock.
	Born time.Duration

	timed bool
	fresh bool
}

// Expired reports whether the ripple has used up its lifetime.
func (r *Ripple) Expired() bool {
	return r.Life >= r.MaxRadius
}

// firstCharge is how much of the frame f a ripple pays on its first update:
// only the part after it was born, when that is known.
func (r *Ripple) firstCharge(f loop.Frame) float64 {
	if !r.timed {
		return f.Delta
	}
	since := float64(f.Now-r.Born) / float64(time.Millisecond)
	return math.Min(math.Max(since, 0), f.Delta)
}

// age adds dt milliseconds and recomputes radius and opacity.
func (r *Ripple) age(dt float64) {
	r.Life += dt
	life, span := float32(math.Min(r.Life, r.MaxRadius)), float32(r.MaxRadius)
	r.Radius = float64(ease.Linear(life, 0, span, span))
	r.Opacity = float64(ease.Linear(life, rippleStartOpacity, -rippleStartOpacity, span))
}

// ReactiveGrid is a shimmering lattice that spawns ripples where the pointer
// clicks or travels.
type ReactiveGrid struct {
	opts    config.Options
	rng     *rand.Rand
	tracker pointer.Tracker
	log     *slog.Logger

	w, h    float64
	lat     lattice
	ripples []Ripple
	elapsed float64

	tx, ty float64
	static bool
	clock  func() time.Duration

	moveX, moveY float64
	moved        bool
}

var _ loop.Driver = (*ReactiveGrid)(nil)

// NewReactiveGrid builds an unsized grid. tracker may be nil for a grid
// without parallax.
func NewReactiveGrid(opts config.Options, rng *rand.Rand, tracker pointer.Tracker, log *slog.Logger) *ReactiveGrid {
	if rng == nil {
		rng = NewRand(0)
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReactiveGrid{opts: opts, rng: rng, tracker: tracker, log: log}
}

// SetClock gives the grid the time base of loop.Frame.Now so ripples created
// between frames are not charged for time before they existed.
func (g *ReactiveGrid) SetClock(now func() time.Duration) {
	g.clock = now
}

// Points exposes the lattice.
func (g *ReactiveGrid) Points() []GridPoint {
	return g.lat.points
}

// Ripples exposes the live ripples, oldest first.
func (g *ReactiveGrid) Ripples() []Ripple {
	return g.ripples
}

// Translation returns the parallax shift applied this frame.
func (g *ReactiveGrid) Translation() (float64, float64) {
	return g.tx, g.ty
}

func (g *ReactiveGrid) NeedsScrim() bool {
	return g.opts.Scrim
}

// Resize rebuilds the lattice. Live ripples keep their surface coordinates.
func (g *ReactiveGrid) Resize(w, h, dpr float64) {
	g.w, g.h = w, h
	g.lat.build(w, h, g.opts.GridCell(), g.rng)
	g.log.Debug("grid rebuilt", "cols", g.lat.cols, "rows", g.lat.rows, "cell", g.lat.cell)
}

// Click spawns a ripple at a surface-local position.
func (g *ReactiveGrid) Click(x, y float64) {
	if !g.opts.Interactive || g.static {
		return
	}
	g.addRipple(x, y)
}

// PointerMove spawns a ripple once the pointer has travelled RippleSpacing
// since the last move-spawned ripple.
func (g *ReactiveGrid) PointerMove(x, y float64) {
	if !g.opts.Interactive || g.static {
		return
	}
	if g.moved && math.Hypot(x-g.moveX, y-g.moveY) < config.RippleSpacing {
		return
	}
	g.moveX, g.moveY, g.moved = x, y, true
	g.addRipple(x, y)
}

func (g *ReactiveGrid) addRipple(x, y float64) {
	r := Ripple{
		X:         x - g.tx,
		Y:         y - g.ty,
		MaxRadius: uniform(g.rng, config.RippleMinRadius, config.RippleMaxRadius),
		Opacity:   rippleStartOpacity,
		fresh:     true,
	}
	if g.clock != nil {
		r.Born, r.timed = g.clock(), true
	}
	g.ripples = append(g.ripples, r)
	if n := len(g.ripples); n > config.MaxRipples {
		g.ripples = append(g.ripples[:0], g.ripples[n-config.MaxRipples:]...)
	}
}

func (g *ReactiveGrid) parallax() (float64, float64) {
	if g.tracker == nil || !g.opts.Interactive {
		return 0, 0
	}
	st := g.tracker.Current()
	return st.X * config.GridParallax, st.Y * config.GridParallax
}

func (g *ReactiveGrid) Update(f loop.Frame) {
	g.static = false
	g.elapsed = f.Elapsed
	g.tx, g.ty = g.parallax()
	g.lat.displace(f.Elapsed, g.opts.Intensity.ShimmerSpeed(), g.opts.Intensity.ShimmerAmplitude())

	live := g.ripples[:0]
	for _, r := range g.ripples {
		dt := f.Delta
		if r.fresh {
			dt, r.fresh = r.firstCharge(f), false
		}
		r.age(dt)
		if !r.Expired() {
			live = append(live, r)
		}
	}
	g.ripples = live
}

func (g *ReactiveGrid) Render(s surface.Surface, f loop.Frame) {
	s.Clear()
	s.Translate(g.tx, g.ty)
	defer s.ResetTransform()

	alpha := g.opts.Intensity.GridOpacity()
	speed := g.opts.Intensity.ShimmerSpeed()
	g.lat.drawLines(s, GridColor, alpha)
	for i := range g.lat.points {
		p := &g.lat.points[i]
		s.FillCircle(p.X, p.Y, pointRadius(p, g.elapsed, speed), GridColor, alpha*gridPointOpacity*p.Weight)
	}
	for i := range g.ripples {
		r := &g.ripples[i]
		s.StrokeCircle(r.X, r.Y, r.Radius, rippleStrokeWidth, Palette[0], r.Opacity)
	}
}

// RenderStatic draws the lattice at rest with no parallax and no ripples.
func (g *ReactiveGrid) RenderStatic(s surface.Surface) {
	g.static = true
	g.lat.rest()
	s.Clear()
	s.ResetTransform()

	alpha := g.opts.Intensity.GridOpacity()
	g.lat.drawLines(s, GridColor, alpha)
	for i := range g.lat.points {
		p := &g.lat.points[i]
		s.FillCircle(p.X, p.Y, gridPointBase*p.Weight, GridColor, alpha*gridPointOpacity*p.Weight)
	}
}
