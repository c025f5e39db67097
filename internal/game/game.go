// Package game hosts the effect drivers in an Ebiten window: it flushes the
// frame queue once per tick, maps window state onto the environment signals,
// routes pointer input and composites the layers.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/effects"
	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/pointer"
	"github.com/iburimskiy/ambientfx/internal/signal"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

const scrimAlpha = 0.55

var (
	background = surface.MustHex("#0b1020")
	scrimColor = surface.MustHex("#020617")
)

// Game implements ebiten.Game.
type Game struct {
	app config.App
	log *slog.Logger

	start    time.Time
	lastTick time.Duration
	queue    *loop.Queue

	visible       *signal.Switch
	systemReduced *signal.Switch
	override      bool
	env           *signal.Env

	router    pointerRouter
	grid      *effects.ReactiveGrid
	particles *effects.ParticleField
	layers    []*layer
	mounted   bool

	view resizeCoalescer
	ring *frameRing
	hud  bool
}

// New wires the drivers, trackers and environment. Nothing is mounted until
// the first Layout reports a window size.
func New(app config.App, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	g := &Game{
		app:           app,
		log:           log,
		start:         time.Now(),
		queue:         loop.NewQueue(),
		visible:       signal.NewSwitch(true),
		systemReduced: signal.NewSwitch(app.SystemReducedMotion),
		override:      app.ReducedMotionOverride,
		ring:          newFrameRing(config.FrameRingSize),
		hud:           app.DebugHUD,
	}
	g.env = signal.NewEnv(g.systemReduced, func() bool { return g.override }, g.visible)

	opts := app.Options
	rng := effects.NewRand(app.Seed)
	pcfg := pointer.DefaultConfig(opts.Intensity)
	g.router.frame = pointer.NewFrameTracker(pcfg, g.queue, g.env, log.With("tracker", "frame"))
	g.router.touch = pointer.NewTouchTracker(pcfg, g.queue, g.env, log.With("tracker", "touch"))

	ambient := effects.NewAmbientLayeredRenderer(opts, rng, g.router.touch, log)
	g.grid = effects.NewReactiveGrid(opts, rng, g.router.frame, log)
	// Input is routed before the flush of the same tick, so clicks share its timestamp.
	g.grid.SetClock(func() time.Duration { return g.lastTick })
	g.particles = effects.NewParticleField(opts, rng, log)
	g.router.grid = g.grid

	g.layers = []*layer{
		newLayer("ambient", ambient, g.queue, g.env, log),
		newLayer("grid", g.grid, g.queue, g.env, log),
		newLayer("particles", g.particles, g.queue, g.env, log),
	}
	return g
}

func (g *Game) Update() error {
	now := time.Since(g.start)
	if g.lastTick > 0 {
		g.ring.push(now - g.lastTick)
	}
	g.lastTick = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.systemReduced.Set(!g.systemReduced.Get())
		g.log.Info("system reduced motion toggled", "reduced", g.systemReduced.Get())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.override = !g.override
		g.log.Info("reduced motion override toggled", "override", g.override)
	}

	// A minimised window is the hidden document: loops pause and do not catch up.
	g.visible.Set(!ebiten.IsWindowMinimized())
	g.env.Motion.Poll()

	if err := g.applyViewport(); err != nil {
		return err
	}
	if g.mounted {
		v := g.view.current
		g.router.route(g.router.poll(v.dpr), v.w, v.h)
	}

	g.queue.Flush(now)
	return nil
}

func (g *Game) applyViewport() error {
	v, changed := g.view.take()
	if !changed {
		return nil
	}
	g.router.setViewport(v.w, v.h)
	if g.mounted {
		for _, l := range g.layers {
			l.resize(v)
		}
		return nil
	}
	for _, l := range g.layers {
		if err := l.mount(v); err != nil {
			return fmt.Errorf("mount %s: %w", l.name, err)
		}
	}
	g.mounted = true
	g.log.Info("layers mounted", "w", v.w, "h", v.h, "dpr", v.dpr, "intensity", g.app.Options.Intensity, "reduced_motion", g.env.CurrentReducedMotion())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(surface.RGBA(background, 1))
	scrim := false
	for _, l := range g.layers {
		l.draw(screen)
		scrim = scrim || l.wantsScrim()
	}
	if scrim {
		b := screen.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), surface.RGBA(scrimColor, scrimAlpha), false)
	}
	if g.hud {
		g.drawHUD(screen, time.Since(g.start))
	}
}

// Layout renders at device resolution so canvases composite 1:1.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := 1.0
	if m := ebiten.Monitor(); m != nil {
		dpr = m.DeviceScaleFactor()
	}
	g.view.observe(float64(outsideWidth), float64(outsideHeight), dpr)
	return surface.BackingSize(float64(outsideWidth), float64(outsideHeight), dpr)
}

// Close tears every layer down and drops the trackers' listeners.
func (g *Game) Close() {
	for _, l := range g.layers {
		l.unmount()
	}
	g.router.close()
	g.log.Debug("game closed", "pending_frames", g.queue.Pending())
}
