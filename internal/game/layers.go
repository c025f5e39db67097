package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/render"
	"github.com/iburimskiy/ambientfx/internal/signal"
)

// scrimmer is implemented by drivers that can ask for a readability overlay.
type scrimmer interface {
	NeedsScrim() bool
}

// layer is one driver mounted on its own canvas. Layers are composited in
// slice order, bottom first.
type layer struct {
	name   string
	driver loop.Driver
	loop   *loop.Loop
	canvas *render.Canvas
	log    *slog.Logger
}

func newLayer(name string, d loop.Driver, sched loop.Scheduler, env signal.Environment, log *slog.Logger) *layer {
	return &layer{
		name:   name,
		driver: d,
		loop:   loop.New(name, d, sched, env, log),
		log:    log,
	}
}

func (l *layer) mount(v viewport) error {
	l.canvas = render.NewCanvas(v.w, v.h, v.dpr, l.log.With("layer", l.name))
	l.loop.Attach(l.canvas)
	return l.loop.Mount(v.w, v.h, v.dpr)
}

func (l *layer) resize(v viewport) {
	if l.canvas == nil {
		return
	}
	l.canvas.Resize(v.w, v.h, v.dpr)
	l.loop.Resize(v.w, v.h, v.dpr)
}

func (l *layer) draw(screen *ebiten.Image) {
	if l.canvas == nil || l.loop.Frames() == 0 {
		return
	}
	screen.DrawImage(l.canvas.Image(), nil)
}

func (l *layer) wantsScrim() bool {
	s, ok := l.driver.(scrimmer)
	return ok && s.NeedsScrim()
}

func (l *layer) unmount() {
	l.loop.Unmount()
	l.canvas = nil
}
