package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/ambientfx/internal/effects"
	"github.com/iburimskiy/ambientfx/internal/pointer"
)

type touchPoint struct {
	x, y float64
}

// pointerInput is one tick of raw pointer state in logical pixels.
type pointerInput struct {
	cursorX, cursorY float64
	clicked          bool
	touches          []touchPoint
	taps             []touchPoint
}

// pointerRouter turns polled input into tracker samples and grid ripples.
// The first active touch wins over the mouse cursor.
type pointerRouter struct {
	frame *pointer.FrameTracker
	touch *pointer.TouchTracker
	grid  *effects.ReactiveGrid

	inside       bool
	touching     bool
	lastX, lastY float64

	touchIDs []ebiten.TouchID
	tapIDs   []ebiten.TouchID
	in       pointerInput
}

// poll reads Ebiten's input state; dpr maps screen pixels back to logical ones.
func (r *pointerRouter) poll(dpr float64) pointerInput {
	if dpr <= 0 {
		dpr = 1
	}
	mx, my := ebiten.CursorPosition()
	r.in.cursorX, r.in.cursorY = float64(mx)/dpr, float64(my)/dpr
	r.in.clicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	r.in.touches = r.in.touches[:0]
	for _, id := range r.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		r.in.touches = append(r.in.touches, touchPoint{float64(tx) / dpr, float64(ty) / dpr})
	}
	r.tapIDs = inpututil.AppendJustPressedTouchIDs(r.tapIDs[:0])
	r.in.taps = r.in.taps[:0]
	for _, id := range r.tapIDs {
		tx, ty := ebiten.TouchPosition(id)
		r.in.taps = append(r.in.taps, touchPoint{float64(tx) / dpr, float64(ty) / dpr})
	}
	return r.in
}

func (r *pointerRouter) route(in pointerInput, w, h float64) {
	if len(in.touches) > 0 {
		t := in.touches[0]
		if !r.touching || t.x != r.lastX || t.y != r.lastY {
			r.move(t.x, t.y)
		}
		r.touching = true
		for _, tap := range in.taps {
			r.click(tap.x, tap.y)
		}
		return
	}
	if r.touching {
		r.touching = false
		r.inside = false
		r.end()
		return
	}

	inside := in.cursorX >= 0 && in.cursorX < w && in.cursorY >= 0 && in.cursorY < h
	switch {
	case inside:
		if !r.inside || in.cursorX != r.lastX || in.cursorY != r.lastY {
			r.move(in.cursorX, in.cursorY)
		}
		if in.clicked {
			r.click(in.cursorX, in.cursorY)
		}
	case r.inside:
		r.end()
	}
	r.inside = inside
}

func (r *pointerRouter) move(x, y float64) {
	r.lastX, r.lastY = x, y
	if r.frame != nil {
		r.frame.Move(x, y)
	}
	if r.touch != nil {
		r.touch.Move(x, y)
	}
	if r.grid != nil {
		r.grid.PointerMove(x, y)
	}
}

func (r *pointerRouter) click(x, y float64) {
	if r.grid != nil {
		r.grid.Click(x, y)
	}
}

func (r *pointerRouter) end() {
	if r.frame != nil {
		r.frame.Leave()
	}
	if r.touch != nil {
		r.touch.End()
	}
}

func (r *pointerRouter) setViewport(w, h float64) {
	if r.frame != nil {
		r.frame.SetViewport(w, h)
	}
	if r.touch != nil {
		r.touch.SetViewport(w, h)
	}
}

func (r *pointerRouter) close() {
	if r.frame != nil {
		r.frame.Close()
	}
	if r.touch != nil {
		r.touch.Close()
	}
}
