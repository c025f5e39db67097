package effects

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

const (
	gridLineWidth  = 1.0
	gridPointBase  = 1.2
	gridPointPulse = 1.3
)

// GridPoint is one lattice node. X, Y always equal the origin plus a bounded
// oscillation, so a point never drifts away from rest.
type GridPoint struct {
	OriginX, OriginY float64
	X, Y             float64
	Phase            float64
	Weight           float64
}

// Displacement is the offset of a lattice point from rest. It depends only on
// its arguments, so any frame can be reproduced from elapsed time and phase.
// The magnitude never exceeds 1.5*amp on either axis.
func Displacement(t, phase, speed, amp float64) (dx, dy float64) {
	a := t*speed + phase
	dx = math.Sin(a)*amp + math.Sin(a*0.6+phase*1.7)*amp*0.5
	dy = math.Cos(a*0.9)*amp + math.Cos(a*0.5+phase*1.3)*amp*0.5
	return dx, dy
}

// lattice is the point model shared by ReactiveGrid and the ambient grid pass.
type lattice struct {
	cols, rows int
	cell       float64
	points     []GridPoint
	line       []surface.Point
}

// build lays out a lattice that overscans the surface by two cells per side.
func (l *lattice) build(w, h, cell float64, rng *rand.Rand) {
	margin := float64(config.GridOverscanCells) * cell
	l.cell = cell
	l.cols = int(math.Ceil((w+2*margin)/cell)) + 1
	l.rows = int(math.Ceil((h+2*margin)/cell)) + 1
	l.points = make([]GridPoint, l.cols*l.rows)
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			p := &l.points[r*l.cols+c]
			p.OriginX = -margin + float64(c)*cell
			p.OriginY = -margin + float64(r)*cell
			p.X, p.Y = p.OriginX, p.OriginY
			p.Phase = rng.Float64() * 2 * math.Pi
			p.Weight = uniform(rng, 0.5, 1.0)
		}
	}
	l.line = make([]surface.Point, max(l.cols, l.rows))
}

func (l *lattice) at(r, c int) *GridPoint {
	return &l.points[r*l.cols+c]
}

func (l *lattice) displace(t, speed, amp float64) {
	for i := range l.points {
		p := &l.points[i]
		dx, dy := Displacement(t, p.Phase, speed, amp)
		p.X, p.Y = p.OriginX+dx, p.OriginY+dy
	}
}

func (l *lattice) rest() {
	for i := range l.points {
		p := &l.points[i]
		p.X, p.Y = p.OriginX, p.OriginY
	}
}

// drawLines strokes one polyline per row and per column through the
// displaced points.
func (l *lattice) drawLines(s surface.Surface, clr colorful.Color, alpha float64) {
	for r := 0; r < l.rows; r++ {
		pts := l.line[:l.cols]
		for c := 0; c < l.cols; c++ {
			p := l.at(r, c)
			pts[c] = surface.Point{X: p.X, Y: p.Y}
		}
		s.Polyline(pts, gridLineWidth, clr, alpha)
	}
	for c := 0; c < l.cols; c++ {
		pts := l.line[:l.rows]
		for r := 0; r < l.rows; r++ {
			p := l.at(r, c)
			pts[r] = surface.Point{X: p.X, Y: p.Y}
		}
		s.Polyline(pts, gridLineWidth, clr, alpha)
	}
}

// pulse is a 0..1 phase-driven size oscillator.
func pulse(t, speed, phase float64) float64 {
	return 0.5 + 0.5*math.Sin(t*speed*2+phase)
}

func pointRadius(p *GridPoint, t, speed float64) float64 {
	return (gridPointBase + gridPointPulse*pulse(t, speed, p.Phase)) * p.Weight
}
