package render

import (
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/ambientfx/internal/surface"
)

const (
	radialFallbackBands = 12
	conicFallbackRays   = 120
)

// Canvas is a surface.Surface backed by an offscreen ebiten.Image whose
// resolution is the logical size times the device pixel ratio.
type Canvas struct {
	img    *ebiten.Image
	w, h   float64
	dpr    float64
	tx, ty float64
	log    *slog.Logger

	radialOp ebiten.DrawRectShaderOptions
	conicOp  ebiten.DrawRectShaderOptions
}

// NewCanvas allocates a backing image for a w x h logical surface.
func NewCanvas(w, h, dpr float64, log *slog.Logger) *Canvas {
	if log == nil {
		log = slog.Default()
	}
	c := &Canvas{log: log}
	c.Resize(w, h, dpr)
	return c
}

// Resize reallocates the backing image when the device-pixel size changes.
func (c *Canvas) Resize(w, h, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	c.w, c.h, c.dpr = w, h, dpr
	bw, bh := surface.BackingSize(w, h, dpr)
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == bw && b.Dy() == bh {
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(bw, bh)
	c.log.Debug("canvas resized", "logical_w", w, "logical_h", h, "dpr", dpr, "backing_w", bw, "backing_h", bh)
}

// Image exposes the backing image for compositing.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

// DPR returns the device pixel ratio the canvas was sized for.
func (c *Canvas) DPR() float64 {
	return c.dpr
}

func (c *Canvas) Size() (float64, float64) {
	return c.w, c.h
}

func (c *Canvas) Clear() {
	c.img.Clear()
}

func (c *Canvas) Translate(dx, dy float64) {
	c.tx, c.ty = dx, dy
}

func (c *Canvas) ResetTransform() {
	c.tx, c.ty = 0, 0
}

func (c *Canvas) dev(x, y float64) (float32, float32) {
	return float32((x + c.tx) * c.dpr), float32((y + c.ty) * c.dpr)
}

func (c *Canvas) FillCircle(x, y, r float64, clr colorful.Color, alpha float64) {
	cx, cy := c.dev(x, y)
	vector.DrawFilledCircle(c.img, cx, cy, float32(r*c.dpr), surface.RGBA(clr, alpha), true)
}

func (c *Canvas) StrokeCircle(x, y, r, width float64, clr colorful.Color, alpha float64) {
	cx, cy := c.dev(x, y)
	vector.StrokeCircle(c.img, cx, cy, float32(r*c.dpr), float32(width*c.dpr), surface.RGBA(clr, alpha), true)
}

func (c *Canvas) Polyline(pts []surface.Point, width float64, clr colorful.Color, alpha float64) {
	if len(pts) < 2 {
		return
	}
	rgba := surface.RGBA(clr, alpha)
	sw := float32(width * c.dpr)
	x0, y0 := c.dev(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		x1, y1 := c.dev(p.X, p.Y)
		vector.StrokeLine(c.img, x0, y0, x1, y1, sw, rgba, true)
		x0, y0 = x1, y1
	}
}

func (c *Canvas) RadialGradient(x, y, r float64, clr colorful.Color, alpha float64) {
	if r <= 0 || alpha <= 0 {
		return
	}
	cx, cy := c.dev(x, y)
	rr := float32(r * c.dpr)

	shader := ensureRadialShader(c.log)
	if shader == nil {
		// Banded fallback: stacked discs accumulate towards the centre.
		step := alpha / radialFallbackBands
		for i := 0; i < radialFallbackBands; i++ {
			br := rr * float32(radialFallbackBands-i) / radialFallbackBands
			vector.DrawFilledCircle(c.img, cx, cy, br, surface.RGBA(clr, step), true)
		}
		return
	}

	size := int(math.Ceil(float64(rr) * 2))
	c.radialOp.GeoM.Reset()
	c.radialOp.GeoM.Translate(float64(cx-rr), float64(cy-rr))
	c.radialOp.Uniforms = map[string]any{
		"Center": []float32{cx, cy},
		"Radius": rr,
		"Tint":   tint(clr, alpha),
	}
	c.img.DrawRectShader(size, size, shader, &c.radialOp)
}

func (c *Canvas) ConicSweep(cx, cy, angle float64, clr colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	dx, dy := c.dev(cx, cy)

	shader := ensureConicShader(c.log)
	if shader == nil {
		reach := float32(math.Hypot(c.w, c.h) * c.dpr)
		for i := 0; i < conicFallbackRays; i++ {
			a := float64(i) / conicFallbackRays
			w := math.Max(1-a*4, 0) + math.Max(a*4-3, 0)
			if w == 0 {
				continue
			}
			theta := angle + a*2*math.Pi
			x1 := dx + reach*float32(math.Cos(theta))
			y1 := dy + reach*float32(math.Sin(theta))
			vector.StrokeLine(c.img, dx, dy, x1, y1, 2*float32(c.dpr), surface.RGBA(clr, alpha*w), true)
		}
		return
	}

	b := c.img.Bounds()
	c.conicOp.GeoM.Reset()
	c.conicOp.Uniforms = map[string]any{
		"Center": []float32{dx, dy},
		"Angle":  float32(angle),
		"Tint":   tint(clr, alpha),
	}
	c.img.DrawRectShader(b.Dx(), b.Dy(), shader, &c.conicOp)
}

func tint(clr colorful.Color, alpha float64) []float32 {
	a := math.Min(math.Max(alpha, 0), 1)
	cc := clr.Clamped()
	return []float32{float32(cc.R * a), float32(cc.G * a), float32(cc.B * a), float32(a)}
}
