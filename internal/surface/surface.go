// Package surface defines the drawing target an effect driver paints into.
//
// Coordinates are logical (CSS-pixel) units. Implementations own the mapping
// to device pixels, so drivers never see the device pixel ratio.
package surface

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a logical-space coordinate.
type Point struct {
	X, Y float64
}

// Surface is a 2D raster target exclusively owned by one driver.
type Surface interface {
	// Size returns the logical width and height.
	Size() (w, h float64)
	// Clear makes every pixel transparent.
	Clear()
	// Translate sets the offset added to every following draw call.
	Translate(dx, dy float64)
	// ResetTransform drops the translation.
	ResetTransform()

	FillCircle(x, y, r float64, c colorful.Color, alpha float64)
	StrokeCircle(x, y, r, width float64, c colorful.Color, alpha float64)
	Polyline(pts []Point, width float64, c colorful.Color, alpha float64)
	// RadialGradient paints a disc fading from alpha at the centre to zero at r.
	RadialGradient(x, y, r float64, c colorful.Color, alpha float64)
	// ConicSweep fills the whole surface with a wedge of light rotated to angle radians.
	ConicSweep(cx, cy, angle float64, c colorful.Color, alpha float64)
}

// BackingSize returns the device-pixel dimensions for a logical size.
func BackingSize(w, h, dpr float64) (int, int) {
	if dpr <= 0 {
		dpr = 1
	}
	bw := int(math.Ceil(w * dpr))
	bh := int(math.Ceil(h * dpr))
	return max(bw, 1), max(bh, 1)
}

// MustHex parses a "#rrggbb" colour and panics on malformed input. It is meant
// for package-level palette literals.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("surface: bad colour %q: %v", s, err))
	}
	return c
}

// RGBA converts c at the given opacity to a premultiplied color.RGBA.
func RGBA(c colorful.Color, alpha float64) color.RGBA {
	a := clamp01(alpha)
	cc := c.Clamped()
	return color.RGBA{
		R: uint8(math.Round(cc.R * a * 255)),
		G: uint8(math.Round(cc.G * a * 255)),
		B: uint8(math.Round(cc.B * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
