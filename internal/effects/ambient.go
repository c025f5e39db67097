package effects

import (
	"log/slog"
	"math"
	"math/rand/v2"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/pointer"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

const (
	blobRadiusScale = 0.45
	blobDriftScale  = 0.04
	blobDriftSpeed  = 0.00025
	blobFadeInMs    = 1200.0

	// Per-colour phase offsets and the slower vertical rate of the drift.
	blobPhaseX    = 2.1
	blobPhaseY    = 1.3
	blobDriftRate = 0.8

	// Noise-space separation between blobs when picking drift amplitudes.
	blobNoiseSpacing = 17.3
	blobNoiseOffset  = 101.7

	proximityOpacityBoost = 4.0
	proximitySizeBoost    = 2.5
)

// AmbientLayeredRenderer composites, in order, a blob pass, a grid pass with
// pointer-proximity highlighting and a rotating conic beam.
type AmbientLayeredRenderer struct {
	opts    config.Options
	rng     *rand.Rand
	tracker pointer.Tracker
	log     *slog.Logger

	// driftAmp scales each colour's drift into [0.5, 1] of blobDriftScale.
	driftAmp []float64

	w, h float64
	lat  lattice
}

var _ loop.Driver = (*AmbientLayeredRenderer)(nil)

// NewAmbientLayeredRenderer builds an unsized renderer. tracker may be nil.
func NewAmbientLayeredRenderer(opts config.Options, rng *rand.Rand, tracker pointer.Tracker, log *slog.Logger) *AmbientLayeredRenderer {
	if rng == nil {
		rng = NewRand(0)
	}
	if log == nil {
		log = slog.Default()
	}
	return &AmbientLayeredRenderer{
		opts:     opts,
		rng:      rng,
		tracker:  tracker,
		log:      log,
		driftAmp: driftAmplitudes(opensimplex.New(rng.Int64()), len(Palette)),
	}
}

func (a *AmbientLayeredRenderer) NeedsScrim() bool {
	return a.opts.Scrim
}

// Points exposes the grid pass lattice.
func (a *AmbientLayeredRenderer) Points() []GridPoint {
	return a.lat.points
}

func (a *AmbientLayeredRenderer) Resize(w, h, dpr float64) {
	a.w, a.h = w, h
	a.lat.build(w, h, a.opts.GridCell(), a.rng)
	a.log.Debug("ambient resized", "w", w, "h", h, "points", len(a.lat.points))
}

// BlobBase is the resting centre of blob i on a w x h surface.
func BlobBase(i int, w, h float64) (float64, float64) {
	fi := float64(i)
	return w * (0.25 + 0.25*fi), h * (0.3 + 0.2*fi)
}

// BlobParallax is how strongly blob i follows the pointer; later blobs sit closer.
func BlobParallax(i int) float64 {
	return 0.5 * float64(i+1)
}

// BeamAngle is the conic sweep rotation after t milliseconds.
func BeamAngle(t float64, i config.Intensity) float64 {
	return math.Mod(t*i.BeamSpeed(), 2*math.Pi)
}

// Proximity is the highlight weight of a point at distance d from the
// pointer: 1 - d/falloff inside the falloff radius, 0 outside.
func Proximity(d, falloff float64) float64 {
	if d >= falloff || falloff <= 0 {
		return 0
	}
	return float64(ease.Linear(float32(falloff-math.Max(d, 0)), 0, 1, float32(falloff)))
}

func (a *AmbientLayeredRenderer) pointerState() pointer.State {
	if a.tracker == nil || !a.opts.Interactive {
		return pointer.State{}
	}
	return a.tracker.Current()
}

// Update only moves the lattice; blobs and beam are pure functions of time.
func (a *AmbientLayeredRenderer) Update(f loop.Frame) {
	if a.opts.Grid {
		a.lat.displace(f.Elapsed, a.opts.Intensity.ShimmerSpeed(), a.opts.Intensity.ShimmerAmplitude())
	}
}

func (a *AmbientLayeredRenderer) Render(s surface.Surface, f loop.Frame) {
	st := a.pointerState()
	s.Clear()
	if a.opts.Blobs {
		a.drawBlobs(s, f.Elapsed, st)
	}
	if a.opts.Grid {
		a.drawGrid(s, f.Elapsed, st)
	}
	if a.opts.Beam {
		a.drawBeam(s, f.Elapsed)
	}
}

// RenderStatic draws blobs at rest and dimmed, the lattice at rest, no beam.
func (a *AmbientLayeredRenderer) RenderStatic(s surface.Surface) {
	s.Clear()
	s.ResetTransform()
	if a.opts.Blobs {
		r := math.Max(a.w, a.h) * blobRadiusScale
		alpha := a.opts.Intensity.BlobOpacity() * 0.5
		for i, c := range Palette {
			x, y := BlobBase(i, a.w, a.h)
			s.RadialGradient(x, y, r, c, alpha)
		}
	}
	if a.opts.Grid {
		a.lat.rest()
		alpha := a.opts.Intensity.GridOpacity()
		a.lat.drawLines(s, GridColor, alpha)
		for i := range a.lat.points {
			p := &a.lat.points[i]
			s.FillCircle(p.X, p.Y, gridPointBase*p.Weight, GridColor, alpha*gridPointOpacity*p.Weight)
		}
	}
}

func (a *AmbientLayeredRenderer) drawBlobs(s surface.Surface, t float64, st pointer.State) {
	r := math.Max(a.w, a.h) * blobRadiusScale
	fade := float64(ease.OutQuad(float32(math.Min(t, blobFadeInMs)), 0, 1, blobFadeInMs))
	alpha := a.opts.Intensity.BlobOpacity() * fade
	for i, c := range Palette {
		x, y := BlobBase(i, a.w, a.h)
		k := BlobParallax(i)
		dx, dy := a.blobDrift(t, i)
		x += st.X*k + dx
		y += st.Y*k + dy
		s.RadialGradient(x, y, r, c, alpha)
	}
}

func driftAmplitudes(n opensimplex.Noise, count int) []float64 {
	amp := make([]float64, count)
	for i := range amp {
		v := n.Eval2(float64(i)*blobNoiseSpacing, blobNoiseOffset)
		amp[i] = 0.75 + 0.25*math.Max(-1, math.Min(1, v))
	}
	return amp
}

// blobDrift is the slow sinusoidal offset of blob i from its base. Each
// colour runs at its own rate and phase.
func (a *AmbientLayeredRenderer) blobDrift(t float64, i int) (float64, float64) {
	fi := float64(i)
	w := blobDriftSpeed * (fi + 1)
	amp := a.driftAmp[i] * blobDriftScale
	dx := math.Sin(t*w+fi*blobPhaseX) * a.w * amp
	dy := math.Cos(t*w*blobDriftRate+fi*blobPhaseY) * a.h * amp
	return dx, dy
}

func (a *AmbientLayeredRenderer) drawGrid(s surface.Surface, t float64, st pointer.State) {
	tx, ty := st.X*config.GridParallax, st.Y*config.GridParallax
	s.Translate(tx, ty)
	defer s.ResetTransform()

	alpha := a.opts.Intensity.GridOpacity()
	speed := a.opts.Intensity.ShimmerSpeed()
	a.lat.drawLines(s, GridColor, alpha)
	for i := range a.lat.points {
		p := &a.lat.points[i]
		radius := pointRadius(p, t, speed)
		opacity := alpha * gridPointOpacity * p.Weight
		if st.Active {
			d := math.Hypot(p.X+tx-st.ViewportX, p.Y+ty-st.ViewportY)
			if k := Proximity(d, config.ProximityFalloff); k > 0 {
				opacity *= 1 + proximityOpacityBoost*k
				radius *= 1 + proximitySizeBoost*k
			}
		}
		s.FillCircle(p.X, p.Y, radius, GridColor, math.Min(opacity, 1))
	}
}

func (a *AmbientLayeredRenderer) drawBeam(s surface.Surface, t float64) {
	angle := BeamAngle(t, a.opts.Intensity)
	c := Palette[0].BlendLab(Palette[2], 0.5+0.5*math.Sin(angle)).Clamped()
	s.ConicSweep(a.w/2, a.h/2, angle, c, a.opts.Intensity.BeamOpacity())
}
