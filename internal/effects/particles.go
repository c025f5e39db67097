package effects

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/ambientfx/internal/config"
	"github.com/iburimskiy/ambientfx/internal/loop"
	"github.com/iburimskiy/ambientfx/internal/surface"
)

const (
	particleGlowScale   = 4.0
	particleGlowOpacity = 0.35
)

// Particle is one drifting point. Radius and BaseOpacity never change after
// creation; Opacity is derived from the pulse every frame.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Radius      float64
	BaseOpacity float64
	Opacity     float64
	Color       colorful.Color
	Phase       float64
	PulseSpeed  float64
}

// ParticleCount is floor(w*h/8000) scaled by the density multiplier, floored.
func ParticleCount(w, h float64, density config.Intensity) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	base := math.Floor(w * h / config.ParticleAreaPerUnit)
	return int(math.Floor(base * density.DensityMultiplier()))
}

// ParticleField drifts particles across the surface with toroidal wrap.
type ParticleField struct {
	opts config.Options
	rng  *rand.Rand
	log  *slog.Logger

	w, h      float64
	particles []Particle
}

var _ loop.Driver = (*ParticleField)(nil)

// NewParticleField builds an empty field; the first Resize populates it.
func NewParticleField(opts config.Options, rng *rand.Rand, log *slog.Logger) *ParticleField {
	if rng == nil {
		rng = NewRand(0)
	}
	if log == nil {
		log = slog.Default()
	}
	return &ParticleField{opts: opts, rng: rng, log: log}
}

// Particles exposes the live set. Callers must not retain it across Resize.
func (p *ParticleField) Particles() []Particle {
	return p.particles
}

// NeedsScrim reports whether the host should overlay a scrim.
func (p *ParticleField) NeedsScrim() bool {
	return p.opts.Scrim
}

// Resize discards every particle and generates a new set for the new size.
func (p *ParticleField) Resize(w, h, dpr float64) {
	p.w, p.h = w, h
	n := ParticleCount(w, h, p.opts.ParticleDensity())

	p.particles = make([]Particle, n)
	for i := range p.particles {
		pt := &p.particles[i]
		pt.X = p.rng.Float64() * w
		pt.Y = p.rng.Float64() * h
		pt.VX = uniform(p.rng, -0.25, 0.25)
		pt.VY = uniform(p.rng, -0.15, 0.15)
		pt.Radius = uniform(p.rng, 1, 3)
		pt.BaseOpacity = uniform(p.rng, 0.3, 0.8)
		pt.Color = Palette[p.rng.IntN(len(Palette))]
		pt.Phase = p.rng.Float64() * 2 * math.Pi
		pt.PulseSpeed = uniform(p.rng, 0.01, 0.03)
		pt.Opacity = pulseOpacity(pt.Phase)
	}
	p.log.Debug("particles regenerated", "count", n, "w", w, "h", h)
}

// Update advances every particle one frame step.
func (p *ParticleField) Update(f loop.Frame) {
	speed := p.opts.Intensity.SpeedMultiplier()
	for i := range p.particles {
		pt := &p.particles[i]
		pt.X = wrap(pt.X+pt.VX*speed, p.w)
		pt.Y = wrap(pt.Y+pt.VY*speed, p.h)
		pt.Phase = math.Mod(pt.Phase+pt.PulseSpeed*speed, 2*math.Pi)
		pt.Opacity = pulseOpacity(pt.Phase)
	}
}

func pulseOpacity(phase float64) float64 {
	return (math.Sin(phase)*0.3 + 0.7) * 0.8
}

func (p *ParticleField) Render(s surface.Surface, f loop.Frame) {
	s.Clear()
	for i := range p.particles {
		pt := &p.particles[i]
		s.RadialGradient(pt.X, pt.Y, pt.Radius*particleGlowScale, pt.Color, pt.Opacity*particleGlowOpacity)
		s.FillCircle(pt.X, pt.Y, pt.Radius, pt.Color, pt.Opacity)
	}
}

// RenderStatic draws every particle at half its base opacity without glow.
func (p *ParticleField) RenderStatic(s surface.Surface) {
	s.Clear()
	for i := range p.particles {
		pt := &p.particles[i]
		s.FillCircle(pt.X, pt.Y, pt.Radius, pt.Color, pt.BaseOpacity*0.5)
	}
}
