package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Pointer sampling
	PointerThrottleMs = 16.0
	PointerMaxOffset  = 30.0
	SmoothingFactor   = 0.6

	// Particle field
	ParticleAreaPerUnit = 8000.0

	// Reactive grid
	GridOverscanCells = 2
	MaxRipples        = 5
	RippleMinRadius   = 150.0
	RippleMaxRadius   = 250.0
	RippleSpacing     = 48.0
	GridParallax      = 0.6

	// Ambient renderer
	BlobCount        = 3
	ProximityFalloff = 200.0
	FrameRingSize    = 120
)

var (
	ErrUnknownIntensity = errors.New("unknown intensity")
	ErrInvalidSize      = errors.New("invalid window size")
)

// Intensity selects one column of every preset table.
type Intensity int

const (
	Low Intensity = iota
	Medium
	High
)

// ParseIntensity accepts the long names and the sm/md/lg shorthands.
func ParseIntensity(s string) (Intensity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "sm":
		return Low, nil
	case "medium", "md", "":
		return Medium, nil
	case "high", "lg":
		return High, nil
	}
	return Medium, fmt.Errorf("%w: %q", ErrUnknownIntensity, s)
}

func (i Intensity) String() string {
	switch i {
	case Low:
		return "low"
	case High:
		return "high"
	default:
		return "medium"
	}
}

func (i Intensity) pick(low, medium, high float64) float64 {
	switch i {
	case Low:
		return low
	case High:
		return high
	default:
		return medium
	}
}

// DensityMultiplier scales the particle count.
func (i Intensity) DensityMultiplier() float64 { return i.pick(0.5, 1, 1.5) }

// SpeedMultiplier scales particle velocity and pulse speed.
func (i Intensity) SpeedMultiplier() float64 { return i.pick(0.7, 1, 1.3) }

// CellSize is the grid lattice spacing in CSS pixels.
func (i Intensity) CellSize() float64 { return i.pick(60, 80, 100) }

// ShimmerSpeed is the grid oscillator angular speed in radians per ms.
func (i Intensity) ShimmerSpeed() float64 { return i.pick(0.0004, 0.0006, 0.0009) }

// ShimmerAmplitude is the peak grid point displacement in pixels.
func (i Intensity) ShimmerAmplitude() float64 { return i.pick(3, 5, 8) }

// GridOpacity is the line opacity of the grid passes.
func (i Intensity) GridOpacity() float64 { return i.pick(0.08, 0.12, 0.18) }

// PointerScale multiplies the normalized pointer offset before clamping.
func (i Intensity) PointerScale() float64 { return i.pick(0.5, 1, 1.5) }

// BlobOpacity is the centre opacity of the ambient radial blobs.
func (i Intensity) BlobOpacity() float64 { return i.pick(0.18, 0.28, 0.4) }

// BeamSpeed is the conic sweep angular speed in radians per ms.
func (i Intensity) BeamSpeed() float64 { return i.pick(0.00005, 0.0001, 0.00016) }

// BeamOpacity is the peak alpha of the conic sweep.
func (i Intensity) BeamOpacity() float64 { return i.pick(0.05, 0.08, 0.12) }

// Options is the mount contract shared by every driver.
type Options struct {
	Intensity   Intensity
	Interactive bool
	// Scrim asks the host for an overlay; drivers never paint it.
	Scrim bool

	// Density overrides Intensity for the particle count only.
	Density *Intensity
	// CellSize overrides the grid preset when > 0.
	CellSize float64

	// Ambient renderer passes.
	Blobs bool
	Grid  bool
	Beam  bool
}

// DefaultOptions returns medium intensity, interactive, all passes on.
func DefaultOptions() Options {
	return Options{
		Intensity:   Medium,
		Interactive: true,
		Blobs:       true,
		Grid:        true,
		Beam:        true,
	}
}

// ParticleDensity resolves the density selector.
func (o Options) ParticleDensity() Intensity {
	if o.Density != nil {
		return *o.Density
	}
	return o.Intensity
}

// GridCell resolves the cell size selector.
func (o Options) GridCell() float64 {
	if o.CellSize > 0 {
		return o.CellSize
	}
	return o.Intensity.CellSize()
}
