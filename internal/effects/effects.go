// Package effects holds the animated background drivers.
//
// Each driver implements loop.Driver and owns its point set exclusively. The
// loop decides between Update+Render and RenderStatic; drivers remember which
// branch ran last so interaction can be ignored while motion is reduced.
package effects

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/ambientfx/internal/surface"
)

// Palette is the three-colour scheme shared by particles and blobs.
var Palette = [3]colorful.Color{
	surface.MustHex("#6366f1"),
	surface.MustHex("#a855f7"),
	surface.MustHex("#22d3ee"),
}

// GridColor tints lattice lines and points.
var GridColor = surface.MustHex("#94a3b8")

// NewRand returns a seeded generator; seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// wrap maps v into [0,size).
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}
