package particlefield

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	LayerCount = 3

	MaxParticles    = 80
	AreaPerParticle = 25000

	// Initial drift speed range, before layer scaling.
	MaxDrift = 0.5

	SizePulse  = 0.3
	AlphaPulse = 0.2

	RepelRadiusBase   = 120.0
	RepelStrengthBase = 0.08
	Damping           = 0.99

	ShiftAmount     = 0.3
	ColorDriftSpeed = 0.005
	ColorDriftScale = 0.002
	GlowAlpha       = 0.3

	CoreRadius = 2.0
	HaloRadius = 3.0

	ConnectDistance = 100.0
	ConnectAlpha    = 0.1
	ConnectWidth    = 0.5
)

// Palette is indigo, violet and cyan.
var Palette = []colorful.Color{
	rgb(99, 102, 241),
	rgb(139, 92, 246),
	rgb(6, 182, 212),
}

// Accent strokes the connective lines of the front layer.
var Accent = color.NRGBA{R: 99, G: 102, B: 241, A: 255}

// Budget is the particle count of the front layer for a w×h canvas.
func Budget(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return min(MaxParticles, w*h/AreaPerParticle)
}

// LayerScale shrinks size, alpha and speed of deeper layers.
func LayerScale(layer int) float64 {
	return 1 - float64(layer)*0.3
}

// LayerSize is the number of particles in layer for a given budget.
func LayerSize(budget, layer int) int {
	return int(float64(budget) * LayerScale(layer))
}

// RepelRadius is how close the pointer must be to push a particle of layer.
func RepelRadius(layer int) float64 {
	return RepelRadiusBase * (1 - float64(layer)*0.2)
}

// RepelStrength is the peak per-frame velocity change from the pointer.
func RepelStrength(layer int) float64 {
	return RepelStrengthBase * LayerScale(layer)
}

func rgb(r, g, b uint8) colorful.Color {
	c, _ := colorful.MakeColor(color.NRGBA{R: r, G: g, B: b, A: 255})
	return c
}
