package particlefield

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/portfolio-backdrop/internal/canvas"
	"github.com/iburimskiy/portfolio-backdrop/internal/host"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Particle is one point light. Particles live by value in their layer's
// slice and have no identity beyond their index.
type Particle struct {
	X, Y   float64
	VX, VY float64
	// Layer is fixed at creation; 0 is the front.
	Layer int

	BaseSize, Size   float64
	BaseAlpha, Alpha float64
	ColorIndex       int

	PulseOffset float64
	PulseSpeed  float64

	// Fill and Glow are recomputed once per update.
	Fill, Glow color.NRGBA
}

func newParticle(rng *rand.Rand, layer int, w, h float64) Particle {
	s := LayerScale(layer)
	p := Particle{
		X:           rng.Float64() * w,
		Y:           rng.Float64() * h,
		VX:          (rng.Float64() - 0.5) * MaxDrift * s,
		VY:          (rng.Float64() - 0.5) * MaxDrift * s,
		Layer:       layer,
		BaseSize:    (rng.Float64()*1.5 + 0.5) * s,
		BaseAlpha:   (rng.Float64()*0.5 + 0.2) * s,
		ColorIndex:  rng.IntN(len(Palette)),
		PulseOffset: rng.Float64() * 2 * math.Pi,
		PulseSpeed:  rng.Float64()*0.02 + 0.01,
	}
	p.Size, p.Alpha = p.BaseSize, p.BaseAlpha
	p.shade(0)
	return p
}

// update advances the particle one frame inside a w×h canvas.
func (p *Particle) update(frame float64, ptr host.Pointer, w, h float64) {
	pulse := math.Sin(frame*p.PulseSpeed + p.PulseOffset)
	p.Size = p.BaseSize * (1 + pulse*SizePulse)
	p.Alpha = clamp01(p.BaseAlpha * (1 + pulse*AlphaPulse))

	p.X += p.VX
	p.Y += p.VY

	if ptr.Present {
		dx, dy := p.X-ptr.X, p.Y-ptr.Y
		dist := math.Hypot(dx, dy)
		radius := RepelRadius(p.Layer)
		if dist > 0 && dist < radius {
			force := (radius - dist) / radius * RepelStrength(p.Layer)
			p.VX += dx / dist * force
			p.VY += dy / dist * force
		}
	}

	p.VX *= Damping
	p.VY *= Damping

	p.X = wrap(p.X, w)
	p.Y = wrap(p.Y, h)

	p.shade(frame)
}

// shade derives the render colors from the palette color drifted toward
// its neighbour by a phase that varies with time and x.
func (p *Particle) shade(frame float64) {
	phase := 0.5 + 0.5*math.Sin(frame*ColorDriftSpeed+p.X*ColorDriftScale)
	c := shiftColor(p.ColorIndex, ShiftAmount*phase)
	p.Fill = withAlpha(c, p.Alpha)
	p.Glow = withAlpha(c, p.Alpha*GlowAlpha)
}

func (p *Particle) draw(s canvas.Surface) {
	s.FillCircle(p.X, p.Y, p.Size*CoreRadius, p.Fill)
	s.FillCircle(p.X, p.Y, p.Size*HaloRadius, p.Glow)
}

// shiftColor blends palette entry i toward entry i+1 by t.
func shiftColor(i int, t float64) colorful.Color {
	base := Palette[i%len(Palette)]
	next := Palette[(i+1)%len(Palette)]
	return base.BlendRgb(next, t)
}

func withAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// wrap maps v into [0, size).
func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -ε + size can round up to size.
	if v >= size {
		v = 0
	}
	return v
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
