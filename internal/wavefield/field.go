// Package wavefield renders the horizontal wave band: three layered sine
// curves whose amplitude swells under the pointer.
package wavefield

import (
	"image/color"
	"log"
	"math"

	"github.com/iburimskiy/portfolio-backdrop/internal/canvas"
	"github.com/iburimskiy/portfolio-backdrop/internal/host"
)

const (
	SampleStep = 2.0

	PointerSmoothing = 0.1
	BoostRadius      = 150.0
	BoostMax         = 25.0

	// Extra amplitude at full soundtrack energy.
	EnergyBoost = 12.0

	HarmonicGain  = 0.5
	HarmonicSpeed = 1.5

	LineWidth = 2.0
)

// Layer describes one curve.
type Layer struct {
	Amplitude float64
	Frequency float64
	Speed     float64
	Opacity   float64
}

// Layers are drawn in order, the widest and faintest first.
var Layers = [3]Layer{
	{Amplitude: 30, Frequency: 0.010, Speed: 0.020, Opacity: 0.15},
	{Amplitude: 22, Frequency: 0.015, Speed: 0.030, Opacity: 0.25},
	{Amplitude: 15, Frequency: 0.022, Speed: 0.045, Opacity: 0.4},
}

// Theme supplies the stroke color.
type Theme interface {
	WaveColor() color.NRGBA
}

// Energy reports a loudness level in [0, 1].
type Energy interface {
	Level() float64
}

// Field draws the band onto one surface.
type Field struct {
	surface canvas.Surface
	theme   Theme
	energy  Energy

	time float64

	raw       host.Pointer
	displayed host.Pointer

	handle  *host.Handle
	started bool
	pts     []canvas.Point
}

func New(surface canvas.Surface, th Theme) *Field {
	return &Field{surface: surface, theme: th}
}

// SetEnergy attaches a loudness source; nil detaches it. Safe on a nil
// field.
func (f *Field) SetEnergy(e Energy) {
	if f == nil {
		return
	}
	f.energy = e
}

// Mount wires the band into the page. It starts the first time target
// becomes visible and runs until Close. A nil surface makes it a no-op.
func Mount(h *host.Host, target string, surface canvas.Surface, th Theme) *Field {
	if surface == nil {
		log.Printf("[WaveField] No surface for %q, skipping", target)
		return nil
	}

	f := New(surface, th)
	f.handle = h.NewHandle()
	f.handle.OnPointer(target, f.SetPointer)
	f.handle.OnVisible(target, f.start)
	return f
}

func (f *Field) start() {
	if f.started || !f.handle.Alive() {
		return
	}
	f.started = true
	log.Printf("[WaveField] Started")
	f.handle.RequestFrame(f.tick)
}

func (f *Field) tick() {
	f.Step()
	f.handle.RequestFrame(f.tick)
}

// Close stops the band. Safe on a nil field.
func (f *Field) Close() {
	if f == nil || f.handle == nil {
		return
	}
	f.handle.Cancel()
}

func (f *Field) Running() bool {
	return f != nil && f.started && f.handle != nil && f.handle.Alive()
}

// SetPointer stores the latest raw sample in canvas coordinates.
func (f *Field) SetPointer(p host.Pointer) {
	f.raw = p
}

// Time is the frame counter driving the curves.
func (f *Field) Time() float64 {
	return f.time
}

// Displayed is the smoothed pointer the curves react to.
func (f *Field) Displayed() host.Pointer {
	return f.displayed
}

// Step clears the band, draws every layer and advances time by one.
func (f *Field) Step() {
	f.surface.Clear()
	f.smoothPointer()

	w, h := f.surface.Size()
	stroke := color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	if f.theme != nil {
		stroke = f.theme.WaveColor()
	}

	for i := range Layers {
		f.pts = f.Sample(i, float64(w), float64(h), f.pts[:0])
		clr := stroke
		clr.A = uint8(math.Round(float64(stroke.A) * Layers[i].Opacity))
		f.surface.StrokePath(f.pts, LineWidth, clr)
	}

	f.time++
}

// smoothPointer eases the displayed pointer toward the raw sample. It snaps
// on first appearance and drops out as soon as the pointer leaves.
func (f *Field) smoothPointer() {
	switch {
	case !f.raw.Present:
		f.displayed = host.Pointer{}
	case !f.displayed.Present:
		f.displayed = f.raw
	default:
		f.displayed.X += (f.raw.X - f.displayed.X) * PointerSmoothing
		f.displayed.Y += (f.raw.Y - f.displayed.Y) * PointerSmoothing
	}
}

// Amplitude is layer i's local amplitude at x for the current pointer and
// energy.
func (f *Field) Amplitude(i int, x float64) float64 {
	amp := Layers[i].Amplitude
	if f.energy != nil {
		amp += EnergyBoost * clamp01(f.energy.Level())
	}
	if f.displayed.Present {
		amp += Boost(math.Abs(x - f.displayed.X))
	}
	return amp
}

// Boost is the extra amplitude at horizontal distance d from the pointer:
// BoostMax at d = 0, falling linearly to 0 at BoostRadius.
func Boost(d float64) float64 {
	if d >= BoostRadius {
		return 0
	}
	return BoostMax * (1 - d/BoostRadius)
}

// Sample traces layer i across a w×h band every SampleStep units,
// appending to dst.
func (f *Field) Sample(i int, w, h float64, dst []canvas.Point) []canvas.Point {
	l := Layers[i]
	mid := h / 2
	phase := f.time * l.Speed
	for x := 0.0; x <= w; x += SampleStep {
		amp := f.Amplitude(i, x)
		y := mid +
			amp*math.Sin(l.Frequency*x+phase) +
			HarmonicGain*amp*math.Sin(2*l.Frequency*x+phase*HarmonicSpeed)
		dst = append(dst, canvas.Point{X: x, Y: y})
	}
	return dst
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
