// Package particlefield renders the hero backdrop: three depth layers of
// drifting point lights that pulse, shift hue, flee the pointer, and link up
// with faint lines in the front layer.
package particlefield

import (
	"image/color"
	"log"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/portfolio-backdrop/internal/canvas"
	"github.com/iburimskiy/portfolio-backdrop/internal/host"
)

// Theme supplies the fade color painted under every frame.
type Theme interface {
	CanvasFade() color.NRGBA
}

// Field is the particle simulation bound to one surface.
type Field struct {
	surface canvas.Surface
	theme   Theme
	rng     *rand.Rand

	layers [LayerCount][]Particle
	w, h   float64
	frame  uint64

	pointer host.Pointer

	handle  *host.Handle
	started bool
}

// New returns an uninitialized field; call Init before Step.
func New(surface canvas.Surface, th Theme, rng *rand.Rand) *Field {
	return &Field{surface: surface, theme: th, rng: rng}
}

// Mount wires a field into the page: it starts the first time target
// becomes visible, follows pointer samples for target, and reinitializes on
// every resize. A nil surface means the canvas is absent and Mount returns
// nil without registering anything.
func Mount(h *host.Host, target string, surface canvas.Surface, th Theme, rng *rand.Rand) *Field {
	if surface == nil {
		log.Printf("[ParticleField] No surface for %q, skipping", target)
		return nil
	}

	f := New(surface, th, rng)
	f.handle = h.NewHandle()
	f.handle.OnPointer(target, f.SetPointer)
	f.handle.OnResize(func(int, int) {
		if f.started {
			f.Init(f.surface.Size())
		}
	})
	f.handle.OnVisible(target, f.start)
	return f
}

func (f *Field) start() {
	if f.started || !f.handle.Alive() {
		return
	}
	f.started = true
	f.Init(f.surface.Size())
	f.handle.RequestFrame(f.tick)
}

func (f *Field) tick() {
	f.Step()
	f.handle.RequestFrame(f.tick)
}

// Close cancels the pending frame and all listeners. Safe on a nil field.
func (f *Field) Close() {
	if f == nil || f.handle == nil {
		return
	}
	f.handle.Cancel()
}

// Running reports whether the field has started and was not closed.
func (f *Field) Running() bool {
	return f != nil && f.started && f.handle != nil && f.handle.Alive()
}

// Init replaces the whole population for a w×h canvas.
func (f *Field) Init(w, h int) {
	f.w, f.h = float64(w), float64(h)
	budget := Budget(w, h)
	for layer := range f.layers {
		n := LayerSize(budget, layer)
		ps := make([]Particle, n)
		for i := range ps {
			ps[i] = newParticle(f.rng, layer, f.w, f.h)
		}
		f.layers[layer] = ps
	}
	log.Printf("[ParticleField] Initialized %dx%d: %d/%d/%d particles",
		w, h, len(f.layers[0]), len(f.layers[1]), len(f.layers[2]))
}

// SetPointer stores the latest pointer sample in canvas coordinates.
func (f *Field) SetPointer(p host.Pointer) {
	f.pointer = p
}

// Layer returns the particles of one layer. The slice is live.
func (f *Field) Layer(layer int) []Particle {
	return f.layers[layer]
}

// Frame is the number of steps taken.
func (f *Field) Frame() uint64 {
	return f.frame
}

// Step advances and paints one frame: fade, layers back to front, then the
// front layer's connections.
func (f *Field) Step() {
	if f.theme != nil {
		f.surface.FillRect(f.theme.CanvasFade())
	}
	f.frame++
	frame := float64(f.frame)

	for layer := LayerCount - 1; layer >= 0; layer-- {
		ps := f.layers[layer]
		for i := range ps {
			ps[i].update(frame, f.pointer, f.w, f.h)
			ps[i].draw(f.surface)
		}
	}

	f.drawConnections()
}

// drawConnections links every pair of front particles closer than
// ConnectDistance. Quadratic, so only the front layer takes part.
func (f *Field) drawConnections() {
	ps := f.layers[0]
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dist := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if dist >= ConnectDistance {
				continue
			}
			clr := Accent
			clr.A = uint8(math.Round((1 - dist/ConnectDistance) * ConnectAlpha * 255))
			f.surface.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, ConnectWidth, clr)
		}
	}
}
