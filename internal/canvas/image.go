package canvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Image is a Surface backed by a persistent offscreen ebiten image, so
// translucent fills accumulate across frames.
type Image struct {
	img *ebiten.Image
}

// NewImage allocates an offscreen image of the given size.
func NewImage(w, h int) *Image {
	return &Image{img: ebiten.NewImage(max(w, 1), max(h, 1))}
}

// Resize replaces the backing image when the dimensions change.
// The previous contents are dropped.
func (m *Image) Resize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if cw, ch := m.Size(); cw == w && ch == h {
		return
	}
	m.img.Deallocate()
	m.img = ebiten.NewImage(w, h)
}

// Ebiten exposes the backing image for compositing onto the screen.
func (m *Image) Ebiten() *ebiten.Image {
	return m.img
}

func (m *Image) Size() (int, int) {
	b := m.img.Bounds()
	return b.Dx(), b.Dy()
}

func (m *Image) Clear() {
	m.img.Clear()
}

func (m *Image) FillRect(clr color.Color) {
	w, h := m.Size()
	vector.DrawFilledRect(m.img, 0, 0, float32(w), float32(h), clr, false)
}

func (m *Image) FillCircle(x, y, r float64, clr color.Color) {
	vector.DrawFilledCircle(m.img, float32(x), float32(y), float32(r), clr, true)
}

func (m *Image) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(m.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

func (m *Image) StrokePath(pts []Point, width float64, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(m.img, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
	}
}
