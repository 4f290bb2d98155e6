package canvas

import (
	"image/color"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = colorful.Color{}

func TestRasterSize(t *testing.T) {
	r := NewRaster(10, 4, 8, 16)
	w, h := r.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 64, h)

	cols, rows := r.Cells()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 4, rows)
}

func TestRasterFillRectBlends(t *testing.T) {
	r := NewRaster(2, 2, 8, 16)
	r.FillRect(color.NRGBA{R: 255, A: 255})
	assert.InDelta(t, 1.0, r.At(0, 0, black).R, 1e-9)

	// Half-transparent black over opaque red halves the red channel.
	r.FillRect(color.NRGBA{A: 128})
	assert.InDelta(t, 0.5, r.At(1, 1, black).R, 0.01)
}

func TestRasterClear(t *testing.T) {
	r := NewRaster(2, 2, 8, 16)
	r.FillRect(color.White)
	r.Clear()

	bg := colorful.Color{R: 0.2, G: 0.3, B: 0.4}
	assert.Equal(t, bg, r.At(0, 0, bg))
}

func TestRasterSmallCircleHitsCenterCell(t *testing.T) {
	r := NewRaster(4, 4, 8, 16)
	r.FillCircle(20, 40, 2, color.White)

	got := r.At(2, 2, black)
	assert.Greater(t, got.R, 0.0)
	assert.Less(t, got.R, 1.0, "coverage weighting keeps small circles dim")
	assert.Equal(t, black, r.At(0, 0, black))
}

func TestRasterLargeCircleCoversCells(t *testing.T) {
	r := NewRaster(8, 4, 8, 16)
	r.FillCircle(32, 32, 20, color.White)

	assert.InDelta(t, 1.0, r.At(3, 1, black).R, 1e-9)
	assert.Equal(t, black, r.At(7, 3, black))
}

func TestRasterLineTouchesEachCellOnce(t *testing.T) {
	r := NewRaster(10, 1, 8, 16)
	r.StrokeLine(0, 8, 79, 8, 1, color.NRGBA{G: 255, A: 128})

	first := r.At(0, 0, black).G
	require.Greater(t, first, 0.0)
	for col := 1; col < 10; col++ {
		assert.InDelta(t, first, r.At(col, 0, black).G, 1e-9, "col %d", col)
	}
}

func TestRasterOutOfBoundsIgnored(t *testing.T) {
	r := NewRaster(2, 2, 8, 16)
	assert.NotPanics(t, func() {
		r.FillCircle(-50, -50, 1, color.White)
		r.StrokeLine(-10, -10, 500, 500, 1, color.White)
		r.StrokePath([]Point{{-5, 0}, {1000, 1000}}, 1, color.White)
	})
	assert.Equal(t, black, r.At(5, 5, black))
}

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorder(100, 50)
	rec.Clear()
	rec.FillCircle(1, 2, 3, color.White)
	rec.FillCircle(1, 2, 3, color.White)
	rec.StrokePath([]Point{{0, 0}, {1, 1}}, 1, color.White)

	assert.Equal(t, 1, rec.Count(OpClear))
	assert.Equal(t, 2, rec.Count(OpFillCircle))
	assert.Equal(t, 1, rec.Count(OpStrokePath))

	rec.Reset()
	assert.Empty(t, rec.Calls)
}
