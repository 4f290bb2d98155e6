package canvas

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Raster is a software Surface at cell resolution: every cell covers
// cellW×cellH canvas units and stores one premultiplied RGBA sample.
// The terminal backend reads it back cell by cell.
type Raster struct {
	cols, rows   int
	cellW, cellH float64
	pix          []rgba
	mark         []uint32
	pass         uint32
}

type rgba struct {
	r, g, b, a float64
}

// NewRaster allocates a raster of cols×rows cells.
func NewRaster(cols, rows int, cellW, cellH float64) *Raster {
	r := &Raster{cellW: cellW, cellH: cellH}
	r.Resize(cols, rows)
	return r
}

// Resize reallocates the cell grid; contents are dropped.
func (r *Raster) Resize(cols, rows int) {
	r.cols, r.rows = max(cols, 0), max(rows, 0)
	r.pix = make([]rgba, r.cols*r.rows)
	r.mark = make([]uint32, r.cols*r.rows)
	r.pass = 0
}

// Cells returns the grid dimensions.
func (r *Raster) Cells() (cols, rows int) {
	return r.cols, r.rows
}

func (r *Raster) Size() (int, int) {
	return int(float64(r.cols) * r.cellW), int(float64(r.rows) * r.cellH)
}

func (r *Raster) Clear() {
	clear(r.pix)
}

func (r *Raster) FillRect(clr color.Color) {
	src := toRGBA(clr)
	for i := range r.pix {
		r.pix[i] = over(src, r.pix[i])
	}
}

func (r *Raster) FillCircle(x, y, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	src := toRGBA(clr)
	// Circles smaller than a cell contribute to the cell holding their
	// center, weighted by the share of the cell they would cover.
	if 2*radius < math.Min(r.cellW, r.cellH) {
		cov := math.Min(1, math.Pi*radius*radius/(r.cellW*r.cellH))
		r.blend(r.cellAt(x, y), scale(src, cov))
		return
	}
	c0, r0 := int((x-radius)/r.cellW), int((y-radius)/r.cellH)
	c1, r1 := int((x+radius)/r.cellW), int((y+radius)/r.cellH)
	for row := max(r0, 0); row <= min(r1, r.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, r.cols-1); col++ {
			cx := (float64(col) + 0.5) * r.cellW
			cy := (float64(row) + 0.5) * r.cellH
			if math.Hypot(cx-x, cy-y) <= radius {
				r.blend(row*r.cols+col, src)
			}
		}
	}
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.pass++
	r.line(x0, y0, x1, y1, scale(toRGBA(clr), math.Min(1, width)))
}

func (r *Raster) StrokePath(pts []Point, width float64, clr color.Color) {
	src := scale(toRGBA(clr), math.Min(1, width))
	r.pass++
	for i := 1; i < len(pts); i++ {
		r.line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, src)
	}
}

// At composites cell (col, row) over bg.
func (r *Raster) At(col, row int, bg colorful.Color) colorful.Color {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return bg
	}
	p := r.pix[row*r.cols+col]
	return colorful.Color{
		R: p.r + bg.R*(1-p.a),
		G: p.g + bg.G*(1-p.a),
		B: p.b + bg.B*(1-p.a),
	}.Clamped()
}

// line walks the segment in half-cell steps and blends every cell it
// crosses once per stroke pass.
func (r *Raster) line(x0, y0, x1, y1 float64, src rgba) {
	step := math.Min(r.cellW, r.cellH) / 2
	n := int(math.Ceil(math.Hypot(x1-x0, y1-y0) / step))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		idx := r.cellAt(x0+(x1-x0)*t, y0+(y1-y0)*t)
		if idx < 0 || r.mark[idx] == r.pass {
			continue
		}
		r.mark[idx] = r.pass
		r.blend(idx, src)
	}
}

func (r *Raster) cellAt(x, y float64) int {
	if x < 0 || y < 0 {
		return -1
	}
	col, row := int(x/r.cellW), int(y/r.cellH)
	if col >= r.cols || row >= r.rows {
		return -1
	}
	return row*r.cols + col
}

func (r *Raster) blend(idx int, src rgba) {
	if idx < 0 {
		return
	}
	r.pix[idx] = over(src, r.pix[idx])
}

func toRGBA(clr color.Color) rgba {
	cr, cg, cb, ca := clr.RGBA()
	return rgba{
		r: float64(cr) / 0xffff,
		g: float64(cg) / 0xffff,
		b: float64(cb) / 0xffff,
		a: float64(ca) / 0xffff,
	}
}

func scale(p rgba, k float64) rgba {
	return rgba{p.r * k, p.g * k, p.b * k, p.a * k}
}

func over(src, dst rgba) rgba {
	k := 1 - src.a
	return rgba{
		r: src.r + dst.r*k,
		g: src.g + dst.g*k,
		b: src.b + dst.b*k,
		a: src.a + dst.a*k,
	}
}
