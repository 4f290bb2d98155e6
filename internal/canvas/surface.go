// Package canvas defines the drawing surface the animation fields paint into,
// with an ebiten-backed implementation, a software raster used by the terminal
// backend, and a recorder for headless runs.
package canvas

import "image/color"

// Point is a position in surface space.
type Point struct {
	X, Y float64
}

// Surface is a 2D paint target. All colors are alpha blended over the
// current contents; Clear is the only operation that discards them.
type Surface interface {
	// Size returns the surface dimensions in canvas units (pixels).
	Size() (w, h int)
	// Clear resets every pixel to fully transparent.
	Clear()
	// FillRect covers the whole surface with clr.
	FillRect(clr color.Color)
	FillCircle(x, y, r float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
	// StrokePath strokes the polyline through pts.
	StrokePath(pts []Point, width float64, clr color.Color)
}
