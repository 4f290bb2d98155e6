package canvas

import "image/color"

// Op names a paint call captured by Recorder.
type Op int

const (
	OpClear Op = iota
	OpFillRect
	OpFillCircle
	OpStrokeLine
	OpStrokePath
)

// Call is one captured paint call.
type Call struct {
	Op    Op
	X, Y  float64 // circle center or line start
	X1, Y1 float64
	R     float64 // circle radius or stroke width
	Color color.Color
	Path  []Point
}

// Recorder is a Surface that paints nothing and remembers every call.
// It backs headless runs and tests.
type Recorder struct {
	W, H  int
	Calls []Call
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Count returns how many calls of op were captured.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets captured calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.Calls = append(r.Calls, Call{Op: OpClear})
}

func (r *Recorder) FillRect(clr color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillRect, Color: clr})
}

func (r *Recorder) FillCircle(x, y, radius float64, clr color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpFillCircle, X: x, Y: y, R: radius, Color: clr})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpStrokeLine, X: x0, Y: y0, X1: x1, Y1: y1, R: width, Color: clr})
}

func (r *Recorder) StrokePath(pts []Point, width float64, clr color.Color) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.Calls = append(r.Calls, Call{Op: OpStrokePath, R: width, Color: clr, Path: cp})
}
