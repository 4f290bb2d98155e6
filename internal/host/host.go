// Package host models the environment the animation fields run inside: a
// per-frame callback queue and the pointer, resize and visibility events a
// page delivers to its canvases.
//
// Everything runs on one goroutine. Frame callbacks requested while a tick is
// running are deferred to the next tick, so a field that reschedules itself
// from its own callback never recurses.
package host

// FrameID identifies a pending frame callback.
type FrameID uint64

// Pointer is the last known pointer position relative to a target canvas.
// Present is false once the pointer has left the target.
type Pointer struct {
	X, Y    float64
	Present bool
}

// Host is the frame timer and event hub shared by all fields on a page.
// It is not safe for concurrent use.
type Host struct {
	nextFrame FrameID
	order     []FrameID
	frames    map[FrameID]func()
	frameNo   uint64

	nextListener uint64
	pointer      map[string][]pointerListener
	resize       []resizeListener
	visible      map[string][]visibleListener
	fired        map[string]bool
}

type pointerListener struct {
	id uint64
	fn func(Pointer)
}

type resizeListener struct {
	id uint64
	fn func(w, h int)
}

type visibleListener struct {
	id uint64
	fn func()
}

func New() *Host {
	return &Host{
		frames:  make(map[FrameID]func()),
		pointer: make(map[string][]pointerListener),
		visible: make(map[string][]visibleListener),
		fired:   make(map[string]bool),
	}
}

// RequestFrame queues fn to run on the next Tick.
func (h *Host) RequestFrame(fn func()) FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	h.order = append(h.order, h.nextFrame)
	return h.nextFrame
}

// CancelFrame drops a pending callback. Unknown or already-run ids are ignored.
func (h *Host) CancelFrame(id FrameID) {
	delete(h.frames, id)
}

// Pending reports how many frame callbacks are queued.
func (h *Host) Pending() int {
	return len(h.frames)
}

// Frames returns the number of ticks run so far.
func (h *Host) Frames() uint64 {
	return h.frameNo
}

// Tick runs every callback queued before the call, in request order.
// Callbacks may request further frames; those run on the following Tick.
// A callback cancelled by an earlier one in the same tick does not run.
func (h *Host) Tick() {
	h.frameNo++
	due := h.order
	h.order = nil
	for _, id := range due {
		fn, ok := h.frames[id]
		if !ok {
			continue
		}
		delete(h.frames, id)
		fn()
	}
}
