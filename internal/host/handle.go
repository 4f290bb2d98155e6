package host

// Handle is the cancellation handle a field owns for its whole lifetime.
// Every frame it schedules and every listener it registers go through the
// handle, so Cancel revokes all of them at once.
type Handle struct {
	host     *Host
	frame    FrameID
	hasFrame bool
	removers []func()
	done     bool
}

// NewHandle returns a live handle bound to h.
func (h *Host) NewHandle() *Handle {
	return &Handle{host: h}
}

// RequestFrame schedules fn for the next tick, replacing any frame this
// handle already has pending. It is a no-op after Cancel.
func (hd *Handle) RequestFrame(fn func()) {
	if hd.done {
		return
	}
	if hd.hasFrame {
		hd.host.CancelFrame(hd.frame)
	}
	hd.frame = hd.host.RequestFrame(func() {
		hd.hasFrame = false
		fn()
	})
	hd.hasFrame = true
}

// OnPointer registers a pointer listener owned by the handle.
func (hd *Handle) OnPointer(target string, fn func(Pointer)) {
	if hd.done {
		return
	}
	hd.removers = append(hd.removers, hd.host.OnPointer(target, fn))
}

// OnResize registers a resize listener owned by the handle.
func (hd *Handle) OnResize(fn func(w, h int)) {
	if hd.done {
		return
	}
	hd.removers = append(hd.removers, hd.host.OnResize(fn))
}

// OnVisible registers a one-shot visibility listener owned by the handle.
func (hd *Handle) OnVisible(target string, fn func()) {
	if hd.done {
		return
	}
	hd.removers = append(hd.removers, hd.host.OnVisible(target, fn))
}

// Alive reports whether Cancel has not been called.
func (hd *Handle) Alive() bool {
	return !hd.done
}

// Cancel drops the pending frame and removes every listener. Safe to call
// more than once.
func (hd *Handle) Cancel() {
	if hd.done {
		return
	}
	hd.done = true
	if hd.hasFrame {
		hd.host.CancelFrame(hd.frame)
		hd.hasFrame = false
	}
	for _, remove := range hd.removers {
		remove()
	}
	hd.removers = nil
}
