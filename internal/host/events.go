package host

// OnPointer registers fn for pointer samples delivered to target.
// The returned func removes the listener.
func (h *Host) OnPointer(target string, fn func(Pointer)) func() {
	h.nextListener++
	id := h.nextListener
	h.pointer[target] = append(h.pointer[target], pointerListener{id: id, fn: fn})
	return func() {
		ls := h.pointer[target]
		for i, l := range ls {
			if l.id == id {
				h.pointer[target] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// DispatchPointer delivers p to every pointer listener of target.
func (h *Host) DispatchPointer(target string, p Pointer) {
	for _, l := range h.pointer[target] {
		l.fn(p)
	}
}

// OnResize registers fn for viewport resize notifications.
func (h *Host) OnResize(fn func(w, h int)) func() {
	h.nextListener++
	id := h.nextListener
	h.resize = append(h.resize, resizeListener{id: id, fn: fn})
	return func() {
		for i, l := range h.resize {
			if l.id == id {
				h.resize = append(h.resize[:i:i], h.resize[i+1:]...)
				return
			}
		}
	}
}

// DispatchResize notifies every resize listener of the new viewport size.
func (h *Host) DispatchResize(w, ht int) {
	for _, l := range h.resize {
		l.fn(w, ht)
	}
}

// OnVisible registers a one-shot callback for the first time target enters
// the viewport. Registering after the target already fired does nothing:
// the trigger never restarts.
func (h *Host) OnVisible(target string, fn func()) func() {
	if h.fired[target] {
		return func() {}
	}
	h.nextListener++
	id := h.nextListener
	h.visible[target] = append(h.visible[target], visibleListener{id: id, fn: fn})
	return func() {
		ls := h.visible[target]
		for i, l := range ls {
			if l.id == id {
				h.visible[target] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// DispatchVisible fires target's visibility listeners once.
// Later calls for the same target are ignored.
func (h *Host) DispatchVisible(target string) {
	if h.fired[target] {
		return
	}
	h.fired[target] = true
	ls := h.visible[target]
	delete(h.visible, target)
	for _, l := range ls {
		l.fn()
	}
}

// Visible reports whether target's visibility trigger has fired.
func (h *Host) Visible(target string) bool {
	return h.fired[target]
}
