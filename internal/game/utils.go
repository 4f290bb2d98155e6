package game

import (
	"fmt"
	"image"
	"time"
)

// frameDuration is one tick at the default 60 TPS.
const frameDuration = time.Second / 60

// formatScroll formats a scroll position as a percentage of the page.
func formatScroll(scroll, limit float64) string {
	if limit <= 0 {
		return "100%"
	}
	return fmt.Sprintf("%3.0f%%", 100*scroll/limit)
}

// needsResize reports whether the size from Layout differs from the size
// the canvases were built for. Zero sizes come before the first Layout.
func needsResize(pendingW, pendingH, w, h int) bool {
	return pendingW > 0 && pendingH > 0 && (pendingW != w || pendingH != h)
}

// pointerTracker picks one pointer per tick, preferring the first touch
// over the mouse. A touch that just ended, or a cursor outside a w×h
// window or in an unfocused one, counts as the pointer leaving.
type pointerTracker struct {
	touchWasPresent bool
}

func (t *pointerTracker) sample(touch *image.Point, cursor image.Point, w, h int, focused bool) (x, y float64, present bool) {
	if touch != nil {
		t.touchWasPresent = true
		return float64(touch.X), float64(touch.Y), true
	}
	if t.touchWasPresent {
		t.touchWasPresent = false
		return 0, 0, false
	}

	inside := focused && cursor.In(image.Rect(0, 0, w, h))
	return float64(cursor.X), float64(cursor.Y), inside
}
