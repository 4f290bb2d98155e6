package game

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatScroll(t *testing.T) {
	tests := []struct {
		scroll, limit float64
		want          string
	}{
		{0, 300, "  0%"},
		{150, 300, " 50%"},
		{300, 300, "100%"},
		{0, 0, "100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatScroll(tt.scroll, tt.limit))
	}
}

func TestNeedsResize(t *testing.T) {
	tests := []struct {
		name               string
		pendingW, pendingH int
		w, h               int
		want               bool
	}{
		{"before first layout", 0, 0, 1024, 640, false},
		{"same size", 1024, 640, 1024, 640, false},
		{"wider", 1280, 640, 1024, 640, true},
		{"shorter", 1024, 480, 1024, 640, true},
		{"zero height", 1024, 0, 800, 600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsResize(tt.pendingW, tt.pendingH, tt.w, tt.h))
		})
	}
}

func TestPointerTrackerCursor(t *testing.T) {
	var tr pointerTracker

	x, y, present := tr.sample(nil, image.Pt(10, 20), 800, 600, true)
	assert.True(t, present)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)

	_, _, present = tr.sample(nil, image.Pt(-1, 20), 800, 600, true)
	assert.False(t, present, "left of the window")
	_, _, present = tr.sample(nil, image.Pt(800, 20), 800, 600, true)
	assert.False(t, present, "right edge is outside")
	_, _, present = tr.sample(nil, image.Pt(10, 20), 800, 600, false)
	assert.False(t, present, "unfocused window")
}

func TestPointerTrackerTouchEndLeaves(t *testing.T) {
	var tr pointerTracker

	x, y, present := tr.sample(&image.Point{X: 300, Y: 40}, image.Pt(5, 5), 800, 600, true)
	require.True(t, present)
	assert.Equal(t, 300.0, x)
	assert.Equal(t, 40.0, y)

	_, _, present = tr.sample(nil, image.Pt(5, 5), 800, 600, true)
	assert.False(t, present, "the tick after a touch ends reports a leave")

	x, _, present = tr.sample(nil, image.Pt(5, 5), 800, 600, true)
	assert.True(t, present, "then the cursor takes over")
	assert.Equal(t, 5.0, x)
}
