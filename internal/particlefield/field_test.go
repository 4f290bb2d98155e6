package particlefield

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/portfolio-backdrop/internal/canvas"
	"github.com/iburimskiy/portfolio-backdrop/internal/host"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newField(w, h int) (*Field, *canvas.Recorder) {
	rec := canvas.NewRecorder(w, h)
	f := New(rec, theme.NewCache(theme.Dark), newRNG())
	f.Init(w, h)
	return f, rec
}

func TestBudget(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want int
	}{
		{"800x600", 800, 600, 19},
		{"tiny", 100, 100, 0},
		{"exactly one", 250, 100, 1},
		{"capped", 4000, 3000, MaxParticles},
		{"degenerate", 0, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Budget(tt.w, tt.h))
		})
	}
}

func TestInitLayerCounts(t *testing.T) {
	f, _ := newField(800, 600)

	assert.Len(t, f.Layer(0), 19)
	assert.Len(t, f.Layer(1), 13)
	assert.Len(t, f.Layer(2), 7)

	for layer := 0; layer < LayerCount; layer++ {
		for _, p := range f.Layer(layer) {
			assert.Equal(t, layer, p.Layer)
		}
	}
}

func TestLayerSizeFormula(t *testing.T) {
	for budget := 0; budget <= MaxParticles; budget++ {
		for layer := 0; layer < LayerCount; layer++ {
			want := int(math.Floor(float64(budget) * (1 - float64(layer)*0.3)))
			assert.Equal(t, want, LayerSize(budget, layer), "budget %d layer %d", budget, layer)
		}
	}
}

func TestDeeperLayersAreSmallerDimmerSlower(t *testing.T) {
	f, _ := newField(2000, 1000)

	maxOf := func(layer int, get func(Particle) float64) float64 {
		m := 0.0
		for _, p := range f.Layer(layer) {
			m = math.Max(m, get(p))
		}
		return m
	}

	for layer := 0; layer < LayerCount; layer++ {
		s := LayerScale(layer)
		assert.LessOrEqual(t, maxOf(layer, func(p Particle) float64 { return p.BaseSize }), 2.0*s+1e-9)
		assert.LessOrEqual(t, maxOf(layer, func(p Particle) float64 { return p.BaseAlpha }), 0.7*s+1e-9)
		assert.LessOrEqual(t, maxOf(layer, func(p Particle) float64 { return math.Abs(p.VX) }), MaxDrift/2*s+1e-9)
	}
}

func TestWrapInvariant(t *testing.T) {
	f, _ := newField(800, 600)
	rng := rand.New(rand.NewPCG(7, 7))

	for step := 0; step < 2000; step++ {
		if step%50 == 0 {
			f.SetPointer(host.Pointer{X: rng.Float64() * 800, Y: rng.Float64() * 600, Present: step%100 == 0})
		}
		f.Step()
	}

	for layer := 0; layer < LayerCount; layer++ {
		for _, p := range f.Layer(layer) {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.Less(t, p.X, 800.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Less(t, p.Y, 600.0)
			assert.Equal(t, layer, p.Layer)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, want float64
	}{
		{5, 10, 5},
		{10, 10, 0},
		{12, 10, 2},
		{-1, 10, 9},
		{-25, 10, 5},
		{0, 10, 0},
		{3, 0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, wrap(tt.v, tt.size), 1e-9, "wrap(%v, %v)", tt.v, tt.size)
	}

	got := wrap(-1e-18, 10)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Less(t, got, 10.0)
}

func TestNoPointerOnlyDampens(t *testing.T) {
	f, _ := newField(800, 600)
	type vel struct{ vx, vy float64 }
	before := make([][]vel, LayerCount)
	for layer := range before {
		for _, p := range f.Layer(layer) {
			before[layer] = append(before[layer], vel{p.VX, p.VY})
		}
	}

	for step := 0; step < 100; step++ {
		f.Step()
	}

	decay := math.Pow(Damping, 100)
	for layer := range before {
		for i, p := range f.Layer(layer) {
			v0 := before[layer][i]
			assert.InDelta(t, v0.vx*decay, p.VX, 1e-12)
			assert.InDelta(t, v0.vy*decay, p.VY, 1e-12)
			assert.False(t, v0.vx*p.VX < 0, "vx changed sign")
			assert.False(t, v0.vy*p.VY < 0, "vy changed sign")
		}
	}
}

func TestRepulsionPushesAway(t *testing.T) {
	for layer := 0; layer < LayerCount; layer++ {
		base := Particle{X: 400, Y: 300, Layer: layer, BaseSize: 1, BaseAlpha: 0.5, PulseSpeed: 0.01}
		for _, d := range []float64{1, 30, RepelRadius(layer) - 1} {
			free, pushed := base, base
			free.update(1, host.Pointer{}, 800, 600)
			pushed.update(1, host.Pointer{X: 400 + d, Y: 300, Present: true}, 800, 600)

			assert.Less(t, pushed.VX, free.VX, "layer %d d %v", layer, d)
			assert.InDelta(t, free.VY, pushed.VY, 1e-12)
		}
	}
}

func TestRepulsionOutsideRadius(t *testing.T) {
	base := Particle{X: 400, Y: 300, Layer: 2, BaseSize: 1, BaseAlpha: 0.5}
	free, far := base, base
	free.update(1, host.Pointer{}, 800, 600)
	far.update(1, host.Pointer{X: 400 + RepelRadius(2), Y: 300, Present: true}, 800, 600)

	assert.Equal(t, free.VX, far.VX)
}

func TestPulseBounds(t *testing.T) {
	p := Particle{BaseSize: 2, BaseAlpha: 0.5, PulseSpeed: 0.02, PulseOffset: 1}
	for frame := 0; frame < 500; frame++ {
		p.update(float64(frame), host.Pointer{}, 100, 100)
		assert.GreaterOrEqual(t, p.Size, 2*(1-SizePulse)-1e-9)
		assert.LessOrEqual(t, p.Size, 2*(1+SizePulse)+1e-9)
		assert.GreaterOrEqual(t, p.Alpha, 0.5*(1-AlphaPulse)-1e-9)
		assert.LessOrEqual(t, p.Alpha, 0.5*(1+AlphaPulse)+1e-9)
	}
}

func TestShadeColors(t *testing.T) {
	p := Particle{ColorIndex: 1, Alpha: 0.6}
	p.shade(0)

	assert.Equal(t, uint8(153), p.Fill.A)
	assert.Equal(t, uint8(46), p.Glow.A)
	assert.Equal(t, p.Fill.R, p.Glow.R)

	// At most 30% of the way to the next palette color.
	base := withAlpha(Palette[1], 1)
	next := withAlpha(Palette[2], 1)
	limit := math.Abs(float64(next.R)-float64(base.R))*ShiftAmount + 1
	assert.LessOrEqual(t, math.Abs(float64(p.Fill.R)-float64(base.R)), limit)
}

func TestStepPaintsBackToFront(t *testing.T) {
	f, rec := newField(800, 600)
	f.Step()

	require.NotEmpty(t, rec.Calls)
	assert.Equal(t, canvas.OpFillRect, rec.Calls[0].Op)
	assert.Equal(t, theme.For(theme.Dark).CanvasFade, rec.Calls[0].Color)

	var circles []canvas.Call
	for _, c := range rec.Calls {
		if c.Op == canvas.OpFillCircle {
			circles = append(circles, c)
		}
	}
	require.Len(t, circles, 2*(19+13+7))

	i := 0
	for _, layer := range []int{2, 1, 0} {
		for _, p := range f.Layer(layer) {
			core, halo := circles[i], circles[i+1]
			assert.Equal(t, p.X, core.X)
			assert.Equal(t, p.Y, core.Y)
			assert.InDelta(t, p.Size*CoreRadius, core.R, 1e-12)
			assert.InDelta(t, p.Size*HaloRadius, halo.R, 1e-12)
			assert.Equal(t, p.Fill, core.Color)
			assert.Equal(t, p.Glow, halo.Color)
			i += 2
		}
	}

	assert.Equal(t, uint64(1), f.Frame())
}

func TestConnections(t *testing.T) {
	f, rec := newField(800, 600)
	f.layers[0] = []Particle{
		{X: 100, Y: 100},
		{X: 150, Y: 100},
		{X: 500, Y: 500},
	}
	f.layers[1], f.layers[2] = nil, nil

	rec.Reset()
	f.drawConnections()

	require.Equal(t, 1, rec.Count(canvas.OpStrokeLine))
	line := rec.Calls[0]
	assert.Equal(t, 100.0, line.X)
	assert.Equal(t, 150.0, line.X1)
	assert.Equal(t, ConnectWidth, line.R)
	clr := line.Color.(color.NRGBA)
	assert.Equal(t, uint8(13), clr.A) // (1 - 50/100) * 0.1 * 255
	assert.Equal(t, Accent.R, clr.R)
}

func TestResizeTwiceSameShape(t *testing.T) {
	f, _ := newField(800, 600)
	first := append([]Particle(nil), f.Layer(0)...)

	f.Init(1024, 768)
	f.Init(1024, 768)
	counts := [LayerCount]int{len(f.Layer(0)), len(f.Layer(1)), len(f.Layer(2))}
	f.Init(1024, 768)
	assert.Equal(t, counts, [LayerCount]int{len(f.Layer(0)), len(f.Layer(1)), len(f.Layer(2))})

	assert.NotEqual(t, first[0].X, f.Layer(0)[0].X, "fresh population")
}

func TestMountStartsOnVisible(t *testing.T) {
	h := host.New()
	rec := canvas.NewRecorder(800, 600)
	f := Mount(h, "hero", rec, theme.NewCache(theme.Dark), newRNG())
	require.NotNil(t, f)

	h.Tick()
	assert.Empty(t, rec.Calls, "not started before visible")
	assert.False(t, f.Running())

	h.DispatchVisible("hero")
	assert.True(t, f.Running())
	h.Tick()
	h.Tick()
	assert.Equal(t, uint64(2), f.Frame())
	assert.NotEmpty(t, rec.Calls)
}

func TestMountPointerAndResize(t *testing.T) {
	h := host.New()
	rec := canvas.NewRecorder(800, 600)
	f := Mount(h, "hero", rec, theme.NewCache(theme.Dark), newRNG())
	h.DispatchVisible("hero")

	h.DispatchPointer("hero", host.Pointer{X: 10, Y: 20, Present: true})
	assert.Equal(t, host.Pointer{X: 10, Y: 20, Present: true}, f.pointer)
	h.DispatchPointer("band", host.Pointer{X: 99, Present: true})
	assert.Equal(t, 10.0, f.pointer.X)

	rec.W, rec.H = 1600, 1000
	h.DispatchResize(1600, 1000)
	assert.Len(t, f.Layer(0), 64)
}

func TestActivateThenCancelPaintsNothing(t *testing.T) {
	h := host.New()
	rec := canvas.NewRecorder(800, 600)
	f := Mount(h, "hero", rec, theme.NewCache(theme.Dark), newRNG())

	h.DispatchVisible("hero")
	f.Close()
	f.Close()

	for i := 0; i < 5; i++ {
		h.Tick()
	}
	assert.Empty(t, rec.Calls)
	assert.Zero(t, h.Pending())
	assert.False(t, f.Running())
}

func TestMountWithoutSurface(t *testing.T) {
	h := host.New()
	f := Mount(h, "hero", nil, theme.NewCache(theme.Dark), newRNG())
	assert.Nil(t, f)
	assert.NotPanics(t, func() {
		f.Close()
		h.DispatchVisible("hero")
		h.Tick()
	})
}
