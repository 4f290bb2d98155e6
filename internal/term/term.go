// Package term renders the backdrop in a terminal: the hero fills the top
// of the screen and the wave band the bottom rows, each painted into a
// cell-resolution raster and shown as background colors.
package term

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/portfolio-backdrop/internal/canvas"
	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/host"
	"github.com/iburimskiy/portfolio-backdrop/internal/page"
	"github.com/iburimskiy/portfolio-backdrop/internal/particlefield"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
	"github.com/iburimskiy/portfolio-backdrop/internal/wavefield"
)

// Runner drives both fields on a tcell screen.
type Runner struct {
	screen tcell.Screen

	host   *host.Host
	page   *page.Page
	router *page.Router
	theme  *theme.Cache
	store  *theme.Store

	hero *canvas.Raster
	band *canvas.Raster

	particles *particlefield.Field
	waves     *wavefield.Field

	cols, rows int
	heroRows   int
}

// New binds a runner to an initialized screen.
func New(screen tcell.Screen, settings *config.Settings, store *theme.Store) (*Runner, error) {
	fallback, err := theme.ParseMode(settings.Theme)
	if err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	mode, err := store.Load(fallback)
	if err != nil {
		log.Printf("[Term] Warning: %v (using %s)", err, mode)
	}

	seed := uint64(settings.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	r := &Runner{
		screen: screen,
		host:   host.New(),
		page:   page.New(0, 1),
		router: page.NewRouter(),
		theme:  theme.NewCache(mode),
		store:  store,
		hero:   canvas.NewRaster(0, 0, config.CellWidth, config.CellHeight),
		band:   canvas.NewRaster(0, 0, config.CellWidth, config.CellHeight),
	}
	r.layout(screen.Size())

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.particles = particlefield.Mount(r.host, page.SectionHero, r.hero, r.theme, rng)
	r.waves = wavefield.Mount(r.host, page.SectionBand, r.band, r.theme)
	return r, nil
}

// layout splits the screen between hero and band and resizes both rasters.
func (r *Runner) layout(cols, rows int) {
	r.cols, r.rows = cols, rows
	bandRows := min(config.TermBandRows, rows/3)
	r.heroRows = rows - bandRows

	r.hero.Resize(cols, r.heroRows)
	r.band.Resize(cols, bandRows)

	w, heroH := r.hero.Size()
	_, bandH := r.band.Size()
	r.page.Layout(w, heroH+bandH, heroH, bandH)
}

// Run shows frames every TermTickMs until ctx is done or the user quits.
func (r *Runner) Run(ctx context.Context) error {
	r.screen.EnableMouse(tcell.MouseMotionEvents)
	r.screen.EnableFocus()
	r.screen.HideCursor()

	ticker := time.NewTicker(config.TermTickMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pumpEvents(r.screen.PollEvent, eventChan, quit)

	defer r.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok || !r.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			r.Frame()
			r.screen.Show()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil or quit
// is closed. out is closed on return.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, quit <-chan struct{}) {
	defer close(out)
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-quit:
			return
		}
	}
}

// HandleEvent applies one input event and reports whether to keep running.
func (r *Runner) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		x, y := ev.Position()
		px := (float64(x) + 0.5) * config.CellWidth
		py := (float64(y) + 0.5) * config.CellHeight
		r.router.Route(r.host, r.page, px, py, true)

	case *tcell.EventFocus:
		if !ev.Focused {
			r.router.Route(r.host, r.page, 0, 0, false)
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		r.layout(cols, rows)
		r.host.DispatchResize(r.hero.Size())
		r.screen.Sync()
	}
	return true
}

func (r *Runner) handleKey(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return false
		case 't', 'T':
			r.toggleTheme()
		}
	}
	return true
}

func (r *Runner) toggleTheme() {
	mode := r.theme.Toggle()
	if err := r.store.Save(mode); err != nil {
		log.Printf("[Term] Warning: %v", err)
	}
}

// Frame reveals visible sections, runs one host tick and copies both
// rasters to the screen.
func (r *Runner) Frame() {
	page.Reveal(r.host, r.page, config.VisibleThreshold)
	r.host.Tick()
	r.render()
}

func (r *Runner) render() {
	bg := toColorful(r.theme.Theme().Background)
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			var c colorful.Color
			if row < r.heroRows {
				c = r.hero.At(col, row, bg)
			} else {
				c = r.band.At(col, row-r.heroRows, bg)
			}
			cr, cg, cb := c.RGB255()
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
			r.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// Close stops both fields.
func (r *Runner) Close() {
	r.particles.Close()
	r.waves.Close()
	log.Printf("[Term] Closed after %d frames", r.host.Frames())
}

func toColorful(c interface{ RGBA() (r, g, b, a uint32) }) colorful.Color {
	cr, cg, cb, _ := c.RGBA()
	return colorful.Color{R: float64(cr) / 0xffff, G: float64(cg) / 0xffff, B: float64(cb) / 0xffff}
}
