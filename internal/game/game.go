// Package game is the desktop front end: an ebiten window showing the hero
// particle field and the wave band on a scrollable page.
package game

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/portfolio-backdrop/internal/audio"
	"github.com/iburimskiy/portfolio-backdrop/internal/canvas"
	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/host"
	"github.com/iburimskiy/portfolio-backdrop/internal/page"
	"github.com/iburimskiy/portfolio-backdrop/internal/particlefield"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
	"github.com/iburimskiy/portfolio-backdrop/internal/wavefield"
)

const footerHeight = 160

type game struct {
	settings *config.Settings

	host   *host.Host
	page   *page.Page
	router *page.Router

	theme  *theme.Cache
	store  *theme.Store
	player *audio.Player

	hero *canvas.Image
	band *canvas.Image

	particles *particlefield.Field
	waves     *wavefield.Field

	width, height int
	pendingW      int
	pendingH      int
	lastErr       error
	pointer       pointerTracker
	closed        bool
}

// New builds the page for the given settings. store may be memory-only.
func New(settings *config.Settings, store *theme.Store) (*game, error) {
	fallback, err := theme.ParseMode(settings.Theme)
	if err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	mode, err := store.Load(fallback)
	if err != nil {
		log.Printf("[Game] Warning: %v (using %s)", err, mode)
	}

	seed := uint64(settings.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &game{
		settings: settings,
		host:     host.New(),
		page:     page.New(footerHeight, config.ScrollEasing),
		router:   page.NewRouter(),
		theme:    theme.NewCache(mode),
		store:    store,
		player:   audio.NewPlayer(config.VisualRingSize, config.SmoothingFactor),
		hero:     canvas.NewImage(settings.Width, settings.Height),
		band:     canvas.NewImage(settings.Width, settings.BandHeight),
		width:    settings.Width,
		height:   settings.Height,
	}
	g.page.Layout(g.width, g.height, g.height, settings.BandHeight)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g.particles = particlefield.Mount(g.host, page.SectionHero, g.hero, g.theme, rng)
	g.waves = wavefield.Mount(g.host, page.SectionBand, g.band, g.theme)
	if g.waves != nil {
		g.waves.SetEnergy(g.player)
	}

	if settings.Soundtrack != "" {
		if err := g.player.Load(settings.Soundtrack); err != nil {
			log.Printf("[Game] Soundtrack not loaded: %v", err)
			g.lastErr = err
		}
	}

	log.Printf("[Game] Page ready: %dx%d, theme %s, seed %d", g.width, g.height, mode, seed)
	return g, nil
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleTheme()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openSoundtrackDialog(); err != nil {
			g.lastErr = err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.player.TogglePause()
	}

	if needsResize(g.pendingW, g.pendingH, g.width, g.height) {
		g.resize(g.pendingW, g.pendingH)
	}

	g.updateScroll()
	g.routePointer()
	page.Reveal(g.host, g.page, config.VisibleThreshold)

	g.player.Update(frameDuration)
	g.host.Tick()
	return nil
}

func (g *game) updateScroll() {
	_, wheelY := ebiten.Wheel()
	delta := -wheelY * config.ScrollStep
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		delta += config.ScrollStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		delta -= config.ScrollStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		delta += float64(g.height)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		delta -= float64(g.height)
	}
	if delta != 0 {
		g.page.ScrollBy(delta)
	}
	g.page.Update()
}

func (g *game) routePointer() {
	var touch *image.Point
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		touch = &image.Point{X: tx, Y: ty}
	}
	cx, cy := ebiten.CursorPosition()
	x, y, present := g.pointer.sample(touch, image.Pt(cx, cy), g.width, g.height, ebiten.IsFocused())
	g.router.Route(g.host, g.page, x, y, present)
}

// resize reallocates both canvases, relays the page and lets the fields
// reinitialize.
func (g *game) resize(w, h int) {
	g.width, g.height = w, h
	g.hero.Resize(w, h)
	g.band.Resize(w, g.settings.BandHeight)
	g.page.Layout(w, h, h, g.settings.BandHeight)
	g.host.DispatchResize(w, h)
	log.Printf("[Game] Resized to %dx%d", w, h)
}

func (g *game) toggleTheme() {
	mode := g.theme.Toggle()
	if err := g.store.Save(mode); err != nil {
		log.Printf("[Game] Warning: %v", err)
		g.lastErr = err
	}
}

func (g *game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.player.Load(filename)
}

// close tears down both fields and the player. Safe to call twice.
func (g *game) close() {
	if g.closed {
		return
	}
	g.closed = true
	g.particles.Close()
	g.waves.Close()
	g.player.Close()
	log.Printf("[Game] Closed after %d frames", g.host.Frames())
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.theme.Theme().Background)

	for _, s := range g.page.Sections {
		img := g.hero
		if s.Name == page.SectionBand {
			img = g.band
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, g.page.ScreenY(s))
		screen.DrawImage(img.Ebiten(), op)
	}

	footerY := int(g.page.Height() - footerHeight - g.page.Scroll())
	ebitenutil.DebugPrintAt(screen, "T theme   O soundtrack   Space pause   Esc quit", 12, footerY+12)

	status := fmt.Sprintf("theme %s | scroll %s", g.theme.Mode(), formatScroll(g.page.Scroll(), g.page.MaxScroll()))
	if s := g.player.Status(); s != "" {
		status += " | " + s
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window size; the canvases are resized on the next
// Update.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
